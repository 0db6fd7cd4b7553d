package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/subtrackhq/subtrack/internal/config"
	"github.com/subtrackhq/subtrack/internal/modules/model"
	"github.com/subtrackhq/subtrack/internal/modules/repo"
	"github.com/subtrackhq/subtrack/internal/pkg/apperr"
)

// ReportStore is the blob boundary for exported reports (S3 in production).
type ReportStore interface {
	UploadJSON(ctx context.Context, keyPrefix, name string, data interface{}) (string, error)
	PresignGet(ctx context.Context, key string, expire time.Duration) (string, error)
}

// SpaceReport is the exported snapshot of a space's spending.
type SpaceReport struct {
	SpaceID       string               `json:"space_id"`
	SpaceName     string               `json:"space_name"`
	GeneratedAt   time.Time            `json:"generated_at"`
	Summary       *Summary             `json:"summary"`
	ByCategory    map[string]string    `json:"by_category"`
	Subscriptions []model.Subscription `json:"subscriptions"`
}

type ExportService interface {
	// ExportSpaceReport builds a spend report, uploads it to blob storage
	// and returns a presigned download URL. Requires viewer access.
	ExportSpaceReport(ctx context.Context, actorID, spaceID uuid.UUID) (string, error)
}

type exportService struct {
	spaces repo.SpaceRepo
	subs   repo.SubscriptionRepo
	ledger SubscriptionService
	store  ReportStore
	cfg    *config.Config
}

func NewExportService(spaces repo.SpaceRepo, subs repo.SubscriptionRepo, ledger SubscriptionService, store ReportStore, cfg *config.Config) ExportService {
	return &exportService{spaces: spaces, subs: subs, ledger: ledger, store: store, cfg: cfg}
}

func (s *exportService) ExportSpaceReport(ctx context.Context, actorID, spaceID uuid.UUID) (string, error) {
	space, err := s.spaces.Get(ctx, spaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.ErrNotFound
		}
		return "", storageErr(err)
	}

	// Aggregate performs the viewer permission check for the scope.
	scope := repo.SpaceScope(spaceID)
	summary, err := s.ledger.Aggregate(ctx, actorID, scope)
	if err != nil {
		return "", err
	}
	byCategory, err := s.ledger.AggregateByCategory(ctx, actorID, scope)
	if err != nil {
		return "", err
	}

	now := time.Now()
	subs, err := s.subs.ListActive(ctx, scope, now)
	if err != nil {
		return "", storageErr(err)
	}

	report := SpaceReport{
		SpaceID:       spaceID.String(),
		SpaceName:     space.Name,
		GeneratedAt:   now.UTC(),
		Summary:       summary,
		ByCategory:    map[string]string{},
		Subscriptions: subs,
	}
	for cat, amount := range byCategory {
		report.ByCategory[cat] = amount.StringFixed(2)
	}

	name := spaceID.String() + "-" + now.UTC().Format("20060102T150405Z")
	key, err := s.store.UploadJSON(ctx, "reports", name, report)
	if err != nil {
		return "", apperr.Storage(err)
	}

	expire := time.Duration(s.cfg.S3.PresignExpireSec) * time.Second
	if expire <= 0 {
		expire = 15 * time.Minute
	}
	url, err := s.store.PresignGet(ctx, key, expire)
	if err != nil {
		return "", apperr.Storage(err)
	}
	return url, nil
}
