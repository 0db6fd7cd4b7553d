package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/subtrackhq/subtrack/internal/modules/model"
	"github.com/subtrackhq/subtrack/internal/modules/repo"
)

// AuditService records successful mutations. It deliberately returns nothing:
// an audit write failure is logged and must never roll back the business
// operation it describes.
type AuditService interface {
	Record(ctx context.Context, actorID uuid.UUID, action, entityType, entityID string, spaceID *uuid.UUID, metadata map[string]interface{})
}

type auditService struct {
	r   repo.AuditRepo
	log *zap.Logger
}

func NewAuditService(r repo.AuditRepo, log *zap.Logger) AuditService {
	return &auditService{r: r, log: log}
}

func (s *auditService) Record(ctx context.Context, actorID uuid.UUID, action, entityType, entityID string, spaceID *uuid.UUID, metadata map[string]interface{}) {
	rec := &model.AuditRecord{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		SpaceID:    spaceID,
		Metadata:   datatypes.JSONMap(metadata),
	}
	if err := s.r.Create(ctx, rec); err != nil {
		s.log.Sugar().Warnw("audit write failed",
			"action", action, "entityType", entityType, "entityId", entityID, "err", err)
	}
}
