package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/subtrackhq/subtrack/internal/modules/model"
)

// Scope selects either a user's personal subscriptions or a space's shared
// set; exactly one side is set.
type Scope struct {
	UserID  *uuid.UUID
	SpaceID *uuid.UUID
}

func PersonalScope(userID uuid.UUID) Scope { return Scope{UserID: &userID} }
func SpaceScope(spaceID uuid.UUID) Scope   { return Scope{SpaceID: &spaceID} }

type SubscriptionRepo interface {
	Create(ctx context.Context, s *model.Subscription) error
	Get(ctx context.Context, id uuid.UUID) (*model.Subscription, error)
	// Update applies the given column set; nil values clear columns, which
	// plain struct updates cannot do.
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error

	ListActive(ctx context.Context, scope Scope, now time.Time) ([]model.Subscription, error)

	// AssignSpace links a subscription to a space only while it has no space
	// link; zero rows changed means a link already existed.
	AssignSpace(ctx context.Context, id, spaceID uuid.UUID) (int64, error)
	RenameCategory(ctx context.Context, userID uuid.UUID, oldName, newName string) (int64, error)
}

type subscriptionRepo struct{ db *gorm.DB }

func NewSubscriptionRepo(db *gorm.DB) SubscriptionRepo {
	return &subscriptionRepo{db: db}
}

func (r *subscriptionRepo) Create(ctx context.Context, s *model.Subscription) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *subscriptionRepo) Get(ctx context.Context, id uuid.UUID) (*model.Subscription, error) {
	var s model.Subscription
	if err := r.db.WithContext(ctx).Where(&model.Subscription{ID: id}).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *subscriptionRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *subscriptionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Subscription{}).Error
}

func (r *subscriptionRepo) ListActive(ctx context.Context, scope Scope, now time.Time) ([]model.Subscription, error) {
	q := r.db.WithContext(ctx).
		Where("is_active = ? AND (end_date IS NULL OR end_date > ?)", true, now)

	if scope.SpaceID != nil {
		q = q.Where("space_id = ?", *scope.SpaceID)
	} else if scope.UserID != nil {
		q = q.Where("user_id = ? AND space_id IS NULL", *scope.UserID)
	}

	var out []model.Subscription
	return out, q.Order("created_at").Find(&out).Error
}

func (r *subscriptionRepo) AssignSpace(ctx context.Context, id, spaceID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("id = ? AND space_id IS NULL", id).
		Update("space_id", spaceID)
	return res.RowsAffected, res.Error
}

func (r *subscriptionRepo) RenameCategory(ctx context.Context, userID uuid.UUID, oldName, newName string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("user_id = ? AND category = ?", userID, oldName).
		Update("category", newName)
	return res.RowsAffected, res.Error
}
