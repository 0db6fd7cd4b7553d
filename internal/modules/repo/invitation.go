package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/subtrackhq/subtrack/internal/modules/model"
	"github.com/subtrackhq/subtrack/internal/pkg/apperr"
)

type InvitationRepo interface {
	Create(ctx context.Context, inv *model.Invitation) error
	GetByToken(ctx context.Context, token string) (*model.Invitation, error)
	HasPendingForEmail(ctx context.Context, spaceID uuid.UUID, email string, now time.Time) (bool, error)

	// Accept consumes the token exactly once: a conditional update flips the
	// invitation out of pending, and only the winning transaction upserts the
	// accepted membership. The losing racer gets apperr.ErrAlreadyProcessed.
	Accept(ctx context.Context, inv *model.Invitation, actorID uuid.UUID, now time.Time) error
	Decline(ctx context.Context, inv *model.Invitation, actorID uuid.UUID, now time.Time) error

	ListPendingFor(ctx context.Context, userID uuid.UUID, email string, now time.Time) ([]model.Invitation, error)
}

type invitationRepo struct{ db *gorm.DB }

func NewInvitationRepo(db *gorm.DB) InvitationRepo {
	return &invitationRepo{db: db}
}

func (r *invitationRepo) Create(ctx context.Context, inv *model.Invitation) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *invitationRepo) GetByToken(ctx context.Context, token string) (*model.Invitation, error) {
	var inv model.Invitation
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invitationRepo) HasPendingForEmail(ctx context.Context, spaceID uuid.UUID, email string, now time.Time) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Invitation{}).
		Where("space_id = ? AND invitee_email = ? AND status = ? AND expires_at > ?",
			spaceID, email, model.InvitationPending, now).
		Count(&n).Error
	return n > 0, err
}

func (r *invitationRepo) Accept(ctx context.Context, inv *model.Invitation, actorID uuid.UUID, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Invitation{}).
			Where("id = ? AND status = ?", inv.ID, model.InvitationPending).
			Updates(map[string]interface{}{
				"status":       model.InvitationAccepted,
				"invitee_id":   actorID,
				"responded_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.ErrAlreadyProcessed
		}

		// A re-invited user may already hold a membership row; overwrite it
		// instead of inserting a duplicate.
		m := model.Membership{
			SpaceID:    inv.SpaceID,
			UserID:     actorID,
			Role:       inv.Role,
			Status:     model.MembershipAccepted,
			InvitedBy:  inv.InviterID,
			InvitedAt:  inv.InvitedAt,
			AcceptedAt: &now,
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "space_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"role":        inv.Role,
				"status":      model.MembershipAccepted,
				"invited_by":  inv.InviterID,
				"accepted_at": now,
			}),
		}).Create(&m).Error
	})
}

func (r *invitationRepo) Decline(ctx context.Context, inv *model.Invitation, actorID uuid.UUID, now time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Invitation{}).
		Where("id = ? AND status = ?", inv.ID, model.InvitationPending).
		Updates(map[string]interface{}{
			"status":       model.InvitationDeclined,
			"invitee_id":   actorID,
			"responded_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrAlreadyProcessed
	}
	return nil
}

func (r *invitationRepo) ListPendingFor(ctx context.Context, userID uuid.UUID, email string, now time.Time) ([]model.Invitation, error) {
	var out []model.Invitation
	err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at > ?", model.InvitationPending, now).
		Where("invitee_id = ? OR (invitee_id IS NULL AND invitee_email = ?)", userID, email).
		Order("invited_at DESC").
		Find(&out).Error
	return out, err
}
