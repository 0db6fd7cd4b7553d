package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/subtrackhq/subtrack/internal/modules/model"
)

// SpaceSummary annotates a space with the querying user's role and the
// accepted-member count.
type SpaceSummary struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	CreatedAt   time.Time  `json:"created_at"`
	Role        model.Role `json:"role"`
	MemberCount int64      `json:"member_count"`
}

type SpaceRepo interface {
	// CreateWithOwner inserts the space row and the owner's accepted admin
	// membership in one transaction; neither survives a partial failure.
	CreateWithOwner(ctx context.Context, space *model.Space, owner *model.Membership) error
	Get(ctx context.Context, id uuid.UUID) (*model.Space, error)
	// DeleteCascade removes all memberships and then the space, atomically.
	DeleteCascade(ctx context.Context, spaceID uuid.UUID) error

	GetMembership(ctx context.Context, spaceID, userID uuid.UUID) (*model.Membership, error)
	CreateMembership(ctx context.Context, m *model.Membership) error
	// ReopenDeclined flips a declined membership back to pending with fresh
	// role, inviter and timestamps. Returns the number of rows changed, which
	// is zero when the membership was not in the declined state.
	ReopenDeclined(ctx context.Context, spaceID, userID uuid.UUID, role model.Role, invitedBy uuid.UUID, now time.Time) (int64, error)
	UpdateMemberRole(ctx context.Context, spaceID, userID uuid.UUID, role model.Role) error
	DeleteMembership(ctx context.Context, spaceID, userID uuid.UUID) (int64, error)

	ListAccessible(ctx context.Context, userID uuid.UUID) ([]SpaceSummary, error)
	HasAcceptedMemberWithEmail(ctx context.Context, spaceID uuid.UUID, email string) (bool, error)
}

type spaceRepo struct{ db *gorm.DB }

func NewSpaceRepo(db *gorm.DB) SpaceRepo {
	return &spaceRepo{db: db}
}

func (r *spaceRepo) CreateWithOwner(ctx context.Context, space *model.Space, owner *model.Membership) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(space).Error; err != nil {
			return err
		}
		owner.SpaceID = space.ID
		return tx.Create(owner).Error
	})
}

func (r *spaceRepo) Get(ctx context.Context, id uuid.UUID) (*model.Space, error) {
	var s model.Space
	if err := r.db.WithContext(ctx).Where(&model.Space{ID: id}).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *spaceRepo) DeleteCascade(ctx context.Context, spaceID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("space_id = ?", spaceID).Delete(&model.Membership{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", spaceID).Delete(&model.Space{}).Error
	})
}

func (r *spaceRepo) GetMembership(ctx context.Context, spaceID, userID uuid.UUID) (*model.Membership, error) {
	var m model.Membership
	err := r.db.WithContext(ctx).
		Where("space_id = ? AND user_id = ?", spaceID, userID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *spaceRepo) CreateMembership(ctx context.Context, m *model.Membership) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *spaceRepo) ReopenDeclined(ctx context.Context, spaceID, userID uuid.UUID, role model.Role, invitedBy uuid.UUID, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Membership{}).
		Where("space_id = ? AND user_id = ? AND status = ?", spaceID, userID, model.MembershipDeclined).
		Updates(map[string]interface{}{
			"role":        role,
			"status":      model.MembershipPending,
			"invited_by":  invitedBy,
			"invited_at":  now,
			"accepted_at": nil,
		})
	return res.RowsAffected, res.Error
}

func (r *spaceRepo) UpdateMemberRole(ctx context.Context, spaceID, userID uuid.UUID, role model.Role) error {
	return r.db.WithContext(ctx).Model(&model.Membership{}).
		Where("space_id = ? AND user_id = ?", spaceID, userID).
		Update("role", role).Error
}

func (r *spaceRepo) DeleteMembership(ctx context.Context, spaceID, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("space_id = ? AND user_id = ?", spaceID, userID).
		Delete(&model.Membership{})
	return res.RowsAffected, res.Error
}

func (r *spaceRepo) ListAccessible(ctx context.Context, userID uuid.UUID) ([]SpaceSummary, error) {
	var out []SpaceSummary
	err := r.db.WithContext(ctx).Table("spaces").
		Select(`spaces.id, spaces.name, spaces.description, spaces.owner_id, spaces.created_at,
			m.role AS role,
			(SELECT COUNT(*) FROM memberships mc WHERE mc.space_id = spaces.id AND mc.status = ?) AS member_count`,
			model.MembershipAccepted).
		Joins("JOIN memberships m ON m.space_id = spaces.id AND m.user_id = ? AND m.status = ?",
			userID, model.MembershipAccepted).
		Order("spaces.created_at").
		Scan(&out).Error
	return out, err
}

func (r *spaceRepo) HasAcceptedMemberWithEmail(ctx context.Context, spaceID uuid.UUID, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("memberships").
		Joins("JOIN users ON users.id = memberships.user_id").
		Where("memberships.space_id = ? AND memberships.status = ? AND users.email = ?",
			spaceID, model.MembershipAccepted, email).
		Count(&n).Error
	return n > 0, err
}
