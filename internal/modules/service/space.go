package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/subtrackhq/subtrack/internal/modules/model"
	"github.com/subtrackhq/subtrack/internal/modules/repo"
	"github.com/subtrackhq/subtrack/internal/pkg/apperr"
)

type SpaceService interface {
	CreateSpace(ctx context.Context, ownerID uuid.UUID, name, description string) (*model.Space, error)
	// DeleteSpace removes all memberships and then the space, atomically.
	// Only the owner may delete.
	DeleteSpace(ctx context.Context, requesterID, spaceID uuid.UUID) error

	AddMember(ctx context.Context, actorID, spaceID, userID uuid.UUID, role model.Role) error
	// Reinvite reopens a declined membership into pending with a fresh role
	// and inviter; it never creates a second row.
	Reinvite(ctx context.Context, actorID, spaceID, userID uuid.UUID, role model.Role) error
	RemoveMember(ctx context.Context, actorID, spaceID, userID uuid.UUID) error
	UpdateRole(ctx context.Context, actorID, spaceID, userID uuid.UUID, role model.Role) error

	ListAccessible(ctx context.Context, userID uuid.UUID) ([]repo.SpaceSummary, error)

	// HasPermission is the authorization predicate gating every space-scoped
	// operation: an accepted membership whose role covers required.
	HasPermission(ctx context.Context, spaceID, userID uuid.UUID, required model.Role) (bool, error)
}

type spaceService struct {
	r     repo.SpaceRepo
	audit AuditService
	log   *zap.Logger
}

func NewSpaceService(r repo.SpaceRepo, audit AuditService, log *zap.Logger) SpaceService {
	return &spaceService{r: r, audit: audit, log: log}
}

func (s *spaceService) CreateSpace(ctx context.Context, ownerID uuid.UUID, name, description string) (*model.Space, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation(map[string]string{"name": "name is required"})
	}

	now := time.Now()
	space := &model.Space{Name: name, Description: description, OwnerID: ownerID}
	owner := &model.Membership{
		UserID:     ownerID,
		Role:       model.RoleAdmin,
		Status:     model.MembershipAccepted,
		InvitedBy:  ownerID,
		InvitedAt:  now,
		AcceptedAt: &now,
	}
	if err := s.r.CreateWithOwner(ctx, space, owner); err != nil {
		return nil, storageErr(err)
	}

	s.audit.Record(ctx, ownerID, "space.create", "space", space.ID.String(), &space.ID,
		map[string]interface{}{"name": name})
	return space, nil
}

func (s *spaceService) DeleteSpace(ctx context.Context, requesterID, spaceID uuid.UUID) error {
	space, _, err := s.requireMember(ctx, spaceID, requesterID)
	if err != nil {
		return err
	}
	if space.OwnerID != requesterID {
		return apperr.ErrForbidden
	}

	if err := s.r.DeleteCascade(ctx, spaceID); err != nil {
		return storageErr(err)
	}

	s.audit.Record(ctx, requesterID, "space.delete", "space", spaceID.String(), nil,
		map[string]interface{}{"name": space.Name})
	return nil
}

func (s *spaceService) AddMember(ctx context.Context, actorID, spaceID, userID uuid.UUID, role model.Role) error {
	if !role.Valid() {
		return apperr.Validation(map[string]string{"role": "role must be admin, editor or viewer"})
	}
	if _, _, err := s.requireRole(ctx, spaceID, actorID, model.RoleAdmin); err != nil {
		return err
	}

	if _, err := s.r.GetMembership(ctx, spaceID, userID); err == nil {
		return apperr.ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return storageErr(err)
	}

	m := &model.Membership{
		SpaceID:   spaceID,
		UserID:    userID,
		Role:      role,
		Status:    model.MembershipPending,
		InvitedBy: actorID,
		InvitedAt: time.Now(),
	}
	if err := s.r.CreateMembership(ctx, m); err != nil {
		return storageErr(err)
	}

	s.audit.Record(ctx, actorID, "member.add", "membership", m.ID.String(), &spaceID,
		map[string]interface{}{"user_id": userID.String(), "role": string(role)})
	return nil
}

func (s *spaceService) Reinvite(ctx context.Context, actorID, spaceID, userID uuid.UUID, role model.Role) error {
	if !role.Valid() {
		return apperr.Validation(map[string]string{"role": "role must be admin, editor or viewer"})
	}
	if _, _, err := s.requireRole(ctx, spaceID, actorID, model.RoleAdmin); err != nil {
		return err
	}

	m, err := s.r.GetMembership(ctx, spaceID, userID)
	if err != nil {
		return storageErr(err)
	}
	if m.Status != model.MembershipDeclined {
		return apperr.Validation(map[string]string{"status": "only a declined membership can be re-invited"})
	}

	rows, err := s.r.ReopenDeclined(ctx, spaceID, userID, role, actorID, time.Now())
	if err != nil {
		return storageErr(err)
	}
	if rows == 0 {
		// Lost a race against another transition on the same row.
		return apperr.ErrAlreadyProcessed
	}

	s.audit.Record(ctx, actorID, "member.reinvite", "membership", m.ID.String(), &spaceID,
		map[string]interface{}{"user_id": userID.String(), "role": string(role)})
	return nil
}

func (s *spaceService) RemoveMember(ctx context.Context, actorID, spaceID, userID uuid.UUID) error {
	space, _, err := s.requireRole(ctx, spaceID, actorID, model.RoleAdmin)
	if err != nil {
		return err
	}
	if userID == space.OwnerID {
		// The owner leaves only by transferring ownership or deleting the
		// space; silent removal would orphan the admin invariant.
		return apperr.ErrForbidden
	}

	rows, err := s.r.DeleteMembership(ctx, spaceID, userID)
	if err != nil {
		return storageErr(err)
	}
	if rows == 0 {
		return apperr.ErrNotFound
	}

	s.audit.Record(ctx, actorID, "member.remove", "membership", userID.String(), &spaceID, nil)
	return nil
}

func (s *spaceService) UpdateRole(ctx context.Context, actorID, spaceID, userID uuid.UUID, role model.Role) error {
	if !role.Valid() {
		return apperr.Validation(map[string]string{"role": "role must be admin, editor or viewer"})
	}
	space, _, err := s.requireRole(ctx, spaceID, actorID, model.RoleAdmin)
	if err != nil {
		return err
	}
	if userID == space.OwnerID {
		// The owner's role is immutable at admin.
		return apperr.ErrForbidden
	}

	if _, err := s.r.GetMembership(ctx, spaceID, userID); err != nil {
		return storageErr(err)
	}
	if err := s.r.UpdateMemberRole(ctx, spaceID, userID, role); err != nil {
		return storageErr(err)
	}

	s.audit.Record(ctx, actorID, "member.role_update", "membership", userID.String(), &spaceID,
		map[string]interface{}{"role": string(role)})
	return nil
}

func (s *spaceService) ListAccessible(ctx context.Context, userID uuid.UUID) ([]repo.SpaceSummary, error) {
	out, err := s.r.ListAccessible(ctx, userID)
	if err != nil {
		return nil, storageErr(err)
	}
	return out, nil
}

func (s *spaceService) HasPermission(ctx context.Context, spaceID, userID uuid.UUID, required model.Role) (bool, error) {
	m, err := s.r.GetMembership(ctx, spaceID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, storageErr(err)
	}
	if m.Status != model.MembershipAccepted {
		return false, nil
	}
	return m.Role.Allows(required), nil
}

// requireMember resolves the space and the actor's accepted membership.
// A missing or non-accepted membership surfaces as NotFound so outsiders
// cannot distinguish "hidden" from "absent".
func (s *spaceService) requireMember(ctx context.Context, spaceID, actorID uuid.UUID) (*model.Space, *model.Membership, error) {
	space, err := s.r.Get(ctx, spaceID)
	if err != nil {
		return nil, nil, storageErr(err)
	}
	m, err := s.r.GetMembership(ctx, spaceID, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.ErrNotFound
		}
		return nil, nil, storageErr(err)
	}
	if m.Status != model.MembershipAccepted {
		return nil, nil, apperr.ErrNotFound
	}
	return space, m, nil
}

func (s *spaceService) requireRole(ctx context.Context, spaceID, actorID uuid.UUID, required model.Role) (*model.Space, *model.Membership, error) {
	space, m, err := s.requireMember(ctx, spaceID, actorID)
	if err != nil {
		return nil, nil, err
	}
	if !m.Role.Allows(required) {
		return nil, nil, apperr.ErrForbidden
	}
	return space, m, nil
}
