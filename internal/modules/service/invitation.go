package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/subtrackhq/subtrack/internal/config"
	"github.com/subtrackhq/subtrack/internal/modules/model"
	"github.com/subtrackhq/subtrack/internal/modules/repo"
	"github.com/subtrackhq/subtrack/internal/pkg/apperr"
	"github.com/subtrackhq/subtrack/internal/pkg/utils"
)

type InvitationService interface {
	Create(ctx context.Context, inviterID, spaceID uuid.UUID, email string, role model.Role) (*model.Invitation, error)

	// AcceptByToken consumes a pending invitation: the holder's identity must
	// match the bound invitee, or — when unbound — the holder's registered
	// email must equal the invited address exactly, which then binds it.
	AcceptByToken(ctx context.Context, actorID uuid.UUID, token string) (*model.Invitation, error)
	DeclineByToken(ctx context.Context, actorID uuid.UUID, token string) error

	ListPending(ctx context.Context, userID uuid.UUID) ([]model.Invitation, error)
}

// InvitationEvent is the payload handed to the notification collaborator.
type InvitationEvent struct {
	InvitationID string `json:"invitation_id"`
	SpaceID      string `json:"space_id"`
	SpaceName    string `json:"space_name"`
	InviteeEmail string `json:"invitee_email"`
	Role         string `json:"role"`
	AcceptURL    string `json:"accept_url"`
	ExpiresAt    string `json:"expires_at"`
}

type invitationService struct {
	r        repo.InvitationRepo
	spaces   repo.SpaceRepo
	users    repo.UserRepo
	notifier Notifier
	audit    AuditService
	cfg      *config.Config
	log      *zap.Logger
}

func NewInvitationService(r repo.InvitationRepo, spaces repo.SpaceRepo, users repo.UserRepo, notifier Notifier, audit AuditService, cfg *config.Config, log *zap.Logger) InvitationService {
	return &invitationService{r: r, spaces: spaces, users: users, notifier: notifier, audit: audit, cfg: cfg, log: log}
}

func (s *invitationService) Create(ctx context.Context, inviterID, spaceID uuid.UUID, email string, role model.Role) (*model.Invitation, error) {
	fields := map[string]string{}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		fields["email"] = "a valid email is required"
	}
	if !role.Valid() {
		fields["role"] = "role must be admin, editor or viewer"
	}
	if err := apperr.Validation(fields); err != nil {
		return nil, err
	}

	space, err := s.requireAdmin(ctx, spaceID, inviterID)
	if err != nil {
		return nil, err
	}

	isMember, err := s.spaces.HasAcceptedMemberWithEmail(ctx, spaceID, email)
	if err != nil {
		return nil, storageErr(err)
	}
	if isMember {
		return nil, apperr.ErrAlreadyMember
	}

	now := time.Now()
	hasPending, err := s.r.HasPendingForEmail(ctx, spaceID, email, now)
	if err != nil {
		return nil, storageErr(err)
	}
	if hasPending {
		return nil, apperr.ErrDuplicateInvitation
	}

	token, err := utils.NewInviteToken()
	if err != nil {
		return nil, err
	}

	inv := &model.Invitation{
		SpaceID:      spaceID,
		InviterID:    inviterID,
		InviteeEmail: email,
		Role:         role,
		Token:        token,
		Status:       model.InvitationPending,
		InvitedAt:    now,
		ExpiresAt:    now.Add(time.Duration(s.cfg.Invite.ExpireHours) * time.Hour),
	}

	// Bind the invitee lazily: only when the invited email already belongs
	// to a registered account.
	if u, err := s.users.GetByEmail(ctx, email); err == nil {
		inv.InviteeID = &u.ID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storageErr(err)
	}

	if err := s.r.Create(ctx, inv); err != nil {
		return nil, storageErr(err)
	}

	s.publishCreated(ctx, space, inv)
	s.audit.Record(ctx, inviterID, "invitation.create", "invitation", inv.ID.String(), &spaceID,
		map[string]interface{}{"invitee_email": email, "role": string(role)})
	return inv, nil
}

func (s *invitationService) AcceptByToken(ctx context.Context, actorID uuid.UUID, token string) (*model.Invitation, error) {
	inv, err := s.resolve(ctx, actorID, token)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.r.Accept(ctx, inv, actorID, now); err != nil {
		return nil, storageErr(err)
	}

	inv.Status = model.InvitationAccepted
	inv.InviteeID = &actorID
	inv.RespondedAt = &now

	s.audit.Record(ctx, actorID, "invitation.accept", "invitation", inv.ID.String(), &inv.SpaceID,
		map[string]interface{}{"role": string(inv.Role)})
	return inv, nil
}

func (s *invitationService) DeclineByToken(ctx context.Context, actorID uuid.UUID, token string) error {
	inv, err := s.resolve(ctx, actorID, token)
	if err != nil {
		return err
	}

	if err := s.r.Decline(ctx, inv, actorID, time.Now()); err != nil {
		return storageErr(err)
	}

	s.audit.Record(ctx, actorID, "invitation.decline", "invitation", inv.ID.String(), &inv.SpaceID, nil)
	return nil
}

func (s *invitationService) ListPending(ctx context.Context, userID uuid.UUID) ([]model.Invitation, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, storageErr(err)
	}
	out, err := s.r.ListPendingFor(ctx, userID, u.Email, time.Now())
	if err != nil {
		return nil, storageErr(err)
	}
	return out, nil
}

// resolve performs the shared token resolution for accept and decline. The
// distinct error kinds exist for logging; the transport boundary collapses
// them into one generic message.
func (s *invitationService) resolve(ctx context.Context, actorID uuid.UUID, token string) (*model.Invitation, error) {
	if token == "" {
		return nil, apperr.ErrInvalidToken
	}

	inv, err := s.r.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrInvalidToken
		}
		return nil, storageErr(err)
	}
	if inv.Status != model.InvitationPending || inv.Expired(time.Now()) {
		return nil, apperr.ErrInvalidToken
	}

	if inv.InviteeID != nil {
		if *inv.InviteeID != actorID {
			return nil, apperr.ErrWrongRecipient
		}
		return inv, nil
	}

	actor, err := s.users.Get(ctx, actorID)
	if err != nil {
		return nil, storageErr(err)
	}
	if actor.Email != inv.InviteeEmail {
		return nil, apperr.ErrEmailMismatch
	}
	return inv, nil
}

func (s *invitationService) requireAdmin(ctx context.Context, spaceID, actorID uuid.UUID) (*model.Space, error) {
	space, err := s.spaces.Get(ctx, spaceID)
	if err != nil {
		return nil, storageErr(err)
	}
	m, err := s.spaces.GetMembership(ctx, spaceID, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, storageErr(err)
	}
	if m.Status != model.MembershipAccepted {
		return nil, apperr.ErrNotFound
	}
	if !m.Role.Allows(model.RoleAdmin) {
		return nil, apperr.ErrForbidden
	}
	return space, nil
}

func (s *invitationService) publishCreated(ctx context.Context, space *model.Space, inv *model.Invitation) {
	if s.notifier == nil {
		return
	}
	evt := InvitationEvent{
		InvitationID: inv.ID.String(),
		SpaceID:      inv.SpaceID.String(),
		SpaceName:    space.Name,
		InviteeEmail: inv.InviteeEmail,
		Role:         string(inv.Role),
		AcceptURL:    fmt.Sprintf("%s?token=%s", s.cfg.Invite.AcceptBaseURL, inv.Token),
		ExpiresAt:    inv.ExpiresAt.UTC().Format(time.RFC3339),
	}
	if err := s.notifier.PublishJSON(ctx, s.cfg.RabbitMQ.InvitationRoutingKey, evt); err != nil {
		s.log.Sugar().Warnw("invitation event publish failed", "invitationId", inv.ID, "err", err)
	}
}
