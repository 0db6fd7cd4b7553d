package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/subtrackhq/subtrack/internal/config"
	"github.com/subtrackhq/subtrack/internal/modules/model"
	"github.com/subtrackhq/subtrack/internal/pkg/apperr"
)

func testInviteConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Invite.ExpireHours = 168
	cfg.Invite.AcceptBaseURL = "http://localhost:8080/invitations/accept"
	cfg.RabbitMQ.InvitationRoutingKey = "invitation.created"
	return cfg
}

func newTestInvitationService(r *MockInvitationRepo, spaces *MockSpaceRepo, users *MockUserRepo, notifier Notifier) InvitationService {
	return NewInvitationService(r, spaces, users, notifier, stubAudit{}, testInviteConfig(), zap.NewNop())
}

func pendingInvitation(spaceID uuid.UUID, email string, role model.Role) *model.Invitation {
	now := time.Now()
	return &model.Invitation{
		ID:           uuid.New(),
		SpaceID:      spaceID,
		InviterID:    uuid.New(),
		InviteeEmail: email,
		Role:         role,
		Token:        "tok-" + uuid.NewString(),
		Status:       model.InvitationPending,
		InvitedAt:    now,
		ExpiresAt:    now.Add(7 * 24 * time.Hour),
	}
}

func TestInvitationService_Create(t *testing.T) {
	inviterID := uuid.New()
	spaceID := uuid.New()
	space := &model.Space{ID: spaceID, Name: "Family", OwnerID: inviterID}

	adminLookup := func(spaces *MockSpaceRepo) {
		spaces.On("Get", mock.Anything, spaceID).Return(space, nil)
		spaces.On("GetMembership", mock.Anything, spaceID, inviterID).
			Return(acceptedMembership(spaceID, inviterID, model.RoleAdmin), nil)
	}

	t.Run("successful creation publishes an event", func(t *testing.T) {
		invRepo := &MockInvitationRepo{}
		spaces := &MockSpaceRepo{}
		users := &MockUserRepo{}
		notifier := &MockNotifier{}

		adminLookup(spaces)
		spaces.On("HasAcceptedMemberWithEmail", mock.Anything, spaceID, "kim@example.com").Return(false, nil)
		invRepo.On("HasPendingForEmail", mock.Anything, spaceID, "kim@example.com", mock.Anything).Return(false, nil)
		users.On("GetByEmail", mock.Anything, "kim@example.com").Return(nil, gorm.ErrRecordNotFound)
		invRepo.On("Create", mock.Anything, mock.MatchedBy(func(inv *model.Invitation) bool {
			return inv.InviteeEmail == "kim@example.com" &&
				inv.Status == model.InvitationPending &&
				inv.Token != "" &&
				inv.InviteeID == nil &&
				inv.ExpiresAt.After(inv.InvitedAt)
		})).Return(nil)
		notifier.On("PublishJSON", mock.Anything, "invitation.created", mock.MatchedBy(func(evt InvitationEvent) bool {
			return evt.SpaceName == "Family" && evt.InviteeEmail == "kim@example.com"
		})).Return(nil)

		svc := newTestInvitationService(invRepo, spaces, users, notifier)
		inv, err := svc.Create(context.Background(), inviterID, spaceID, " Kim@Example.com ", model.RoleEditor)

		assert.NoError(t, err)
		assert.NotNil(t, inv)
		assert.Equal(t, "kim@example.com", inv.InviteeEmail)
		invRepo.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("registered invitee is bound at creation", func(t *testing.T) {
		invRepo := &MockInvitationRepo{}
		spaces := &MockSpaceRepo{}
		users := &MockUserRepo{}
		notifier := &MockNotifier{}

		invitee := &model.User{ID: uuid.New(), Email: "kim@example.com"}
		adminLookup(spaces)
		spaces.On("HasAcceptedMemberWithEmail", mock.Anything, spaceID, "kim@example.com").Return(false, nil)
		invRepo.On("HasPendingForEmail", mock.Anything, spaceID, "kim@example.com", mock.Anything).Return(false, nil)
		users.On("GetByEmail", mock.Anything, "kim@example.com").Return(invitee, nil)
		invRepo.On("Create", mock.Anything, mock.MatchedBy(func(inv *model.Invitation) bool {
			return inv.InviteeID != nil && *inv.InviteeID == invitee.ID
		})).Return(nil)
		notifier.On("PublishJSON", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		svc := newTestInvitationService(invRepo, spaces, users, notifier)
		inv, err := svc.Create(context.Background(), inviterID, spaceID, "kim@example.com", model.RoleViewer)

		assert.NoError(t, err)
		assert.Equal(t, invitee.ID, *inv.InviteeID)
		invRepo.AssertExpectations(t)
	})

	t.Run("publish failure does not fail creation", func(t *testing.T) {
		invRepo := &MockInvitationRepo{}
		spaces := &MockSpaceRepo{}
		users := &MockUserRepo{}
		notifier := &MockNotifier{}

		adminLookup(spaces)
		spaces.On("HasAcceptedMemberWithEmail", mock.Anything, spaceID, "kim@example.com").Return(false, nil)
		invRepo.On("HasPendingForEmail", mock.Anything, spaceID, "kim@example.com", mock.Anything).Return(false, nil)
		users.On("GetByEmail", mock.Anything, "kim@example.com").Return(nil, gorm.ErrRecordNotFound)
		invRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		notifier.On("PublishJSON", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))

		svc := newTestInvitationService(invRepo, spaces, users, notifier)
		inv, err := svc.Create(context.Background(), inviterID, spaceID, "kim@example.com", model.RoleViewer)

		assert.NoError(t, err)
		assert.NotNil(t, inv)
	})

	t.Run("invalid email and role are reported together", func(t *testing.T) {
		svc := newTestInvitationService(&MockInvitationRepo{}, &MockSpaceRepo{}, &MockUserRepo{}, &MockNotifier{})
		_, err := svc.Create(context.Background(), inviterID, spaceID, "not-an-email", model.Role("root"))

		var ve *apperr.ValidationError
		assert.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields, "email")
		assert.Contains(t, ve.Fields, "role")
	})

	t.Run("editor may not invite", func(t *testing.T) {
		invRepo := &MockInvitationRepo{}
		spaces := &MockSpaceRepo{}
		spaces.On("Get", mock.Anything, spaceID).Return(space, nil)
		spaces.On("GetMembership", mock.Anything, spaceID, inviterID).
			Return(acceptedMembership(spaceID, inviterID, model.RoleEditor), nil)

		svc := newTestInvitationService(invRepo, spaces, &MockUserRepo{}, &MockNotifier{})
		_, err := svc.Create(context.Background(), inviterID, spaceID, "kim@example.com", model.RoleViewer)

		assert.ErrorIs(t, err, apperr.ErrForbidden)
	})

	t.Run("non-member inviter sees not found", func(t *testing.T) {
		invRepo := &MockInvitationRepo{}
		spaces := &MockSpaceRepo{}
		spaces.On("Get", mock.Anything, spaceID).Return(space, nil)
		spaces.On("GetMembership", mock.Anything, spaceID, inviterID).Return(nil, gorm.ErrRecordNotFound)

		svc := newTestInvitationService(invRepo, spaces, &MockUserRepo{}, &MockNotifier{})
		_, err := svc.Create(context.Background(), inviterID, spaceID, "kim@example.com", model.RoleViewer)

		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("inviting an accepted member is rejected", func(t *testing.T) {
		invRepo := &MockInvitationRepo{}
		spaces := &MockSpaceRepo{}
		adminLookup(spaces)
		spaces.On("HasAcceptedMemberWithEmail", mock.Anything, spaceID, "kim@example.com").Return(true, nil)

		svc := newTestInvitationService(invRepo, spaces, &MockUserRepo{}, &MockNotifier{})
		_, err := svc.Create(context.Background(), inviterID, spaceID, "kim@example.com", model.RoleViewer)

		assert.ErrorIs(t, err, apperr.ErrAlreadyMember)
	})

	t.Run("a live pending invitation blocks a duplicate", func(t *testing.T) {
		invRepo := &MockInvitationRepo{}
		spaces := &MockSpaceRepo{}
		adminLookup(spaces)
		spaces.On("HasAcceptedMemberWithEmail", mock.Anything, spaceID, "kim@example.com").Return(false, nil)
		invRepo.On("HasPendingForEmail", mock.Anything, spaceID, "kim@example.com", mock.Anything).Return(true, nil)

		svc := newTestInvitationService(invRepo, spaces, &MockUserRepo{}, &MockNotifier{})
		_, err := svc.Create(context.Background(), inviterID, spaceID, "kim@example.com", model.RoleViewer)

		assert.ErrorIs(t, err, apperr.ErrDuplicateInvitation)
	})
}

func TestInvitationService_AcceptByToken(t *testing.T) {
	spaceID := uuid.New()
	actorID := uuid.New()

	t.Run("bound invitee accepts", func(t *testing.T) {
		invRepo := &MockInvitationRepo{}
		inv := pendingInvitation(spaceID, "kim@example.com", model.RoleEditor)
		inv.InviteeID = &actorID
		invRepo.On("GetByToken", mock.Anything, inv.Token).Return(inv, nil)
		invRepo.On("Accept", mock.Anything, inv, actorID, mock.Anything).Return(nil)

		svc := newTestInvitationService(invRepo, &MockSpaceRepo{}, &MockUserRepo{}, &MockNotifier{})
		out, err := svc.AcceptByToken(context.Background(), actorID, inv.Token)

		assert.NoError(t, err)
		assert.Equal(t, model.InvitationAccepted, out.Status)
		assert.NotNil(t, out.RespondedAt)
		invRepo.AssertExpectations(t)
	})

	t.Run("another user holding a bound token is rejected", func(t *testing.T) {
		invRepo := &MockInvitationRepo{}
		inv := pendingInvitation(spaceID, "kim@example.com", model.RoleEditor)
		boundTo := uuid.New()
		inv.InviteeID = &boundTo
		invRepo.On("GetByToken", mock.Anything, inv.Token).Return(inv, nil)

		svc := newTestInvitationService(invRepo, &MockSpaceRepo{}, &MockUserRepo{}, &MockNotifier{})
		_, err := svc.AcceptByToken(context.Background(), actorID, inv.Token)

		assert.ErrorIs(t, err, apperr.ErrWrongRecipient)
		assert.True(t, apperr.IsTokenResolution(err))
	})

	t.Run("unbound token accepts when the email matches exactly", func(t *testing.T) {
		invRepo := &MockInvitationRepo{}
		users := &MockUserRepo{}
		inv := pendingInvitation(spaceID, "kim@example.com", model.RoleViewer)
		invRepo.On("GetByToken", mock.Anything, inv.Token).Return(inv, nil)
		users.On("Get", mock.Anything, actorID).Return(&model.User{ID: actorID, Email: "kim@example.com"}, nil)
		invRepo.On("Accept", mock.Anything, inv, actorID, mock.Anything).Return(nil)

		svc := newTestInvitationService(invRepo, &MockSpaceRepo{}, users, &MockNotifier{})
		out, err := svc.AcceptByToken(context.Background(), actorID, inv.Token)

		assert.NoError(t, err)
		assert.Equal(t, actorID, *out.InviteeID)
		invRepo.AssertExpectations(t)
	})

	t.Run("unbound token with a different email is rejected", func(t *testing.T) {
		invRepo := &MockInvitationRepo{}
		users := &MockUserRepo{}
		inv := pendingInvitation(spaceID, "kim@example.com", model.RoleViewer)
		invRepo.On("GetByToken", mock.Anything, inv.Token).Return(inv, nil)
		users.On("Get", mock.Anything, actorID).Return(&model.User{ID: actorID, Email: "sam@example.com"}, nil)

		svc := newTestInvitationService(invRepo, &MockSpaceRepo{}, users, &MockNotifier{})
		_, err := svc.AcceptByToken(context.Background(), actorID, inv.Token)

		assert.ErrorIs(t, err, apperr.ErrEmailMismatch)
		assert.True(t, apperr.IsTokenResolution(err))
	})

	t.Run("expired invitation reads as an invalid token", func(t *testing.T) {
		invRepo := &MockInvitationRepo{}
		inv := pendingInvitation(spaceID, "kim@example.com", model.RoleViewer)
		inv.ExpiresAt = time.Now().Add(-time.Hour)
		invRepo.On("GetByToken", mock.Anything, inv.Token).Return(inv, nil)

		svc := newTestInvitationService(invRepo, &MockSpaceRepo{}, &MockUserRepo{}, &MockNotifier{})
		_, err := svc.AcceptByToken(context.Background(), actorID, inv.Token)

		assert.ErrorIs(t, err, apperr.ErrInvalidToken)
	})

	t.Run("unknown and empty tokens read the same", func(t *testing.T) {
		invRepo := &MockInvitationRepo{}
		invRepo.On("GetByToken", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

		svc := newTestInvitationService(invRepo, &MockSpaceRepo{}, &MockUserRepo{}, &MockNotifier{})

		_, err := svc.AcceptByToken(context.Background(), actorID, "nope")
		assert.ErrorIs(t, err, apperr.ErrInvalidToken)

		_, err = svc.AcceptByToken(context.Background(), actorID, "")
		assert.ErrorIs(t, err, apperr.ErrInvalidToken)
	})

	t.Run("second accept of the same token loses the conditional update", func(t *testing.T) {
		invRepo := &MockInvitationRepo{}
		inv := pendingInvitation(spaceID, "kim@example.com", model.RoleViewer)
		inv.InviteeID = &actorID
		invRepo.On("GetByToken", mock.Anything, inv.Token).Return(inv, nil)
		invRepo.On("Accept", mock.Anything, inv, actorID, mock.Anything).Return(apperr.ErrAlreadyProcessed)

		svc := newTestInvitationService(invRepo, &MockSpaceRepo{}, &MockUserRepo{}, &MockNotifier{})
		_, err := svc.AcceptByToken(context.Background(), actorID, inv.Token)

		assert.ErrorIs(t, err, apperr.ErrAlreadyProcessed)
	})
}

func TestInvitationService_DeclineByToken(t *testing.T) {
	spaceID := uuid.New()
	actorID := uuid.New()

	t.Run("bound invitee declines", func(t *testing.T) {
		invRepo := &MockInvitationRepo{}
		inv := pendingInvitation(spaceID, "kim@example.com", model.RoleViewer)
		inv.InviteeID = &actorID
		invRepo.On("GetByToken", mock.Anything, inv.Token).Return(inv, nil)
		invRepo.On("Decline", mock.Anything, inv, actorID, mock.Anything).Return(nil)

		svc := newTestInvitationService(invRepo, &MockSpaceRepo{}, &MockUserRepo{}, &MockNotifier{})
		assert.NoError(t, svc.DeclineByToken(context.Background(), actorID, inv.Token))
		invRepo.AssertExpectations(t)
	})

	t.Run("decline shares the accept resolution rules", func(t *testing.T) {
		invRepo := &MockInvitationRepo{}
		inv := pendingInvitation(spaceID, "kim@example.com", model.RoleViewer)
		inv.Status = model.InvitationDeclined
		invRepo.On("GetByToken", mock.Anything, inv.Token).Return(inv, nil)

		svc := newTestInvitationService(invRepo, &MockSpaceRepo{}, &MockUserRepo{}, &MockNotifier{})
		err := svc.DeclineByToken(context.Background(), actorID, inv.Token)

		assert.ErrorIs(t, err, apperr.ErrInvalidToken)
	})
}

func TestInvitationService_ListPending(t *testing.T) {
	actorID := uuid.New()
	spaceID := uuid.New()

	users := &MockUserRepo{}
	users.On("Get", mock.Anything, actorID).Return(&model.User{ID: actorID, Email: "kim@example.com"}, nil)

	invRepo := &MockInvitationRepo{}
	expected := []model.Invitation{*pendingInvitation(spaceID, "kim@example.com", model.RoleViewer)}
	invRepo.On("ListPendingFor", mock.Anything, actorID, "kim@example.com", mock.Anything).Return(expected, nil)

	svc := newTestInvitationService(invRepo, &MockSpaceRepo{}, users, &MockNotifier{})
	out, err := svc.ListPending(context.Background(), actorID)

	assert.NoError(t, err)
	assert.Len(t, out, 1)
	invRepo.AssertExpectations(t)
}
