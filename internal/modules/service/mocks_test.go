package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/subtrackhq/subtrack/internal/modules/model"
	"github.com/subtrackhq/subtrack/internal/modules/repo"
)

// MockSpaceRepo is a mock implementation of repo.SpaceRepo
type MockSpaceRepo struct {
	mock.Mock
}

func (m *MockSpaceRepo) CreateWithOwner(ctx context.Context, space *model.Space, owner *model.Membership) error {
	args := m.Called(ctx, space, owner)
	return args.Error(0)
}

func (m *MockSpaceRepo) Get(ctx context.Context, id uuid.UUID) (*model.Space, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Space), args.Error(1)
}

func (m *MockSpaceRepo) DeleteCascade(ctx context.Context, spaceID uuid.UUID) error {
	args := m.Called(ctx, spaceID)
	return args.Error(0)
}

func (m *MockSpaceRepo) GetMembership(ctx context.Context, spaceID, userID uuid.UUID) (*model.Membership, error) {
	args := m.Called(ctx, spaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Membership), args.Error(1)
}

func (m *MockSpaceRepo) CreateMembership(ctx context.Context, mem *model.Membership) error {
	args := m.Called(ctx, mem)
	return args.Error(0)
}

func (m *MockSpaceRepo) ReopenDeclined(ctx context.Context, spaceID, userID uuid.UUID, role model.Role, invitedBy uuid.UUID, now time.Time) (int64, error) {
	args := m.Called(ctx, spaceID, userID, role, invitedBy, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSpaceRepo) UpdateMemberRole(ctx context.Context, spaceID, userID uuid.UUID, role model.Role) error {
	args := m.Called(ctx, spaceID, userID, role)
	return args.Error(0)
}

func (m *MockSpaceRepo) DeleteMembership(ctx context.Context, spaceID, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, spaceID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSpaceRepo) ListAccessible(ctx context.Context, userID uuid.UUID) ([]repo.SpaceSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repo.SpaceSummary), args.Error(1)
}

func (m *MockSpaceRepo) HasAcceptedMemberWithEmail(ctx context.Context, spaceID uuid.UUID, email string) (bool, error) {
	args := m.Called(ctx, spaceID, email)
	return args.Bool(0), args.Error(1)
}

// MockInvitationRepo is a mock implementation of repo.InvitationRepo
type MockInvitationRepo struct {
	mock.Mock
}

func (m *MockInvitationRepo) Create(ctx context.Context, inv *model.Invitation) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvitationRepo) GetByToken(ctx context.Context, token string) (*model.Invitation, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invitation), args.Error(1)
}

func (m *MockInvitationRepo) HasPendingForEmail(ctx context.Context, spaceID uuid.UUID, email string, now time.Time) (bool, error) {
	args := m.Called(ctx, spaceID, email, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvitationRepo) Accept(ctx context.Context, inv *model.Invitation, actorID uuid.UUID, now time.Time) error {
	args := m.Called(ctx, inv, actorID, now)
	return args.Error(0)
}

func (m *MockInvitationRepo) Decline(ctx context.Context, inv *model.Invitation, actorID uuid.UUID, now time.Time) error {
	args := m.Called(ctx, inv, actorID, now)
	return args.Error(0)
}

func (m *MockInvitationRepo) ListPendingFor(ctx context.Context, userID uuid.UUID, email string, now time.Time) ([]model.Invitation, error) {
	args := m.Called(ctx, userID, email, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Invitation), args.Error(1)
}

// MockUserRepo is a mock implementation of repo.UserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepo) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) UsernameTaken(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockSubscriptionRepo is a mock implementation of repo.SubscriptionRepo
type MockSubscriptionRepo struct {
	mock.Mock
}

func (m *MockSubscriptionRepo) Create(ctx context.Context, s *model.Subscription) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSubscriptionRepo) Get(ctx context.Context, id uuid.UUID) (*model.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockSubscriptionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSubscriptionRepo) ListActive(ctx context.Context, scope repo.Scope, now time.Time) ([]model.Subscription, error) {
	args := m.Called(ctx, scope, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepo) AssignSpace(ctx context.Context, id, spaceID uuid.UUID) (int64, error) {
	args := m.Called(ctx, id, spaceID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSubscriptionRepo) RenameCategory(ctx context.Context, userID uuid.UUID, oldName, newName string) (int64, error) {
	args := m.Called(ctx, userID, oldName, newName)
	return args.Get(0).(int64), args.Error(1)
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) PublishJSON(ctx context.Context, routingKey string, payload any) error {
	args := m.Called(ctx, routingKey, payload)
	return args.Error(0)
}

// stubAudit discards audit records; the services under test never read them back.
type stubAudit struct{}

func (stubAudit) Record(ctx context.Context, actorID uuid.UUID, action, entityType, entityID string, spaceID *uuid.UUID, metadata map[string]interface{}) {
}

// stubCache is an in-memory SummaryCache for exercising hit and miss paths.
type stubCache struct {
	entries map[string][]byte
}

func newStubCache() *stubCache {
	return &stubCache{entries: map[string][]byte{}}
}

func (c *stubCache) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, ok := c.entries[key]
	return raw, ok
}

func (c *stubCache) Set(ctx context.Context, key string, raw []byte) {
	c.entries[key] = raw
}

func (c *stubCache) Invalidate(ctx context.Context, keys ...string) {
	for _, k := range keys {
		delete(c.entries, k)
	}
}

func acceptedMembership(spaceID, userID uuid.UUID, role model.Role) *model.Membership {
	now := time.Now()
	return &model.Membership{
		ID:         uuid.New(),
		SpaceID:    spaceID,
		UserID:     userID,
		Role:       role,
		Status:     model.MembershipAccepted,
		InvitedBy:  userID,
		InvitedAt:  now,
		AcceptedAt: &now,
	}
}
