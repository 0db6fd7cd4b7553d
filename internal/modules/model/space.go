package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed three-tier privilege lattice for space members.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

var roleRank = map[Role]int{RoleViewer: 1, RoleEditor: 2, RoleAdmin: 3}

// Allows reports whether a holder of r may perform an action requiring
// required. admin > editor > viewer; no custom permissions exist.
func (r Role) Allows(required Role) bool {
	return roleRank[r] >= roleRank[required] && roleRank[required] > 0
}

type MembershipStatus string

const (
	MembershipPending  MembershipStatus = "pending"
	MembershipAccepted MembershipStatus = "accepted"
	MembershipDeclined MembershipStatus = "declined"
)

// Space is a shared container of subscriptions with its own member list.
// The owner's accepted admin membership is created in the same transaction
// as the space row and can never be removed or demoted.
type Space struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Space) TableName() string { return "spaces" }

// Membership relates a user to a space with a role and acceptance status.
// At most one row per (space, user); a declined row is reopened by
// re-invitation rather than duplicated.
type Membership struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SpaceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_space_user" json:"space_id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_space_user" json:"user_id"`

	Role   Role             `gorm:"type:varchar(16);not null" json:"role"`
	Status MembershipStatus `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`

	InvitedBy  uuid.UUID  `gorm:"type:uuid;not null" json:"invited_by"`
	InvitedAt  time.Time  `gorm:"not null" json:"invited_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
}

func (Membership) TableName() string { return "memberships" }
