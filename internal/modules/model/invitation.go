package model

import (
	"time"

	"github.com/google/uuid"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
	InvitationExpired  InvitationStatus = "expired"
)

// Invitation is the tokenized email-link variant of a pending membership.
// The token is a bearer credential: possession plus a matching (or unset)
// invitee identity is the sole gate at acceptance time.
type Invitation struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SpaceID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"space_id"`
	InviterID    uuid.UUID  `gorm:"type:uuid;not null" json:"inviter_id"`
	InviteeEmail string     `gorm:"not null;index" json:"invitee_email"`
	InviteeID    *uuid.UUID `gorm:"type:uuid;index" json:"invitee_id,omitempty"`

	Role   Role             `gorm:"type:varchar(16);not null" json:"role"`
	Token  string           `gorm:"uniqueIndex;not null" json:"-"`
	Status InvitationStatus `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`

	InvitedAt   time.Time  `gorm:"not null" json:"invited_at"`
	ExpiresAt   time.Time  `gorm:"not null" json:"expires_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

func (Invitation) TableName() string { return "invitations" }

// Expired reports whether the invitation is past its expiry horizon.
// Expiry is enforced at read time; no background sweep is required.
func (i *Invitation) Expired(now time.Time) bool {
	return !i.ExpiresAt.After(now)
}
