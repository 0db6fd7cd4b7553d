package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/subtrackhq/subtrack/internal/pkg/billing"
)

// CategoryOther buckets subscriptions saved without a category.
const CategoryOther = "Other"

// Subscription is a recurring cost record, personal (SpaceID nil) or shared
// inside a space. A subscription links to at most one space, ever.
type Subscription struct {
	ID      uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	SpaceID *uuid.UUID `gorm:"type:uuid;index" json:"space_id,omitempty"`

	ServiceName  string          `gorm:"not null" json:"service_name"`
	Cost         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"cost"`
	Currency     string          `gorm:"type:varchar(8);not null;default:'USD'" json:"currency"`
	BillingCycle billing.Cycle   `gorm:"type:varchar(16);not null" json:"billing_cycle"`
	Category     string          `json:"category"`

	StartDate          time.Time  `gorm:"not null" json:"start_date"`
	EndDate            *time.Time `json:"end_date,omitempty"`
	IsActive           bool       `gorm:"not null;default:true" json:"is_active"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Subscription) TableName() string { return "subscriptions" }

// CountsAsActive is the derived-consistency check: the stored flag is
// authoritative for lifecycle writes, but a past end date always excludes
// the row from aggregates even when the flag is stale.
func (s *Subscription) CountsAsActive(now time.Time) bool {
	if !s.IsActive {
		return false
	}
	return s.EndDate == nil || s.EndDate.After(now)
}

// CategoryOrOther normalizes an empty category for aggregation buckets.
func (s *Subscription) CategoryOrOther() string {
	if s.Category == "" {
		return CategoryOther
	}
	return s.Category
}
