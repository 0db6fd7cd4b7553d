package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditRecord is written after a successful mutation. Audit failures are
// logged and never roll back the business operation they describe.
type AuditRecord struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ActorID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"actor_id"`
	Action     string     `gorm:"not null" json:"action"`
	EntityType string     `gorm:"not null" json:"entity_type"`
	EntityID   string     `gorm:"not null" json:"entity_id"`
	SpaceID    *uuid.UUID `gorm:"type:uuid;index" json:"space_id,omitempty"`

	Metadata datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (AuditRecord) TableName() string { return "audit_records" }
