package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/subtrackhq/subtrack/internal/modules/model"
)

type AuditRepo interface {
	Create(ctx context.Context, rec *model.AuditRecord) error
}

type auditRepo struct{ db *gorm.DB }

func NewAuditRepo(db *gorm.DB) AuditRepo {
	return &auditRepo{db: db}
}

func (r *auditRepo) Create(ctx context.Context, rec *model.AuditRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}
