package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/subtrackhq/subtrack/internal/pkg/apperr"
)

// Notifier is the outbound event boundary (rabbitmq in production).
type Notifier interface {
	PublishJSON(ctx context.Context, routingKey string, payload any) error
}

// SummaryCache is the read-side cache boundary (redis in production).
type SummaryCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, raw []byte)
	Invalidate(ctx context.Context, keys ...string)
}

// storageErr maps repo failures into the service error taxonomy. Missing
// rows become NotFound; everything else is a storage failure whose partial
// effects the transaction has already rolled back.
func storageErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.ErrNotFound
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	return apperr.Storage(err)
}
