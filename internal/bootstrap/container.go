package bootstrap

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/subtrackhq/subtrack/internal/config"
	"github.com/subtrackhq/subtrack/internal/infra/blob"
	"github.com/subtrackhq/subtrack/internal/infra/cache"
	"github.com/subtrackhq/subtrack/internal/infra/db"
	"github.com/subtrackhq/subtrack/internal/infra/logger"
	"github.com/subtrackhq/subtrack/internal/infra/mq"
	"github.com/subtrackhq/subtrack/internal/modules/handler"
	"github.com/subtrackhq/subtrack/internal/modules/model"
	"github.com/subtrackhq/subtrack/internal/modules/repo"
	"github.com/subtrackhq/subtrack/internal/modules/service"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		// [optional] auto migrate
		if cfg.Database.AutoMigrate {
			_ = d.AutoMigrate(
				&model.User{},
				&model.Space{},
				&model.Membership{},
				&model.Invitation{},
				&model.Subscription{},
				&model.AuditRecord{},
			)
		}
		return d, nil
	})

	// Redis
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return cache.New(cfg), nil
	})
	do.Provide(inj, func(i *do.Injector) (*cache.SummaryCache, error) {
		return cache.NewSummaryCache(
			do.MustInvoke[*redis.Client](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	// RabbitMQ
	do.Provide(inj, func(i *do.Injector) (*amqp.Connection, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return amqp.Dial(cfg.RabbitMQ.URL)
	})
	do.Provide(inj, func(i *do.Injector) (*mq.Publisher, error) {
		return mq.NewPublisher(
			do.MustInvoke[*amqp.Connection](i),
			do.MustInvoke[*config.Config](i),
		)
	})

	// S3
	do.Provide(inj, func(i *do.Injector) (*blob.Store, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return blob.NewStore(context.Background(), cfg)
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.UserRepo, error) {
		return repo.NewUserRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.SpaceRepo, error) {
		return repo.NewSpaceRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.InvitationRepo, error) {
		return repo.NewInvitationRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.SubscriptionRepo, error) {
		return repo.NewSubscriptionRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.AuditRepo, error) {
		return repo.NewAuditRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.AuditService, error) {
		return service.NewAuditService(
			do.MustInvoke[repo.AuditRepo](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.UserService, error) {
		return service.NewUserService(
			do.MustInvoke[repo.UserRepo](i),
			do.MustInvoke[*config.Config](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.SpaceService, error) {
		return service.NewSpaceService(
			do.MustInvoke[repo.SpaceRepo](i),
			do.MustInvoke[service.AuditService](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.InvitationService, error) {
		return service.NewInvitationService(
			do.MustInvoke[repo.InvitationRepo](i),
			do.MustInvoke[repo.SpaceRepo](i),
			do.MustInvoke[repo.UserRepo](i),
			do.MustInvoke[*mq.Publisher](i),
			do.MustInvoke[service.AuditService](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.SubscriptionService, error) {
		return service.NewSubscriptionService(
			do.MustInvoke[repo.SubscriptionRepo](i),
			do.MustInvoke[repo.SpaceRepo](i),
			do.MustInvoke[*cache.SummaryCache](i),
			do.MustInvoke[service.AuditService](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.InsightService, error) {
		return service.NewInsightService(do.MustInvoke[repo.SubscriptionRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ExportService, error) {
		return service.NewExportService(
			do.MustInvoke[repo.SpaceRepo](i),
			do.MustInvoke[repo.SubscriptionRepo](i),
			do.MustInvoke[service.SubscriptionService](i),
			do.MustInvoke[*blob.Store](i),
			do.MustInvoke[*config.Config](i),
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.AuthHandler, error) {
		return handler.NewAuthHandler(do.MustInvoke[service.UserService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.SpaceHandler, error) {
		return handler.NewSpaceHandler(
			do.MustInvoke[service.SpaceService](i),
			do.MustInvoke[service.ExportService](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.InvitationHandler, error) {
		return handler.NewInvitationHandler(do.MustInvoke[service.InvitationService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.SubscriptionHandler, error) {
		return handler.NewSubscriptionHandler(
			do.MustInvoke[service.SubscriptionService](i),
			do.MustInvoke[service.InsightService](i),
		), nil
	})

	return inj
}
