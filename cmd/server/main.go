package main

//	@title			Subtrack API
//	@version		1.0
//	@description	Subscription spend tracking with shared spaces.
//	@schemes		http https
//	@BasePath		/api/v1

//  Bearer at user level
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				User API key (e.g., "Bearer st-xxxx")

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/subtrackhq/subtrack/internal/bootstrap"
	"github.com/subtrackhq/subtrack/internal/config"
	"github.com/subtrackhq/subtrack/internal/infra/mq"
	"github.com/subtrackhq/subtrack/internal/modules/handler"
	"github.com/subtrackhq/subtrack/internal/router"
)

func main() {
	// build dependency injection container
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	db := do.MustInvoke[*gorm.DB](inj)

	// init gin
	gin.SetMode(cfg.App.Env)

	// build handlers
	authHandler := do.MustInvoke[*handler.AuthHandler](inj)
	spaceHandler := do.MustInvoke[*handler.SpaceHandler](inj)
	invitationHandler := do.MustInvoke[*handler.InvitationHandler](inj)
	subscriptionHandler := do.MustInvoke[*handler.SubscriptionHandler](inj)

	engine := router.NewRouter(router.RouterDeps{
		Config:              cfg,
		DB:                  db,
		Log:                 log,
		AuthHandler:         authHandler,
		SpaceHandler:        spaceHandler,
		InvitationHandler:   invitationHandler,
		SubscriptionHandler: subscriptionHandler,
	})

	addr := fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port)
	srv := &http.Server{Addr: addr, Handler: engine}

	go func() {
		log.Sugar().Infow("starting http server", "addr", addr)
		log.Sugar().Infow("swagger url", "url", addr+"/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Sugar().Fatalw("listen error", "err", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Sugar().Errorw("server shutdown", "err", err)
	}
	if pub, err := do.Invoke[*mq.Publisher](inj); err == nil {
		_ = pub.Close()
	}
	log.Sugar().Info("server exited")
}
