package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/subtrackhq/subtrack/internal/config"
	"github.com/subtrackhq/subtrack/internal/middleware"
	"github.com/subtrackhq/subtrack/internal/modules/handler"
	"github.com/subtrackhq/subtrack/internal/modules/serializer"

	_ "github.com/subtrackhq/subtrack/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	Config              *config.Config
	DB                  *gorm.DB
	Log                 *zap.Logger
	AuthHandler         *handler.AuthHandler
	SpaceHandler        *handler.SpaceHandler
	InvitationHandler   *handler.InvitationHandler
	SubscriptionHandler *handler.SubscriptionHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	// Initialize logger for serializer package
	serializer.SetLogger(d.Log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.ZapLogger(d.Log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// registration is the only unauthenticated endpoint
		v1.POST("/auth/register", d.AuthHandler.Register)

		authed := v1.Group("")
		{
			authed.Use(middleware.UserAuth(d.Config, d.DB))

			// ping endpoint
			authed.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "pong"}) })

			space := authed.Group("/spaces")
			{
				space.GET("", d.SpaceHandler.ListSpaces)
				space.POST("", d.SpaceHandler.CreateSpace)
				space.DELETE("/:space_id", d.SpaceHandler.DeleteSpace)

				space.POST("/:space_id/members", d.SpaceHandler.AddMember)
				space.PUT("/:space_id/members/:user_id", d.SpaceHandler.UpdateRole)
				space.DELETE("/:space_id/members/:user_id", d.SpaceHandler.RemoveMember)
				space.POST("/:space_id/reinvite", d.SpaceHandler.Reinvite)

				space.POST("/:space_id/invitations", d.InvitationHandler.CreateInvitation)

				space.GET("/:space_id/export", d.SpaceHandler.ExportReport)
			}

			invitation := authed.Group("/invitations")
			{
				invitation.GET("", d.InvitationHandler.ListPending)
				invitation.POST("/accept", d.InvitationHandler.Accept)
				invitation.POST("/decline", d.InvitationHandler.Decline)
			}

			subscription := authed.Group("/subscriptions")
			{
				subscription.POST("", d.SubscriptionHandler.CreateSubscription)
				subscription.DELETE("/:id", d.SubscriptionHandler.DeleteSubscription)

				subscription.POST("/:id/end", d.SubscriptionHandler.EndSubscription)
				subscription.POST("/:id/reactivate", d.SubscriptionHandler.ReactivateSubscription)
				subscription.POST("/:id/sync", d.SubscriptionHandler.SyncSubscription)

				subscription.GET("/summary", d.SubscriptionHandler.GetSummary)
				subscription.GET("/by-category", d.SubscriptionHandler.GetByCategory)
				subscription.PUT("/category", d.SubscriptionHandler.RenameCategory)
			}

			authed.GET("/insights", d.SubscriptionHandler.GetInsights)
		}
	}
	return r
}
