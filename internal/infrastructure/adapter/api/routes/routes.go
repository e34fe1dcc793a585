package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/localhy/credit-ledger/internal/domain/port/core"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/api/middleware"
)

// Handlers groups every HTTP handler of the service
type Handlers struct {
	Credit       *handler.CreditHandler
	PaidAction   *handler.PaidActionHandler
	Webhook      *handler.WebhookHandler
	Notification *handler.NotificationHandler
	Admin        *handler.AdminHandler
	Health       *handler.HealthHandler
	Metrics      http.Handler // nil when metrics are disabled
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, h Handlers, auth *middleware.Authenticator) {
	router.GET("/healthz", h.Health.Health)
	if h.Metrics != nil {
		router.GET("/metrics", gin.WrapH(h.Metrics))
	}

	// Providers authenticate with their webhook signature
	webhooks := router.Group("/webhooks")
	{
		webhooks.POST("/payments", h.Webhook.Handle)
		webhooks.OPTIONS("/payments", h.Webhook.Options)
	}

	v1 := router.Group("/v1", auth.RequireUser())
	{
		credits := v1.Group("/credits")
		credits.GET("/balance", h.Credit.GetBalance)
		credits.GET("/ledger", h.Credit.GetLedger)
		credits.GET("/stream", h.Credit.Stream)

		actions := v1.Group("/actions")
		actions.GET("", h.PaidAction.ListPrices)
		actions.GET("/:kind/quote", h.PaidAction.Quote)
		actions.POST("/:kind/confirm", h.PaidAction.Confirm)

		notifications := v1.Group("/notifications")
		notifications.GET("", h.Notification.List)
		notifications.POST("/:id/read", h.Notification.MarkRead)
	}

	admin := router.Group("/admin", auth.RequireUser(), middleware.RequireAdmin())
	{
		admin.POST("/credits/adjust", h.Admin.Adjust)
		admin.GET("/credits/:userId/audit", h.Admin.Audit)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, timeProvider coreport.TimeProvider, observers ...gin.HandlerFunc) {
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger, timeProvider))
	router.Use(observers...)
}
