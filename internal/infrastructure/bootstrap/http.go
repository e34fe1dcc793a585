package bootstrap

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/api/routes"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/payment"
)

// Authenticator verifies the bearer tokens issued by the identity service
func (a *App) Authenticator() *middleware.Authenticator {
	return middleware.NewAuthenticator(a.Config.Auth.JWTSecret, a.Config.Auth.Issuer, a.TimeProvider, a.Logger)
}

// HTTPHandler builds the gin router with every route and wraps it in CORS
func (a *App) HTTPHandler() http.Handler {
	router := gin.New()

	var observers []gin.HandlerFunc
	h := routes.Handlers{
		Credit:       handler.NewCreditHandler(a.Credits, a.Subscriber, a.Logger),
		PaidAction:   handler.NewPaidActionHandler(a.Gate, a.Logger),
		Webhook:      handler.NewWebhookHandler(a.Webhooks, a.Logger),
		Notification: handler.NewNotificationHandler(a.Notifications, a.Logger),
		Admin:        handler.NewAdminHandler(a.Credits, a.Logger),
		Health:       handler.NewHealthHandler(a.Logger, a.HealthChecks...),
	}
	if a.Prometheus != nil {
		h.Metrics = a.Prometheus.Handler()
		observers = append(observers, a.Prometheus.GinMiddleware())
	}

	routes.SetupMiddlewares(router, a.Logger, a.TimeProvider, observers...)
	routes.SetupRoutes(router, h, a.Authenticator())

	return cors.New(cors.Options{
		AllowedOrigins: a.Config.Server.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: a.allowedHeaders(),
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         a.Config.Server.CORS.MaxAge,
	}).Handler(router)
}

func (a *App) allowedHeaders() []string {
	headers := []string{
		"Accept",
		"Authorization",
		"Content-Type",
		handler.IdempotencyKeyHeader,
		middleware.RequestIDHeader,
	}

	paypal := a.Config.Payments.PayPal.SignatureHeader
	if paypal == "" {
		paypal = payment.DefaultPayPalSignatureHeader
	}
	creem := a.Config.Payments.Creem.SignatureHeader
	if creem == "" {
		creem = payment.DefaultCreemSignatureHeader
	}
	return append(headers, paypal, creem)
}
