package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dailyjobboost/api/internal/adapters/http/handlers"
	"github.com/dailyjobboost/api/internal/adapters/http/middleware"
	"github.com/dailyjobboost/api/internal/platform/config"
	"github.com/dailyjobboost/api/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 30 * time.Second

// DefaultDispatchTimeout is the timeout for the cron webhook, which sends a
// whole timezone cohort and runs much longer than a normal request.
const DefaultDispatchTimeout = 5 * time.Minute

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// AppConfig contains application configuration.
	AppConfig *config.AppConfig

	// WebhookConfig contains the webhook signing keys.
	WebhookConfig *config.WebhookConfig

	// TokenVerifier verifies admin bearer tokens for protected routes.
	TokenVerifier middleware.TokenVerifier

	// HealthHandler handles health check endpoints.
	HealthHandler *handlers.HealthHandler

	// AuthHandler handles admin login.
	AuthHandler *handlers.AuthHandler

	// QuoteHandler handles the admin quote catalog.
	QuoteHandler *handlers.QuoteHandler

	// SubscriptionHandler handles subscribe and unsubscribe.
	SubscriptionHandler *handlers.SubscriptionHandler

	// CronHandler handles the scheduler webhook.
	CronHandler *handlers.CronHandler

	// Timeout is the default request timeout.
	Timeout time.Duration

	// DispatchTimeout is the timeout for the cron webhook routes.
	DispatchTimeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. Correlation ID - handle distributed tracing correlation
//  4. OpenTelemetry - tracing and metrics
//  5. Logging - request logging (skips health endpoints)
//  6. Timeout - request deadline (applied per-group)
//
// Route groups:
//   - /-/ (internal): Health endpoints, no auth required
//   - /api/v1/ (public API): Subscribe, unsubscribe, random quote, admin login
//   - /api/v1/quotes: Quote catalog management, admin bearer token required
//   - /api/v1/cron: Scheduler webhook, signature-verified
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	// Apply global middleware in order
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.AppConfig.Name),
		telemetry.Middleware(cfg.AppConfig.Name),
		middleware.Logging(cfg.Logger),
	)

	// Register health endpoints (no auth, no timeout for probes)
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	dispatchTimeout := cfg.DispatchTimeout
	if dispatchTimeout <= 0 {
		dispatchTimeout = DefaultDispatchTimeout
	}

	apiV1 := engine.Group("/api/v1")

	// Public routes
	public := apiV1.Group("")
	public.Use(middleware.Timeout(timeout))

	if cfg.AuthHandler != nil {
		cfg.AuthHandler.RegisterAuthRoutes(public)
	}

	if cfg.SubscriptionHandler != nil {
		cfg.SubscriptionHandler.RegisterSubscriptionRoutes(public)
	}

	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterPublicQuoteRoutes(public)
	}

	// Quote catalog management requires an admin bearer token
	if cfg.QuoteHandler != nil && cfg.TokenVerifier != nil {
		admin := apiV1.Group("")
		admin.Use(middleware.Timeout(timeout))
		admin.Use(middleware.RequireAdmin(cfg.TokenVerifier))
		cfg.QuoteHandler.RegisterQuoteRoutes(admin)
	}

	// Scheduler webhook requires a valid request signature and gets a
	// longer deadline than interactive requests
	if cfg.CronHandler != nil && cfg.WebhookConfig != nil {
		cron := apiV1.Group("")
		cron.Use(middleware.Timeout(dispatchTimeout))
		cron.Use(middleware.VerifySignature(
			cfg.WebhookConfig.CurrentSigningKey,
			cfg.WebhookConfig.NextSigningKey,
		))
		cfg.CronHandler.RegisterCronRoutes(cron)
	}
}

// SetupMinimalRouter sets up a minimal router with just health endpoints.
// Useful for testing or lightweight deployments.
func SetupMinimalRouter(engine *gin.Engine, logger *slog.Logger, healthHandler *handlers.HealthHandler) {
	engine.Use(
		middleware.Recovery(logger),
		middleware.RequestID(),
	)

	if healthHandler != nil {
		healthHandler.RegisterHealthRoutesOnEngine(engine)
	}
}
