// Package main is the entry point for the service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dailyjobboost/api/internal/adapters/http"
	"github.com/dailyjobboost/api/internal/adapters/http/handlers"
	"github.com/dailyjobboost/api/internal/adapters/mail"
	"github.com/dailyjobboost/api/internal/adapters/storage"
	"github.com/dailyjobboost/api/internal/adapters/trigger"
	"github.com/dailyjobboost/api/internal/app"
	"github.com/dailyjobboost/api/internal/platform/config"
	"github.com/dailyjobboost/api/internal/platform/logging"
	"github.com/dailyjobboost/api/internal/platform/telemetry"
	"github.com/dailyjobboost/api/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Create health registry
	healthRegistry := ports.NewHealthRegistry()

	// 6. Open storage and run schema migration
	store, err := storage.Open(ctx, storage.Config{
		Driver: cfg.Storage.Driver,
		DSN:    cfg.Storage.DSN,
		Path:   cfg.Storage.Path,
	}, logger)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer store.Close()

	if err := healthRegistry.Register(store); err != nil {
		return fmt.Errorf("registering storage health check: %w", err)
	}

	// 7. Auth service signs admin and unsubscribe tokens
	authService, err := app.NewAuthService(app.AuthServiceConfig{
		Admins:              store.Admins,
		Logger:              logger,
		Secret:              cfg.Auth.Secret,
		AdminTokenTTL:       cfg.Auth.AdminTokenTTL,
		UnsubscribeTokenTTL: cfg.Auth.UnsubscribeTokenTTL,
	})
	if err != nil {
		return fmt.Errorf("creating auth service: %w", err)
	}

	// 8. SMTP mailer (needs the auth service for unsubscribe links)
	mailer, err := mail.New(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		FromName: cfg.SMTP.FromName,
		BaseURL:  cfg.SMTP.BaseURL,
	}, authService, logger)
	if err != nil {
		return fmt.Errorf("creating mailer: %w", err)
	}

	if err := healthRegistry.Register(mailer); err != nil {
		return fmt.Errorf("registering smtp health check: %w", err)
	}

	// 9. Application services
	metrics := app.NewMetrics(nil)

	rotation := app.NewRotationEngine(app.RotationEngineConfig{
		Quotes:      store.Quotes,
		DeliveryLog: store.DeliveryLog,
		Logger:      logger,
	})

	dispatcher := app.NewDispatcher(app.DispatcherConfig{
		Mailer:        mailer,
		DeliveryLog:   store.DeliveryLog,
		Metrics:       metrics,
		Logger:        logger,
		BatchSize:     cfg.Dispatcher.BatchSize,
		BatchPause:    cfg.Dispatcher.BatchPause,
		SendAttempts:  cfg.Dispatcher.SendAttempts,
		BackoffBase:   cfg.Dispatcher.BackoffBase,
		MaxConcurrent: cfg.Dispatcher.MaxConcurrent,
	})

	scheduler, err := app.NewScheduler(app.SchedulerConfig{
		Subscribers:    store.Subscribers,
		Picker:         rotation,
		Dispatcher:     dispatcher,
		Metrics:        metrics,
		Logger:         logger,
		DeliveryHour:   cfg.Scheduler.DeliveryHour,
		DeliveryMinute: cfg.Scheduler.DeliveryMinute,
	})
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}

	subscriptionService := app.NewSubscriptionService(app.SubscriptionServiceConfig{
		Subscribers: store.Subscribers,
		DeliveryLog: store.DeliveryLog,
		Mailer:      mailer,
		Metrics:     metrics,
		Logger:      logger,
	})

	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		Quotes: store.Quotes,
		Logger: logger,
	})

	// 10. Internal cron trigger (optional; external schedulers use the webhook)
	var cronTrigger *trigger.CronTrigger

	if cfg.Scheduler.Enabled {
		cronTrigger, err = trigger.New(scheduler, cfg.Scheduler.TickTimeout, logger)
		if err != nil {
			return fmt.Errorf("creating cron trigger: %w", err)
		}

		cronTrigger.Start()
		logger.Info("internal delivery trigger started")
	}

	// 11. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo)
	authHandler := handlers.NewAuthHandler(authService)
	quoteHandler := handlers.NewQuoteHandler(quoteService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService, authService, scheduler)
	cronHandler := handlers.NewCronHandler(scheduler)

	// 12. Create HTTP server
	server := http.New(&cfg.Server, logger)

	// 13. Setup router with all middleware and routes
	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:              logger,
		AppConfig:           &cfg.App,
		WebhookConfig:       &cfg.Webhook,
		TokenVerifier:       authService,
		HealthHandler:       healthHandler,
		AuthHandler:         authHandler,
		QuoteHandler:        quoteHandler,
		SubscriptionHandler: subscriptionHandler,
		CronHandler:         cronHandler,
		Timeout:             http.DefaultRequestTimeout,
	})

	// 14. Start server (non-blocking)
	serverErr := server.Start()

	// 15. Wait for shutdown signal or server error
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-stop:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil {
			return err
		}
	}

	// 16. Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if cronTrigger != nil {
		cronTrigger.Stop(shutdownCtx)
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	logger.Info("service stopped")

	return nil
}
