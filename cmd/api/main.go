package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"maps"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/logger"
	"github.com/localhy/credit-ledger/internal/infrastructure/bootstrap"
	"github.com/localhy/credit-ledger/internal/infrastructure/config"
)

const lockJanitorInterval = time.Minute

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate essential configuration
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.IsProduction(), cfg.Logger.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to initialise the ledger", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	if err := app.Migrate(ctx); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{"error": err.Error()})
		_ = app.Close(context.Background())
		os.Exit(1)
	}

	if err := app.Seed(ctx); err != nil {
		appLogger.Error("Failed to seed development accounts", map[string]any{"error": err.Error()})
	}

	app.StartLockJanitor(ctx, lockJanitorInterval)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           app.HTTPHandler(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr":  server.Addr,
			"env":   cfg.Environment,
			"store": cfg.Ledger.Store,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Failed to start server", map[string]any{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop taking requests before the change feed and store go away
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{"error": err.Error()})
	}

	if err := app.Close(shutdownCtx); err != nil {
		appLogger.Error("Failed to release resources", map[string]any{"error": err.Error()})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	// Validate server configuration
	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}

	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}

	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	// The database is only required by the postgres store
	if cfg.Ledger.Store != bootstrap.StoreMemory {
		required := []struct{ key, value, env string }{
			{"database.host", cfg.Database.Host, "LH_DB_HOST"},
			{"database.port", cfg.Database.Port, "LH_DB_PORT"},
			{"database.username", cfg.Database.Username, "LH_DB_USERNAME"},
			{"database.password", cfg.Database.Password, "LH_DB_PASSWORD"},
			{"database.database", cfg.Database.Database, "LH_DB_NAME"},
		}
		for _, field := range required {
			if field.value != "" {
				continue
			}
			if cfg.IsProduction() {
				missingConfigs = append(missingConfigs, fmt.Sprintf("%s (or %s environment variable)", field.key, field.env))
			} else {
				missingConfigs = append(missingConfigs, field.key)
			}
		}

		if cfg.Database.QueryTimeout == 0 {
			missingConfigs = append(missingConfigs, "database.queryTimeout")
		}
	}

	// Validate ledger configuration
	if cfg.Ledger.LockTimeoutMs == 0 {
		missingConfigs = append(missingConfigs, "ledger.lockTimeoutMs")
	}

	if cfg.Ledger.MaxRetries == 0 {
		missingConfigs = append(missingConfigs, "ledger.maxRetries")
	}

	if len(cfg.Pricing.Actions) == 0 {
		missingConfigs = append(missingConfigs, "pricing.actions")
	}

	if cfg.Auth.JWTSecret == "" {
		missingConfigs = append(missingConfigs, "auth.jwtSecret (or LH_JWT_SECRET environment variable)")
	}

	// Environment should be set with a valid value
	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	// Logger configuration
	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	// Return error with list of missing configurations
	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	// Every priced action must cost something
	for _, kind := range slices.Sorted(maps.Keys(cfg.Pricing.Actions)) {
		if cost := cfg.Pricing.Actions[kind]; cost <= 0 {
			return fmt.Errorf("pricing.actions.%s must be a positive credit cost, got %d", kind, cost)
		}
	}

	// In production, a store that forgets balances on restart is never acceptable
	if cfg.IsProduction() {
		if cfg.Ledger.Store == bootstrap.StoreMemory {
			return fmt.Errorf("ledger.store %q is not allowed in production", bootstrap.StoreMemory)
		}

		var warnings []string

		sslMode := strings.ToLower(cfg.Database.SSLMode)
		if sslMode != "require" && sslMode != "verify-ca" && sslMode != "verify-full" {
			warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
		}

		if cfg.Server.ReadTimeout < 5*time.Second {
			warnings = append(warnings, "server.readTimeout is too low for production")
		}

		if cfg.Payments.PayPal.Secret == "" && cfg.Payments.Creem.Secret == "" {
			warnings = append(warnings, "no payment provider secret is configured; every webhook will be rejected")
		}

		if len(cfg.Server.CORS.AllowedOrigins) == 0 {
			warnings = append(warnings, "server.cors.allowedOrigins is empty; browsers cannot call the API")
		}

		if len(warnings) > 0 {
			log.Printf("Warning: potential security issues in production configuration: %v", warnings)
		}
	}

	return nil
}
