package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	coreport "github.com/localhy/credit-ledger/internal/domain/port/core"
	"github.com/localhy/credit-ledger/internal/domain/port/messaging"
	"github.com/localhy/credit-ledger/internal/domain/port/persistence"
	paymentport "github.com/localhy/credit-ledger/internal/domain/port/payment"
	"github.com/localhy/credit-ledger/internal/domain/usecase/credit"
	"github.com/localhy/credit-ledger/internal/domain/usecase/gate"
	"github.com/localhy/credit-ledger/internal/domain/usecase/notification"
	"github.com/localhy/credit-ledger/internal/domain/usecase/webhook"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/cache"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/database"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/database/migration"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/events"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/memory"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/metrics"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/payment"
	timeadapter "github.com/localhy/credit-ledger/internal/infrastructure/adapter/time"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/tracing"
	"github.com/localhy/credit-ledger/internal/infrastructure/config"
)

// ServiceName identifies the ledger in traces and logs
const ServiceName = "credit-ledger"

// Store backends
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Lock backends
const (
	LocksDatabase = "database"
	LocksRedis    = "redis"
	LocksMemory   = "memory"
)

// App holds the wired ledger services and the adapters they run on
type App struct {
	Config       *config.Config
	Logger       coreport.Logger
	TimeProvider coreport.TimeProvider
	Metrics      coreport.Metrics
	Prometheus   *metrics.Prometheus

	Store    persistence.UnitOfWork
	Database *database.Manager
	Redis    *redis.Client
	Locks    persistence.ActionLockRepository

	Publisher  messaging.ChangeFeedPublisher
	Subscriber messaging.ChangeFeedSubscriber

	Credits       *credit.Service
	Gate          *gate.Service
	Webhooks      *webhook.Service
	Notifications *notification.Service

	HealthChecks []handler.HealthCheck

	closers []func(ctx context.Context) error
}

// Option adjusts the App before its services are created
type Option func(*App)

// WithTimeProvider replaces the wall clock
func WithTimeProvider(tp coreport.TimeProvider) Option {
	return func(a *App) { a.TimeProvider = tp }
}

// WithStore runs the services on an already opened store instead of the configured one
func WithStore(store persistence.UnitOfWork) Option {
	return func(a *App) { a.Store = store }
}

// New connects every configured adapter and builds the services on top.
// On failure everything opened so far is closed again.
func New(ctx context.Context, cfg *config.Config, logger coreport.Logger, opts ...Option) (_ *App, err error) {
	app := &App{
		Config:       cfg,
		Logger:       logger,
		TimeProvider: timeadapter.NewRealTimeProvider(),
		Metrics:      metrics.Noop{},
	}
	for _, opt := range opts {
		opt(app)
	}

	defer func() {
		if err != nil {
			_ = app.Close(context.WithoutCancel(ctx))
		}
	}()

	if cfg.Metrics.Enabled {
		app.Prometheus = metrics.NewPrometheus(cfg.Metrics.Namespace)
		app.Metrics = app.Prometheus
	}

	shutdownTracing, err := tracing.Init(ctx, tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
		ServiceName: ServiceName,
		Environment: cfg.Environment,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialise tracing: %w", err)
	}
	app.onClose(shutdownTracing)

	if err := app.openStore(ctx); err != nil {
		return nil, err
	}
	if err := app.openRedis(ctx); err != nil {
		return nil, err
	}
	if err := app.openLocks(); err != nil {
		return nil, err
	}
	if err := app.openChangeFeed(); err != nil {
		return nil, err
	}
	if err := app.buildServices(); err != nil {
		return nil, err
	}

	return app, nil
}

func (a *App) openStore(ctx context.Context) error {
	if a.Store != nil {
		return nil
	}

	switch a.Config.Ledger.Store {
	case StoreMemory:
		a.Logger.Warn("Using the in-memory ledger store; balances are lost on restart", nil)
		a.Store = memory.NewStore(a.TimeProvider, a.Logger)
		return nil
	case StorePostgres, "":
	default:
		return fmt.Errorf("unknown ledger store %q", a.Config.Ledger.Store)
	}

	manager := database.NewManager(database.FromAppConfig(a.Config), a.Logger, a.TimeProvider)
	if a.Prometheus != nil {
		manager.WithPoolObserver(a.Prometheus)
	}
	if _, err := manager.Connect(ctx); err != nil {
		return err
	}
	a.Database = manager
	a.Store = manager.UnitOfWork()
	a.onClose(func(context.Context) error { return manager.Close() })
	a.HealthChecks = append(a.HealthChecks, handler.HealthCheck{Name: "database", Check: manager.Ping})
	return nil
}

func (a *App) openRedis(ctx context.Context) error {
	if !a.Config.Redis.Enabled {
		return nil
	}

	client, err := cache.NewRedisClient(ctx, cache.Config{
		Addr:        a.Config.Redis.Addr,
		Password:    a.Config.Redis.Password,
		DB:          a.Config.Redis.DB,
		DialTimeout: 5 * time.Second,
	}, a.Logger)
	if err != nil {
		return err
	}
	a.Redis = client
	a.onClose(func(context.Context) error { return client.Close() })
	a.HealthChecks = append(a.HealthChecks, handler.HealthCheck{
		Name:  "redis",
		Check: func(ctx context.Context) error { return client.Ping(ctx).Err() },
	})
	return nil
}

func (a *App) openLocks() error {
	switch a.Config.Gate.LockBackend {
	case LocksRedis:
		if a.Redis == nil {
			return errors.New("gate.lockBackend redis requires redis.enabled")
		}
		a.Locks = cache.NewRedisActionLocks(a.Redis, "")
	case LocksMemory:
		a.Locks = memory.NewActionLocks(a.TimeProvider)
	case LocksDatabase, "":
		if a.Database == nil {
			a.Logger.Warn("No database for action locks, falling back to in-process locks", nil)
			a.Locks = memory.NewActionLocks(a.TimeProvider)
			return nil
		}
		a.Locks = a.Database.ActionLocks()
	default:
		return fmt.Errorf("unknown gate lock backend %q", a.Config.Gate.LockBackend)
	}
	return nil
}

func (a *App) openChangeFeed() error {
	var publishers events.FanOut

	switch a.Config.Events.Subscriber {
	case "redis":
		if a.Redis == nil {
			return errors.New("events.subscriber redis requires redis.enabled")
		}
		feed := events.NewRedisFeed(a.Redis, "", a.Config.Events.SubscriberBuffer, a.Logger, a.Metrics)
		publishers = append(publishers, feed)
		a.Subscriber = feed
	case "memory", "":
		broker := events.NewBroker(a.Logger, a.Metrics, a.Config.Events.QueueSize, a.Config.Events.SubscriberBuffer)
		publishers = append(publishers, broker)
		a.Subscriber = broker
		a.onClose(func(context.Context) error {
			broker.Shutdown()
			return nil
		})
	default:
		return fmt.Errorf("unknown events subscriber %q", a.Config.Events.Subscriber)
	}

	if a.Config.Kafka.Enabled {
		if len(a.Config.Kafka.Brokers) == 0 || a.Config.Kafka.Topic == "" {
			return errors.New("kafka.enabled requires kafka.brokers and kafka.topic")
		}
		kafka := events.NewKafkaPublisher(a.Config.Kafka.Brokers, a.Config.Kafka.Topic, a.Logger)
		publishers = append(publishers, kafka)
		a.onClose(func(context.Context) error { return kafka.Close() })
	}

	a.Publisher = publishers
	return nil
}

func (a *App) buildServices() error {
	rate := decimal.Zero
	if raw := a.Config.Ledger.ExchangeRate; raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("invalid ledger.exchangeRate %q: %w", raw, err)
		}
		if !parsed.IsPositive() {
			return fmt.Errorf("ledger.exchangeRate must be positive, got %s", raw)
		}
		rate = parsed
	}

	prices := make(map[entity.ActionKind]int64, len(a.Config.Pricing.Actions))
	for kind, cost := range a.Config.Pricing.Actions {
		if cost <= 0 {
			return fmt.Errorf("pricing.actions.%s must be positive, got %d", kind, cost)
		}
		prices[entity.ActionKind(kind)] = cost
	}

	a.Credits = credit.NewService(a.Store, a.Publisher, a.Metrics, a.TimeProvider, a.Logger, a.Config.Ledger.HistoryLimit)
	a.Gate = gate.NewService(
		a.Store,
		a.Credits,
		a.Locks,
		a.Metrics,
		a.TimeProvider,
		a.Logger,
		gate.Config{
			Prices:      prices,
			InFlightTTL: a.Config.Gate.InFlightTTL,
			Production:  a.Config.IsProduction(),
		},
		gate.NewReferralJobAction(a.Store, a.TimeProvider),
	)
	a.Webhooks = webhook.NewService(
		a.Store,
		a.Credits,
		a.gateways(),
		a.Publisher,
		rate,
		a.Metrics,
		a.TimeProvider,
		a.Logger,
	)
	a.Notifications = notification.NewService(a.Store, a.Logger)
	return nil
}

// gateways registers every provider that has a webhook secret
func (a *App) gateways() payment.Registry {
	var configured []paymentport.Gateway

	if p := a.Config.Payments.PayPal; p.Secret != "" {
		configured = append(configured, payment.NewPayPal(p.Secret, p.SignatureHeader))
	} else {
		a.Logger.Warn("PayPal webhooks disabled: no secret configured", nil)
	}
	if c := a.Config.Payments.Creem; c.Secret != "" {
		configured = append(configured, payment.NewCreem(c.Secret, c.SignatureHeader))
	} else {
		a.Logger.Warn("Creem webhooks disabled: no secret configured", nil)
	}

	return payment.NewRegistry(configured...)
}

// Migrate brings the database schema up to date. The memory store needs none.
func (a *App) Migrate(ctx context.Context) error {
	if a.Database == nil {
		return nil
	}
	return a.Database.MigrationManager().MigrateAll(ctx)
}

// Seed grants the configured development users their signup bonus
func (a *App) Seed(ctx context.Context) error {
	if a.Config.IsProduction() || len(a.Config.Seed.Users) == 0 {
		return nil
	}
	return migration.SeedSignupBonus(ctx, a.Credits, a.Config.Seed.Users, a.Config.Seed.SignupBonus, a.Logger)
}

// expiredLockCleaner is implemented by lock tables that keep expired rows
type expiredLockCleaner interface {
	CleanupExpiredLocks(ctx context.Context) (int64, error)
}

// StartLockJanitor removes expired action locks every interval until ctx ends.
// Backends that expire keys on their own are left alone.
func (a *App) StartLockJanitor(ctx context.Context, interval time.Duration) {
	cleaner, ok := a.Locks.(expiredLockCleaner)
	if !ok || interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := cleaner.CleanupExpiredLocks(ctx)
				if err != nil {
					a.Logger.Warn("Failed to clean up expired action locks", map[string]any{"error": err.Error()})
					continue
				}
				if removed > 0 {
					a.Logger.Debug("Removed expired action locks", map[string]any{"count": removed})
				}
			}
		}
	}()
}

func (a *App) onClose(fn func(ctx context.Context) error) {
	a.closers = append(a.closers, fn)
}

// Close releases adapters in reverse order of opening
func (a *App) Close(ctx context.Context) error {
	var errList []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errList = append(errList, err)
		}
	}
	a.closers = nil
	return errors.Join(errList...)
}
