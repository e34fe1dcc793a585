//go:build integration

package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/logger"
	timeadapter "github.com/localhy/credit-ledger/internal/infrastructure/adapter/time"
)

// startTestDatabase runs PostgreSQL in a container, migrates it and returns a connected manager
func startTestDatabase(t *testing.T) *Manager {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("ledger_test"),
		postgres.WithUsername("ledger"),
		postgres.WithPassword("ledger"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "starting postgres container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	config := DefaultConfig()
	config.URL = dsn
	config.LogLevel = "silent"
	config.RetryAttempts = 1
	config.LockTimeout = 2 * time.Second
	config.MaxRetries = 10

	manager := NewManager(config, logger.NewNoopLogger(), timeadapter.NewRealTimeProvider())
	_, err = manager.Connect(ctx)
	require.NoError(t, err, "connecting to test database")
	t.Cleanup(func() { _ = manager.Close() })

	require.NoError(t, manager.MigrationManager().MigrateAll(ctx))
	return manager
}

// truncateAll empties every ledger table between tests
func truncateAll(t *testing.T, m *Manager) {
	t.Helper()
	err := m.DB().Exec(`TRUNCATE referral_jobs, notifications, ledger_entries, credit_accounts, action_locks CASCADE`).Error
	require.NoError(t, err)
}
