//go:build integration

package database

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	errs "github.com/localhy/credit-ledger/internal/domain/error"
	"github.com/localhy/credit-ledger/internal/domain/usecase/credit"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/database/migration"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/events"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/logger"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/metrics"
	timeadapter "github.com/localhy/credit-ledger/internal/infrastructure/adapter/time"
)

func TestPostgresLedger(t *testing.T) {
	manager := startTestDatabase(t)
	ctx := context.Background()

	newService := func() *credit.Service {
		return credit.NewService(manager.UnitOfWork(), events.FanOut{}, metrics.Noop{},
			timeadapter.NewRealTimeProvider(), logger.NewNoopLogger(), 50)
	}

	t.Run("Migrations are idempotent", func(t *testing.T) {
		require.NoError(t, manager.MigrationManager().MigrateAll(ctx))
		version, err := manager.MigrationManager().GetCurrentVersion(ctx)
		require.NoError(t, err)
		assert.Equal(t, migration.CurrentSchemaVersion, version)
	})

	t.Run("Purchase is applied once per external payment", func(t *testing.T) {
		truncateAll(t, manager)
		svc := newService()
		req := entity.MutationRequest{UserID: "u1", Delta: 25, Reason: entity.ReasonPurchase, ExternalPaymentID: "paypal:T1"}

		first, err := svc.ApplyDelta(ctx, req)
		require.NoError(t, err)
		assert.False(t, first.Duplicate)

		second, err := svc.ApplyDelta(ctx, req)
		require.NoError(t, err)
		assert.True(t, second.Duplicate)
		assert.Equal(t, int64(25), second.Balance.CashCredits)

		report, err := svc.Audit(ctx, "u1")
		require.NoError(t, err)
		assert.True(t, report.Consistent)
		assert.Equal(t, int64(1), report.Entries)
	})

	t.Run("Concurrent debits never overdraw", func(t *testing.T) {
		truncateAll(t, manager)
		svc := newService()
		_, err := svc.ApplyDelta(ctx, entity.MutationRequest{UserID: "u2", Delta: 5, Reason: entity.ReasonPurchase, ExternalPaymentID: "creem:C1"})
		require.NoError(t, err)

		var wg sync.WaitGroup
		var applied, rejected atomic.Int32
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := svc.ApplyDelta(ctx, entity.MutationRequest{
					UserID:         "u2",
					Delta:          -5,
					Reason:         entity.ReasonPostingFee,
					IdempotencyKey: []string{"k1", "k2"}[i],
				})
				switch {
				case err == nil:
					applied.Add(1)
				case assert.ErrorIs(t, err, errs.ErrInsufficientBalance):
					rejected.Add(1)
				}
			}(i)
		}
		wg.Wait()

		assert.Equal(t, int32(1), applied.Load())
		assert.Equal(t, int32(1), rejected.Load())

		balance, err := svc.GetBalance(ctx, "u2")
		require.NoError(t, err)
		assert.Equal(t, entity.Balance{}, balance)
	})

	t.Run("Ledger rows cannot be updated", func(t *testing.T) {
		truncateAll(t, manager)
		svc := newService()
		_, err := svc.ApplyDelta(ctx, entity.MutationRequest{UserID: "u3", Delta: 3, Reason: entity.ReasonSignupBonus, IdempotencyKey: "signup:u3"})
		require.NoError(t, err)

		err = manager.DB().Exec(`UPDATE ledger_entries SET delta = 100 WHERE user_id = 'u3'`).Error
		assert.Error(t, err)
	})

	t.Run("Action locks expire", func(t *testing.T) {
		truncateAll(t, manager)
		locks := manager.ActionLocks()

		owner, err := locks.AcquireLock(ctx, "gate:k", time.Minute)
		require.NoError(t, err)
		_, err = locks.AcquireLock(ctx, "gate:k", time.Minute)
		assert.ErrorIs(t, err, errs.ErrLockHeld)
		require.NoError(t, locks.ReleaseLock(ctx, "gate:k", owner))

		stale, err := locks.AcquireLock(ctx, "gate:short", time.Millisecond)
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
		current, err := locks.AcquireLock(ctx, "gate:short", time.Minute)
		require.NoError(t, err)

		// The expired holder's release leaves the new lock in place
		require.NoError(t, locks.ReleaseLock(ctx, "gate:short", stale))
		_, err = locks.AcquireLock(ctx, "gate:short", time.Minute)
		assert.ErrorIs(t, err, errs.ErrLockHeld)
		require.NoError(t, locks.ReleaseLock(ctx, "gate:short", current))
	})
}
