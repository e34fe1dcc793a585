package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	errs "github.com/localhy/credit-ledger/internal/domain/error"
	coreport "github.com/localhy/credit-ledger/internal/domain/port/core"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/model"
)

// ActionLockRepository implements expiring action locks on a PostgreSQL table
type ActionLockRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewActionLockRepository creates a new ActionLockRepository instance.
// db must not be bound to a ledger transaction; locks outlive it.
func NewActionLockRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *ActionLockRepository {
	return &ActionLockRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// AcquireLock takes the key unless an unexpired lock already holds it
func (r *ActionLockRepository) AcquireLock(ctx context.Context, key string, duration time.Duration) (string, error) {
	now := r.timeProvider.Now()
	expiresAt := now.Add(duration)
	owner := uuid.NewString()

	// The upsert only overwrites an expired lock, so zero affected rows means it is held.
	result := r.db.WithContext(ctx).Exec(`
		INSERT INTO action_locks (lock_key, owner, locked_at, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (lock_key) DO UPDATE
		SET owner = EXCLUDED.owner,
		    locked_at = EXCLUDED.locked_at,
		    expires_at = EXCLUDED.expires_at,
		    updated_at = EXCLUDED.updated_at
		WHERE action_locks.expires_at <= ?`,
		key, owner, now, expiresAt, now, now,
		now,
	)

	if result.Error != nil {
		if isContextError(result.Error) {
			r.logger.Warn("Context ended while acquiring action lock", map[string]any{
				"lock_key": key,
				"error":    result.Error.Error(),
			})
		} else {
			r.logger.Error("Database error acquiring action lock", map[string]any{
				"lock_key": key,
				"error":    result.Error.Error(),
			})
		}
		return "", storeError("acquiring action lock", result.Error)
	}

	if result.RowsAffected == 0 {
		r.logger.Debug("Action lock is held", map[string]any{
			"lock_key": key,
		})
		return "", errs.ErrLockHeld
	}

	r.logger.Debug("Action lock acquired", map[string]any{
		"lock_key":   key,
		"expires_at": expiresAt,
	})
	return owner, nil
}

// isContextError checks if an error is related to context timeout or cancellation
func isContextError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

// ReleaseLock drops the key while owner holds it. A lock that expired, was
// taken over or was never taken is ignored.
func (r *ActionLockRepository) ReleaseLock(ctx context.Context, key, owner string) error {
	result := r.db.WithContext(ctx).Where("lock_key = ? AND owner = ?", key, owner).Delete(&model.ActionLock{})

	// The lock expires on its own, so a cancelled release is not critical.
	if result.Error != nil && isContextError(result.Error) {
		r.logger.Warn("Context ended while releasing action lock, lock will expire", map[string]any{
			"lock_key": key,
			"error":    result.Error.Error(),
		})
		return nil
	}

	if result.Error != nil {
		r.logger.Error("Failed to release action lock", map[string]any{
			"lock_key": key,
			"error":    result.Error.Error(),
		})
		return storeError("releasing action lock", result.Error)
	}

	return nil
}

// CleanupExpiredLocks removes every expired lock and returns how many were dropped
func (r *ActionLockRepository) CleanupExpiredLocks(ctx context.Context) (int64, error) {
	now := r.timeProvider.Now()

	result := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&model.ActionLock{})
	if result.Error != nil {
		r.logger.Error("Failed to clean up expired action locks", map[string]any{
			"error": result.Error.Error(),
		})
		return 0, storeError("cleaning up action locks", result.Error)
	}

	if result.RowsAffected > 0 {
		r.logger.Info("Expired action locks removed", map[string]any{
			"locks_removed": result.RowsAffected,
		})
	}
	return result.RowsAffected, nil
}
