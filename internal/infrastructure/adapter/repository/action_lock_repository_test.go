package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	errs "github.com/localhy/credit-ledger/internal/domain/error"
)

func TestActionLockRepository_AcquireLock(t *testing.T) {
	testCases := []struct {
		name     string
		setup    func(exec *sqlmock.ExpectedExec)
		expected error
	}{
		{
			name:  "Acquired",
			setup: func(exec *sqlmock.ExpectedExec) { exec.WillReturnResult(sqlmock.NewResult(0, 1)) },
		},
		{
			name:     "Held",
			setup:    func(exec *sqlmock.ExpectedExec) { exec.WillReturnResult(sqlmock.NewResult(0, 0)) },
			expected: errs.ErrLockHeld,
		},
		{
			name:     "Store down",
			setup:    func(exec *sqlmock.ExpectedExec) { exec.WillReturnError(&pgconn.PgError{Code: "57P01"}) },
			expected: errs.ErrStoreUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewActionLockRepository(db, testTime(), noopLogger)

			expiresAt := testNow.Add(30 * time.Second)
			tc.setup(mock.ExpectExec(`INSERT INTO action_locks .* WHERE action_locks.expires_at <= \$7`).
				WithArgs("gate:referral_job:user-1:tok", sqlmock.AnyArg(), testNow, expiresAt, testNow, testNow, testNow))

			owner, err := repo.AcquireLock(context.Background(), "gate:referral_job:user-1:tok", 30*time.Second)

			if tc.expected == nil {
				assert.NoError(t, err)
				assert.NotEmpty(t, owner)
			} else {
				assert.ErrorIs(t, err, tc.expected)
				assert.Empty(t, owner)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestActionLockRepository_ReleaseLock(t *testing.T) {
	t.Run("Deletes only the owner's lock", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewActionLockRepository(db, testTime(), noopLogger)

		mock.ExpectExec(`DELETE FROM "action_locks" WHERE lock_key = \$1 AND owner = \$2`).
			WithArgs("k", "owner-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repo.ReleaseLock(context.Background(), "k", "owner-1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Cancelled release is ignored", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewActionLockRepository(db, testTime(), noopLogger)

		mock.ExpectExec(`DELETE FROM "action_locks" WHERE lock_key = \$1 AND owner = \$2`).
			WithArgs("k", "owner-1").
			WillReturnError(context.Canceled)

		assert.NoError(t, repo.ReleaseLock(context.Background(), "k", "owner-1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestActionLockRepository_CleanupExpiredLocks(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewActionLockRepository(db, testTime(), noopLogger)

	mock.ExpectExec(`DELETE FROM "action_locks" WHERE expires_at < \$1`).
		WithArgs(testNow).
		WillReturnResult(sqlmock.NewResult(0, 3))

	removed, err := repo.CleanupExpiredLocks(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(3), removed)
}
