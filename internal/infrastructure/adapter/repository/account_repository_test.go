package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	errs "github.com/localhy/credit-ledger/internal/domain/error"
)

var accountColumns = []string{"user_id", "cash_credits", "free_credits", "entry_count", "created_at", "updated_at"}

func TestAccountRepository_GetByUserID(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAccountRepository(db, testTime(), noopLogger)

		mock.ExpectQuery(`SELECT \* FROM "credit_accounts" WHERE user_id = \$1`).
			WithArgs("user-1", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(accountColumns).AddRow("user-1", 300, 50, 4, testNow, testNow))

		account, err := repo.GetByUserID(context.Background(), "user-1")

		require.NoError(t, err)
		assert.Equal(t, entity.Balance{CashCredits: 300, FreeCredits: 50}, account.Balance())
		assert.Equal(t, uint64(4), account.EntryCount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAccountRepository(db, testTime(), noopLogger)

		mock.ExpectQuery(`SELECT \* FROM "credit_accounts"`).
			WillReturnRows(sqlmock.NewRows(accountColumns))

		account, err := repo.GetByUserID(context.Background(), "user-1")

		assert.Nil(t, account)
		assert.ErrorIs(t, err, errs.ErrAccountNotFound)
	})
}

func TestAccountRepository_GetForUpdate(t *testing.T) {
	t.Run("Provisions and locks", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAccountRepository(db, testTime(), noopLogger)

		mock.ExpectExec(`INSERT INTO credit_accounts .* ON CONFLICT \(user_id\) DO NOTHING`).
			WithArgs("user-1", testNow, testNow).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT \* FROM "credit_accounts" WHERE user_id = \$1 .*FOR UPDATE`).
			WillReturnRows(sqlmock.NewRows(accountColumns).AddRow("user-1", 0, 0, 0, testNow, testNow))

		account, err := repo.GetForUpdate(context.Background(), "user-1")

		require.NoError(t, err)
		assert.Equal(t, int64(0), account.Balance().Total())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Invalid user", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAccountRepository(db, testTime(), noopLogger)

		_, err := repo.GetForUpdate(context.Background(), "  ")

		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Serialization failure stays retryable", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAccountRepository(db, testTime(), noopLogger)

		mock.ExpectExec(`INSERT INTO credit_accounts`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`FOR UPDATE`).WillReturnError(&pgconn.PgError{Code: "40001"})

		_, err := repo.GetForUpdate(context.Background(), "user-1")

		assert.ErrorIs(t, err, errs.ErrStoreUnavailable)
		assert.True(t, NewErrorClassifier().IsTransientError(err))
	})
}

func TestAccountRepository_Save(t *testing.T) {
	restore := func(t *testing.T, cash, free int64) *entity.Account {
		account, err := entity.RestoreAccount("user-1", cash, free, testNow, testNow, 1)
		require.NoError(t, err)
		return account
	}

	testCases := []struct {
		name     string
		setup    func(mock sqlmock.Sqlmock)
		expected error
	}{
		{
			name: "Success",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE "credit_accounts" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "Check constraint",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE "credit_accounts" SET`).
					WillReturnError(&pgconn.PgError{Code: "23514", ConstraintName: CashNonNegativeCheck})
			},
			expected: errs.ErrConstraintViolation,
		},
		{
			name: "Row vanished",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE "credit_accounts" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expected: errs.ErrStoreUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewAccountRepository(db, testTime(), noopLogger)
			tc.setup(mock)

			err := repo.Save(context.Background(), restore(t, 100, 20))

			if tc.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.expected)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
