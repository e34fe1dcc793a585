package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	errs "github.com/localhy/credit-ledger/internal/domain/error"
)

func newTestEntry(externalID, key string) *entity.LedgerEntry {
	entry := &entity.LedgerEntry{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    "user-1",
		Delta:     500,
		CashDelta: 500,
		Reason:    entity.ReasonPurchase,
		CashAfter: 500,
		CreatedAt: testNow,
	}
	if externalID != "" {
		entry.ExternalPaymentID = &externalID
	}
	if key != "" {
		entry.IdempotencyKey = &key
	}
	return entry
}

func TestLedgerRepository_Append(t *testing.T) {
	testCases := []struct {
		name      string
		entry     *entity.LedgerEntry
		dbErr     error
		expected  error
		duplicate bool
	}{
		{
			name:  "Success",
			entry: newTestEntry("paypal:TXN-1", ""),
		},
		{
			name:      "Duplicate payment",
			entry:     newTestEntry("paypal:TXN-1", ""),
			dbErr:     &pgconn.PgError{Code: "23505", ConstraintName: ExternalPaymentIndex},
			expected:  errs.ErrDuplicatePayment,
			duplicate: true,
		},
		{
			name:      "Duplicate request",
			entry:     newTestEntry("", "gate:referral_job:user-1:abc"),
			dbErr:     &pgconn.PgError{Code: "23505", ConstraintName: IdempotencyKeyIndex},
			expected:  errs.ErrDuplicateRequest,
			duplicate: true,
		},
		{
			name:      "Duplicate without constraint name",
			entry:     newTestEntry("", "refund:gate:referral_job:user-1:abc"),
			dbErr:     &pgconn.PgError{Code: "23505"},
			expected:  errs.ErrDuplicateRequest,
			duplicate: true,
		},
		{
			name:     "Lost connection",
			entry:    newTestEntry("", "key"),
			dbErr:    &pgconn.PgError{Code: "08006"},
			expected: errs.ErrStoreUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewLedgerRepository(db, noopLogger)

			exec := mock.ExpectExec(`INSERT INTO "ledger_entries"`)
			if tc.dbErr != nil {
				exec.WillReturnError(tc.dbErr)
			} else {
				exec.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err := repo.Append(context.Background(), tc.entry)

			if tc.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.expected)
			}
			assert.Equal(t, tc.duplicate, errs.IsAlreadyApplied(err))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLedgerRepository_Lookups(t *testing.T) {
	columns := []string{"id", "user_id", "delta", "cash_delta", "free_delta", "reason",
		"external_payment_id", "idempotency_key", "reference", "note", "cash_after", "free_after", "created_at"}

	t.Run("By external payment", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewLedgerRepository(db, noopLogger)
		id := uuid.Must(uuid.NewV7())

		mock.ExpectQuery(`SELECT \* FROM "ledger_entries" WHERE external_payment_id = \$1`).
			WithArgs("creem:ch_1", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(id.String(), "user-1", 500, 500, 0, "purchase", "creem:ch_1", nil, "", "", 500, 0, testNow))

		entry, err := repo.GetByExternalPaymentID(context.Background(), "creem:ch_1")

		require.NoError(t, err)
		assert.Equal(t, id, entry.ID)
		assert.Equal(t, entity.ReasonPurchase, entry.Reason)
		require.NotNil(t, entry.ExternalPaymentID)
		assert.Equal(t, "creem:ch_1", *entry.ExternalPaymentID)
		assert.Nil(t, entry.IdempotencyKey)
	})

	t.Run("Missing idempotency key", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewLedgerRepository(db, noopLogger)

		mock.ExpectQuery(`SELECT \* FROM "ledger_entries" WHERE idempotency_key = \$1`).
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.GetByIdempotencyKey(context.Background(), "nope")

		assert.ErrorIs(t, err, errs.ErrEntryNotFound)
	})

	t.Run("Totals", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewLedgerRepository(db, noopLogger)

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(cash_delta\), 0\)`).
			WillReturnRows(sqlmock.NewRows([]string{"cash", "free", "entries"}).AddRow(700, -20, 3))

		totals, err := repo.TotalsByUserID(context.Background(), "user-1")

		require.NoError(t, err)
		assert.Equal(t, int64(700), totals.Cash)
		assert.Equal(t, int64(-20), totals.Free)
		assert.Equal(t, int64(3), totals.Entries)
	})
}
