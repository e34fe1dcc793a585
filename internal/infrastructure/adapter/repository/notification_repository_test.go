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

func TestNotificationRepository_MarkRead(t *testing.T) {
	id := uuid.Must(uuid.NewV7())

	t.Run("Marked", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewNotificationRepository(db, noopLogger)

		mock.ExpectExec(`UPDATE "notifications" SET "read"=\$1 WHERE id = \$2 AND user_id = \$3`).
			WithArgs(true, id, "user-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.MarkRead(context.Background(), "user-1", id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Someone else's notification", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewNotificationRepository(db, noopLogger)

		mock.ExpectExec(`UPDATE "notifications"`).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.MarkRead(context.Background(), "user-2", id), errs.ErrNotFound)
	})
}

func TestNotificationRepository_ListByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationRepository(db, noopLogger)
	id := uuid.Must(uuid.NewV7())

	mock.ExpectQuery(`SELECT \* FROM "notifications" WHERE user_id = \$1 AND read = \$2 ORDER BY created_at DESC LIMIT \$3`).
		WithArgs("user-1", false, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "kind", "title", "message", "data", "read", "created_at"}).
			AddRow(id.String(), "user-1", "credits_purchased", "Credits added", "500 credits were added", []byte(`{"credits":500}`), false, testNow))

	notifications, err := repo.ListByUserID(context.Background(), "user-1", 10, true)

	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, id, notifications[0].ID)
	assert.Equal(t, entity.NotificationKind("credits_purchased"), notifications[0].Kind)
	assert.Contains(t, notifications[0].Data, "credits")
}

func TestReferralJobRepository_Create(t *testing.T) {
	job := &entity.ReferralJob{
		ID:            uuid.Must(uuid.NewV7()),
		OwnerID:       "user-1",
		Title:         "Find me a plumber",
		RewardCredits: 100,
		Status:        entity.ReferralJobOpen,
		ChargeEntryID: uuid.Must(uuid.NewV7()),
		CreatedAt:     testNow,
	}

	t.Run("Inserted", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewReferralJobRepository(db, noopLogger)

		mock.ExpectExec(`INSERT INTO "referral_jobs"`).WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Create(context.Background(), job))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Charge already used", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewReferralJobRepository(db, noopLogger)

		mock.ExpectExec(`INSERT INTO "referral_jobs"`).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: ReferralJobChargeIdx})

		assert.ErrorIs(t, repo.Create(context.Background(), job), errs.ErrConstraintViolation)
	})
}
