package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/logger"
	timeadapter "github.com/localhy/credit-ledger/internal/infrastructure/adapter/time"
)

var testNow = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Discard,
	})
	require.NoError(t, err)

	return db, mock
}

func testTime() *timeadapter.ManualTimeProvider {
	return timeadapter.NewManualTimeProvider(testNow)
}

var noopLogger = logger.NewNoopLogger()
