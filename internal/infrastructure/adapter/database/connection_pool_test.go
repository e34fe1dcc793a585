package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/logger"
)

type recordingObserver struct {
	calls int
	open  int
	inUse int
}

func (o *recordingObserver) SetPoolStats(open, inUse int, _ int64) {
	o.calls++
	o.open = open
	o.inUse = inUse
}

func TestConnectionPoolMonitor_ReportsToObserver(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	sqlDB.SetMaxOpenConns(4)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)

	observer := &recordingObserver{}
	monitor := NewConnectionPoolMonitor(db, logger.NewNoopLogger(), observer)

	require.NoError(t, monitor.Start(time.Hour))
	monitor.Stop()
	monitor.Stop()

	assert.Equal(t, 1, observer.calls)
	assert.Equal(t, sqlDB.Stats().OpenConnections, observer.open)
	assert.Equal(t, 0, observer.inUse)
}
