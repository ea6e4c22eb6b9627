package database

import (
	"context"
	"testing"

	"github.com/KeshavWanjale/usercrud/internal/infrastructure/config"
	"github.com/KeshavWanjale/usercrud/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func TestOpenSQLiteInMemory(t *testing.T) {
	cfg := config.Default().Database
	cfg.DSN = "file::memory:"

	db, err := Open(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Ping(context.Background(), db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	cfg := config.Default().Database
	cfg.Driver = "oracle"

	_, err := Open(cfg, zap.NewNop())
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestRecordPoolStats(t *testing.T) {
	db, err := NewSQLiteDB(":memory:", Options{Logger: NewGormLogger(nil, "silent")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	require.NoError(t, Ping(context.Background(), db))

	require.NoError(t, RecordPoolStats(db, "test"))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.DBOpenConns.WithLabelValues("test")))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, parseLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, parseLogLevel("error"))
	assert.Equal(t, gormlogger.Info, parseLogLevel("info"))
	assert.Equal(t, gormlogger.Warn, parseLogLevel("warn"))
	assert.Equal(t, gormlogger.Warn, parseLogLevel(""))
}
