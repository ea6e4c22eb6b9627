package database

import (
	"context"
	"time"

	"github.com/KeshavWanjale/usercrud/pkg/metrics"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RecordPoolStats copies the current pool statistics into the Prometheus gauges.
func RecordPoolStats(db *gorm.DB, name string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	stats := sqlDB.Stats()
	metrics.DBOpenConns.WithLabelValues(name).Set(float64(stats.OpenConnections))
	metrics.DBIdleConns.WithLabelValues(name).Set(float64(stats.Idle))
	metrics.DBInUseConns.WithLabelValues(name).Set(float64(stats.InUse))
	return nil
}

// CollectPoolStats samples pool statistics every interval until ctx is done.
// A non-positive interval disables sampling.
func CollectPoolStats(ctx context.Context, db *gorm.DB, name string, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := RecordPoolStats(db, name); err != nil {
				logger.Warn("Failed to read DB pool stats", zap.Error(err))
			}
		case <-ctx.Done():
			return
		}
	}
}
