package database

import (
	"context"
	"database/sql"
	"time"

	"skillshare/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PoolMonitor 周期采样连接池状态，暴露为 prometheus 指标
type PoolMonitor struct {
	sqlDB    *sql.DB
	interval time.Duration

	openConns  prometheus.Gauge
	idleConns  prometheus.Gauge
	inUseConns prometheus.Gauge
	waitCount  prometheus.Gauge
}

// NewPoolMonitor 创建连接池监控
func NewPoolMonitor(db *gorm.DB, interval time.Duration) (*PoolMonitor, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	return &PoolMonitor{
		sqlDB:    sqlDB,
		interval: interval,
		openConns: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "db_pool_open_connections",
			Help: "Number of established connections both in use and idle",
		}),
		idleConns: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "db_pool_idle_connections",
			Help: "Number of idle connections",
		}),
		inUseConns: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "db_pool_in_use_connections",
			Help: "Number of connections currently in use",
		}),
		waitCount: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "db_pool_wait_count",
			Help: "Total number of connections waited for",
		}),
	}, nil
}

// Start 后台采样，ctx 取消后退出
func (m *PoolMonitor) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.sample()
			}
		}
	}()
}

func (m *PoolMonitor) sample() {
	stats := m.sqlDB.Stats()
	m.openConns.Set(float64(stats.OpenConnections))
	m.idleConns.Set(float64(stats.Idle))
	m.inUseConns.Set(float64(stats.InUse))
	m.waitCount.Set(float64(stats.WaitCount))

	// 连接池接近打满时提前告警
	if stats.MaxOpenConnections > 0 &&
		stats.InUse*10 >= stats.MaxOpenConnections*9 && logger.Log != nil {
		logger.Log.Warn("database connection pool nearly saturated",
			zap.Int("in_use", stats.InUse),
			zap.Int("max_open", stats.MaxOpenConnections),
			zap.Int64("wait_count", stats.WaitCount))
	}
}
