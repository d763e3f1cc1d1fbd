package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector HTTP 请求指标收集器
type Collector struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	notificationsTotal  *prometheus.CounterVec
}

var (
	globalCollector *Collector
	once            sync.Once
)

// GetCollector 获取全局指标收集器
func GetCollector() *Collector {
	once.Do(func() {
		globalCollector = &Collector{
			httpRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "endpoint", "status"},
			),
			httpRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_request_duration_seconds",
					Help:    "HTTP request duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"method", "endpoint"},
			),
			notificationsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "notifications_created_total",
					Help: "Total number of notifications created by type",
				},
				[]string{"type"},
			),
		}
	})
	return globalCollector
}

// RecordHTTPRequest 记录一次 HTTP 请求
func (c *Collector) RecordHTTPRequest(method, endpoint, status string, duration time.Duration) {
	c.httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	c.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordNotification 记录一次通知创建
func (c *Collector) RecordNotification(notificationType string) {
	c.notificationsTotal.WithLabelValues(notificationType).Inc()
}
