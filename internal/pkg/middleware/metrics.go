package middleware

import (
	"strconv"
	"time"

	"skillshare/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware 记录请求量与耗时
func MetricsMiddleware() gin.HandlerFunc {
	collector := metrics.GetCollector()
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		collector.RecordHTTPRequest(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
