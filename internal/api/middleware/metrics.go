package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hostel-hub/pkg/metrics"
)

// Metrics Prometheus 请求计数与耗时
// route 使用路由模板（如 /api/v1/mess-choices/:studentId），未匹配的请求记为 unmatched
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPLatency.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
