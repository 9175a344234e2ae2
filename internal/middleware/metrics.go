package middleware

import (
	"strconv"
	"student_portal/internal/metrics"
	"time"

	"github.com/gin-gonic/gin"
)

// PrometheusMiddleware records request count and latency per route
func PrometheusMiddleware(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		statusCode := strconv.Itoa(c.Writer.Status())
		route := c.FullPath()
		if route == "" {
			route = "unmatched" // Keeps label cardinality bounded
		}
		metrics.RecordRequest(serviceName, c.Request.Method, route, statusCode, time.Since(start))
	}
}
