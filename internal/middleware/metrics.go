package middleware

import (
	"strconv"
	"time"

	"github.com/SscSPs/backoffice/internal/metrics"
	"github.com/gin-gonic/gin"
)

// PrometheusMiddleware counts requests and observes their latency by route
// template, so path parameters do not blow up label cardinality.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
	}
}
