package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"llm-telegram-relay/internal/metrics"
)

// AccessLog logs every request and records it in the HTTP metrics.
func (m Middleware) AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		elapsed := time.Since(start)
		status := c.Writer.Status()
		metrics.RecordHTTPRequest(c.FullPath(), c.Request.Method, status, elapsed)

		ctx := c.Request.Context()
		switch {
		case status >= 500:
			m.l.Errorf(ctx, "%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, elapsed)
		case status >= 400:
			m.l.Warnf(ctx, "%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, elapsed)
		default:
			m.l.Infof(ctx, "%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, elapsed)
		}
	}
}
