package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"llm-telegram-relay/pkg/log"
)

// RequestID reuses the caller's X-Request-ID or generates one, echoes it back
// and stores it on the request context for the logger.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Writer.Header().Set(RequestIDHeader, id)
		c.Request = c.Request.WithContext(log.WithRequestID(c.Request.Context(), id))

		c.Next()
	}
}
