package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"llm-telegram-relay/pkg/response"
)

// Auth requires "Authorization: Bearer <API_TOKEN>".
// Requests without a matching token are answered with 401 and never reach the handler.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader(AuthorizationHeader))
		if !ok || !m.tokenMatches(token) {
			m.l.Warnf(c.Request.Context(), "middleware.Auth: rejected %s %s", c.Request.Method, c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

func (m Middleware) tokenMatches(token string) bool {
	if m.apiToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(m.apiToken)) == 1
}

func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	if token == "" {
		return "", false
	}
	return token, true
}
