package http

import (
	"github.com/gin-gonic/gin"

	"llm-telegram-relay/internal/middleware"
)

// RegisterRoutes maps the relay REST endpoints. /chat is guarded by the bearer token.
func RegisterRoutes(r gin.IRouter, h Handler, mw middleware.Middleware) {
	r.POST("/chat", mw.Auth(), h.Chat)
}
