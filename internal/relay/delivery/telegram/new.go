package telegram

import (
	"github.com/gin-gonic/gin"

	"llm-telegram-relay/internal/relay"
	"llm-telegram-relay/internal/webhook"
	pkgLog "llm-telegram-relay/pkg/log"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

type handler struct {
	l        pkgLog.Logger
	uc       relay.UseCase
	security *webhook.SecurityValidator
}

// New creates a new Telegram delivery handler.
func New(l pkgLog.Logger, uc relay.UseCase, security *webhook.SecurityValidator) Handler {
	return &handler{
		l:        l,
		uc:       uc,
		security: security,
	}
}
