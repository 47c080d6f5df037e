package http

import (
	"github.com/gin-gonic/gin"

	"llm-telegram-relay/internal/relay"
	"llm-telegram-relay/pkg/log"
)

// Handler is the public interface for the relay HTTP delivery layer.
type Handler interface {
	Chat(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc relay.UseCase
}

// New creates a new HTTP handler for the relay domain.
func New(l log.Logger, uc relay.UseCase) Handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
