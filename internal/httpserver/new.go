package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"llm-telegram-relay/internal/middleware"
	relayHTTP "llm-telegram-relay/internal/relay/delivery/http"
	tgDelivery "llm-telegram-relay/internal/relay/delivery/telegram"
	"llm-telegram-relay/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	host        string
	port        int
	mode        string
	environment string
	corsOrigins []string

	// Relay domain
	middleware      middleware.Middleware
	chatHandler     relayHTTP.Handler
	telegramHandler tgDelivery.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Host        string
	Port        int
	Mode        string
	Environment string
	CORSOrigins []string

	// Relay domain
	Middleware      middleware.Middleware
	ChatHandler     relayHTTP.Handler
	TelegramHandler tgDelivery.Handler
}

// New creates a new HTTPServer instance and registers every route.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		host:            cfg.Host,
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		corsOrigins:     cfg.CORSOrigins,
		middleware:      cfg.Middleware,
		chatHandler:     cfg.ChatHandler,
		telegramHandler: cfg.TelegramHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	srv.mapHandlers()

	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.chatHandler == nil {
		return errors.New("chat handler is required")
	}
	if srv.telegramHandler == nil {
		return errors.New("telegram handler is required")
	}
	return nil
}

// Handler exposes the configured engine, mainly for tests.
func (srv *HTTPServer) Handler() *gin.Engine {
	return srv.gin
}
