package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	relayHTTP "llm-telegram-relay/internal/relay/delivery/http"
)

func (srv *HTTPServer) mapHandlers() {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()
	srv.registerDomainRoutes()
}

func (srv *HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())
	srv.gin.Use(srv.middleware.RequestID())
	srv.gin.Use(srv.middleware.AccessLog())
	srv.gin.Use(srv.corsMiddleware())

	srv.l.Infof(context.Background(), "CORS: local origins plus %v (environment %s)", srv.corsOrigins, srv.environment)
}

func (srv *HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all relay routes.
func (srv *HTTPServer) registerDomainRoutes() {
	ctx := context.Background()

	relayHTTP.RegisterRoutes(srv.gin, srv.chatHandler, srv.middleware)
	srv.l.Infof(ctx, "Chat route registered at POST /chat")

	srv.gin.POST("/telegram/webhook", srv.telegramHandler.HandleWebhook)
	srv.l.Infof(ctx, "Telegram webhook route registered at POST /telegram/webhook")
}
