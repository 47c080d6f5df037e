package httpserver

import (
	"net/url"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// corsMiddleware allows local development origins, the "null" origin of file:// pages,
// and any origin listed in CORS_ALLOWED_ORIGINS.
func (srv *HTTPServer) corsMiddleware() gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(srv.corsOrigins))
	for _, o := range srv.corsOrigins {
		allowed[strings.TrimRight(o, "/")] = struct{}{}
	}

	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			if _, ok := allowed[origin]; ok {
				return true
			}
			return isLocalOrigin(origin)
		},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        3600,
	})
}

func isLocalOrigin(origin string) bool {
	if origin == "null" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return u.Scheme == "http" || u.Scheme == "https"
	}
	return false
}
