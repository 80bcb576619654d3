package server

import (
	"github.com/gin-gonic/gin"

	"github.com/abhisek/tohu/internal/logger"
)

// RouterConfig holds the handlers and middleware settings. Nil handlers are
// not mounted.
type RouterConfig struct {
	PackHandler   *PackHandler
	HealthHandler *HealthHandler

	CORSOrigins []string
	Log         *logger.Logger
}

// NewRouter builds the gin engine.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(logger.OrNop(cfg.Log).With("component", "http")))
	r.Use(CORS(cfg.CORSOrigins))

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.PackHandler != nil {
			api.POST("/generate_pack", cfg.PackHandler.GeneratePack)
		}
	}
	return r
}
