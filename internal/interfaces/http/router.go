// Package http assembles the gin router and the HTTP server lifecycle.
package http

import (
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"github.com/piyushjha0409/DockAI/internal/infrastructure/monitoring/logging"
	"github.com/piyushjha0409/DockAI/internal/interfaces/http/handlers"
	"github.com/piyushjha0409/DockAI/internal/interfaces/http/middleware"
)

// RouterDeps carries everything the router mounts.
type RouterDeps struct {
	Mode           string
	Log            logging.Logger
	Analyses       *handlers.AnalysisHandler
	Health         *handlers.HealthHandler
	MetricsHandler nethttp.Handler
}

// NewRouter builds the gin engine with all routes and middleware mounted.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(deps.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.WithRequestID())
	r.Use(middleware.WithCORS())
	if deps.Log != nil {
		r.Use(middleware.WithLogging(deps.Log))
	}

	r.GET("/healthz", deps.Health.Live)
	r.GET("/readyz", deps.Health.Ready)
	if deps.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	v1 := r.Group("/api/v1")
	{
		v1.POST("/analyses", deps.Analyses.Create)
		v1.GET("/analyses", deps.Analyses.List)
		v1.GET("/analyses/:id", deps.Analyses.Get)
		v1.DELETE("/analyses/:id", deps.Analyses.Delete)
		v1.GET("/analyses/:id/models", deps.Analyses.GetModelData)
		v1.GET("/analyses/:id/scenes", deps.Analyses.GetScenes)
	}
	return r
}
