package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// DependencyCheck pings one backing service.
type DependencyCheck func(ctx context.Context) error

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	version string
	checks  map[string]DependencyCheck
}

// NewHealthHandler constructs a HealthHandler.  checks maps a dependency name
// to its ping.
func NewHealthHandler(version string, checks map[string]DependencyCheck) *HealthHandler {
	return &HealthHandler{version: version, checks: checks}
}

// Live handles GET /healthz: the process is up.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": h.version})
}

// Ready handles GET /readyz: every backing service answers its ping.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	deps := make(gin.H, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			deps[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}
	c.JSON(status, gin.H{"status": http.StatusText(status), "dependencies": deps})
}
