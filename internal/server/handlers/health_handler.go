package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/retailsheet/internal/service/dataset"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	registry *dataset.Registry
	logger   *zap.Logger
}

// NewHealthHandler constructs the probe handler.
func NewHealthHandler(registry *dataset.Registry, logger *zap.Logger) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{registry: registry, logger: logger}
}

// Healthz reports that the process is up.
func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz counts every collection and fails when one of them cannot be reached.
func (h *HealthHandler) Readyz(c *gin.Context) {
	counts := make(gin.H)
	failures := make(gin.H)

	for _, d := range h.registry.All() {
		n, err := d.Count(c.Request.Context())
		if err != nil {
			h.logger.Warn("readiness probe failed", zap.String("collection", d.Kind().Collection()), zap.Error(err))
			failures[d.Kind().Collection()] = err.Error()
			continue
		}
		counts[d.Kind().Collection()] = n
	}

	if len(failures) > 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "collections": counts, "errors": failures})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "collections": counts})
}
