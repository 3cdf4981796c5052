package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/prompt-router/internal/gateway"
	"go.uber.org/zap"
)

type HealthHandler struct {
	service gateway.Service
	logger  *zap.Logger
}

func NewHealthHandler(service gateway.Service, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{service: service, logger: logger}
}

// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.service.Ping(c.Request.Context()); err != nil {
		h.logger.Warn("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
