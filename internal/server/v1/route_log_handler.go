package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/prompt-router/internal/gateway"
	"github.com/nulzo/prompt-router/pkg/api"
)

type RouteLogHandler struct {
	service gateway.Service
}

func NewRouteLogHandler(service gateway.Service) *RouteLogHandler {
	return &RouteLogHandler{service: service}
}

// List returns the most recent routing decisions, newest first.
//
// GET /route-logs?limit=50
func (h *RouteLogHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			_ = c.Error(api.ValidationError("InvalidParameter", map[string]string{
				"limit": "limit must be a positive integer",
			}))
			return
		}
		limit = n
	}

	logs, err := h.service.RecentDecisions(c.Request.Context(), limit)
	if err != nil {
		_ = c.Error(problemFor(err))
		return
	}

	c.JSON(http.StatusOK, logs)
}
