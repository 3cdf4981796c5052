package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/prompt-router/internal/gateway"
)

type ModelHandler struct {
	service gateway.Service
}

func NewModelHandler(service gateway.Service) *ModelHandler {
	return &ModelHandler{service: service}
}

// ListModels returns every registry entry followed by the redirect targets of
// the routing policies.
//
// GET /models
func (h *ModelHandler) ListModels(c *gin.Context) {
	models, err := h.service.ListModels(c.Request.Context())
	if err != nil {
		_ = c.Error(problemFor(err))
		return
	}

	c.JSON(http.StatusOK, models)
}
