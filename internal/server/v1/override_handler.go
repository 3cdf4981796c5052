package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/prompt-router/internal/gateway"
	"github.com/nulzo/prompt-router/internal/server/validator"
	"github.com/nulzo/prompt-router/pkg/api"
	"go.uber.org/zap"
)

const fileUploadUpdated = "File upload model updated successfully!"

type OverrideHandler struct {
	service   gateway.Service
	validator *validator.Validator
	logger    *zap.Logger
}

func NewOverrideHandler(service gateway.Service, v *validator.Validator, logger *zap.Logger) *OverrideHandler {
	return &OverrideHandler{
		service:   service,
		validator: v,
		logger:    logger,
	}
}

// Set selects the model whose response is attached to every completion.
// Unknown models and unreadable bodies leave the current selection in place
// and still answer 200.
//
// POST /file-upload-routing
func (h *OverrideHandler) Set(c *gin.Context) {
	var req api.FileUploadRoutingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Ignoring unreadable file upload routing body", zap.Any("errors", h.validator.ParseError(err)))
		c.JSON(http.StatusOK, api.MessageResponse{Message: fileUploadUpdated})
		return
	}

	if err := h.service.SetFileUploadModel(c.Request.Context(), req.Model); err != nil {
		_ = c.Error(problemFor(err))
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: fileUploadUpdated})
}

// GET /file-upload-routing
func (h *OverrideHandler) Get(c *gin.Context) {
	target, err := h.service.FileUploadTarget(c.Request.Context())
	if err != nil {
		_ = c.Error(problemFor(err))
		return
	}

	c.JSON(http.StatusOK, api.FileUploadRoutingResponse{
		Enabled:  !target.IsZero(),
		Provider: target.Provider,
		Model:    target.Model,
	})
}
