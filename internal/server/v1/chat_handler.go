package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/prompt-router/internal/gateway"
	"github.com/nulzo/prompt-router/internal/routing"
	"github.com/nulzo/prompt-router/internal/server/validator"
	"github.com/nulzo/prompt-router/pkg/api"
)

type ChatHandler struct {
	service   gateway.Service
	validator *validator.Validator
}

func NewChatHandler(service gateway.Service, v *validator.Validator) *ChatHandler {
	return &ChatHandler{
		service:   service,
		validator: v,
	}
}

// CreateCompletion routes a prompt and returns the stubbed provider payload.
// The body is JSON or a multipart form; a "file" part marks the request as carrying a file.
//
// POST /v1/chat/completions
func (h *ChatHandler) CreateCompletion(c *gin.Context) {
	var req api.CompletionRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(api.ValidationError(routing.Reason(routing.ErrMissingParameter), h.validator.ParseError(err)))
		return
	}

	_, err := c.FormFile("file")
	hasFile := err == nil

	resp, err := h.service.Complete(c.Request.Context(), &req, hasFile)
	if err != nil {
		_ = c.Error(problemFor(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}
