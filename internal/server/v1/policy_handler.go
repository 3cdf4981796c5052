package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/prompt-router/internal/gateway"
	"github.com/nulzo/prompt-router/internal/routing"
	"github.com/nulzo/prompt-router/internal/server/validator"
	"github.com/nulzo/prompt-router/pkg/api"
)

type PolicyHandler struct {
	service   gateway.Service
	validator *validator.Validator
}

func NewPolicyHandler(service gateway.Service, v *validator.Validator) *PolicyHandler {
	return &PolicyHandler{
		service:   service,
		validator: v,
	}
}

// GET /regex-rules
func (h *PolicyHandler) List(c *gin.Context) {
	policies, err := h.service.ListPolicies(c.Request.Context())
	if err != nil {
		_ = c.Error(problemFor(err))
		return
	}

	c.JSON(http.StatusOK, policies)
}

// POST /regex-rules
func (h *PolicyHandler) Create(c *gin.Context) {
	var req api.CreatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(api.ValidationError(routing.Reason(routing.ErrMissingParameter), h.validator.ParseError(err)))
		return
	}

	id, err := h.service.CreatePolicy(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(problemFor(err))
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Rule added successfully", ID: &id})
}

// DELETE /regex-rules/:id
func (h *PolicyHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		_ = c.Error(api.NotFoundError("Rule not found", api.WithReason(routing.Reason(routing.ErrNotFound))))
		return
	}

	if err := h.service.DeletePolicy(c.Request.Context(), id); err != nil {
		_ = c.Error(problemFor(err))
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Rule deleted successfully"})
}
