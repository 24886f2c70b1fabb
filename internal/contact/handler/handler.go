package handler

import (
	"net/http"

	"portfolio_backend/internal/contact/service"
	"portfolio_backend/internal/contact/transport"
	"portfolio_backend/platform/apperr"
	"portfolio_backend/platform/httpkit"
	"portfolio_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for the contact form.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new contact handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Submit stores a completed contact conversation.
// POST /api/v1/contact
func (h *Handler) Submit(c *gin.Context) {
	var req transport.SubmitContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, apperr.MsgInvalidBody, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, apperr.MsgMissingFields, validator.FailedFields(err))
		return
	}

	result, err := h.svc.Submit(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}
