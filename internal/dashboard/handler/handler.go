package handler

import (
	"net/http"

	"portfolio_backend/internal/dashboard/service"
	"portfolio_backend/internal/dashboard/transport"
	"portfolio_backend/platform/apperr"
	"portfolio_backend/platform/httpkit"
	"portfolio_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for the submissions dashboard.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new dashboard handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// List returns one page of submissions.
// GET /api/v1/dashboard?page=&limit=
func (h *Handler) List(c *gin.Context) {
	var query transport.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, apperr.MsgInvalidBody, nil)
		return
	}

	result, err := h.svc.List(c.Request.Context(), query)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SetRead marks a submission read or unread.
// PATCH /api/v1/dashboard
func (h *Handler) SetRead(c *gin.Context) {
	var req transport.SetReadRequest
	if !h.bind(c, &req) {
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		httpkit.Success(c)
		return
	}

	if httpkit.HandleError(c, h.svc.SetRead(c.Request.Context(), id, *req.Read)) {
		return
	}
	httpkit.Success(c)
}

// Delete removes a submission.
// DELETE /api/v1/dashboard
func (h *Handler) Delete(c *gin.Context) {
	var req transport.DeleteRequest
	if !h.bind(c, &req) {
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		httpkit.Success(c)
		return
	}

	if httpkit.HandleError(c, h.svc.Delete(c.Request.Context(), id)) {
		return
	}
	httpkit.Success(c)
}

// bind decodes and validates a JSON body, writing a 400 on failure.
func (h *Handler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, apperr.MsgInvalidBody, nil)
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, apperr.MsgInvalidBody, validator.FailedFields(err))
		return false
	}
	return true
}
