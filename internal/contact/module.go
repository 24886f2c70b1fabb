// Package contact provides the contact ingestion bounded context module.
package contact

import (
	"portfolio_backend/internal/contact/handler"
	"portfolio_backend/internal/contact/service"
	"portfolio_backend/internal/events"
	apphttp "portfolio_backend/internal/http"
	"portfolio_backend/internal/submissions/repository"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Module is the contact bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule wires the contact module over the shared submission store.
func NewModule(repo repository.SubmissionCreator, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repo, bus, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "contact"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts POST /contact under /api/v1 and the legacy root.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Mount(func(g *gin.RouterGroup) {
		g.POST("/contact", m.handler.Submit)
	})
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
