// Package dashboard provides the token-gated submissions dashboard module.
package dashboard

import (
	"portfolio_backend/internal/dashboard/auth"
	"portfolio_backend/internal/dashboard/handler"
	"portfolio_backend/internal/dashboard/service"
	apphttp "portfolio_backend/internal/http"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Module is the dashboard bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	authn   auth.Authenticator
	log     *logger.Logger
}

// NewModule wires the dashboard over the shared submission store.
func NewModule(store service.Store, authn auth.Authenticator, val *validator.Validator, log *logger.Logger) *Module {
	return &Module{
		handler: handler.New(service.New(store, log), val),
		authn:   authn,
		log:     log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "dashboard"
}

// RegisterRoutes mounts the dashboard under /api/v1 and the legacy root.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Mount(func(g *gin.RouterGroup) {
		group := g.Group("/dashboard")
		group.Use(auth.Middleware(m.authn, m.log))
		group.GET("", m.handler.List)
		group.PATCH("", m.handler.SetRead)
		group.DELETE("", m.handler.Delete)
	})
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
