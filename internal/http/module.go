// Package http provides HTTP server infrastructure including the Module interface
// that all domain modules must implement for route registration.
package http

import (
	"github.com/gin-gonic/gin"
)

// Module represents a bounded context that can register its HTTP routes.
type Module interface {
	// Name returns the module's identifier for logging purposes.
	Name() string
	// RegisterRoutes mounts the module's routes using the shared RouterContext.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext provides shared route groups for module registration.
type RouterContext struct {
	// Engine is the root Gin engine.
	Engine *gin.Engine
	// V1 is the /api/v1 route group.
	V1 *gin.RouterGroup
	// Legacy is the unversioned root group kept for the paths the site
	// frontend already calls (/contact, /dashboard).
	Legacy *gin.RouterGroup
}

// Mount registers the same routes on every public group.
func (rc *RouterContext) Mount(register func(group *gin.RouterGroup)) {
	register(rc.V1)
	if rc.Legacy != nil {
		register(rc.Legacy)
	}
}
