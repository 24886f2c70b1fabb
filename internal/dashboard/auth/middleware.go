package auth

import (
	"net/http"

	"portfolio_backend/platform/apperr"
	"portfolio_backend/platform/httpkit"
	"portfolio_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

const principalKey = "dashboard_principal"

// Middleware rejects requests without a credential accepted by authn.
// Rejections get a bare 401 so neither the token nor any data is echoed.
func Middleware(authn Authenticator, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := httpkit.ExtractBearerToken(c.GetHeader("Authorization"))
		if !ok {
			log.AuthEvent("dashboard_access", authn.Name(), false, c.ClientIP())
			httpkit.AbortError(c, http.StatusUnauthorized, apperr.MsgUnauthorized)
			return
		}

		principal, err := authn.Authenticate(c.Request.Context(), token)
		if err != nil {
			log.AuthEvent("dashboard_access", authn.Name(), false, c.ClientIP())
			httpkit.AbortError(c, http.StatusUnauthorized, apperr.MsgUnauthorized)
			return
		}

		log.AuthEvent("dashboard_access", principal.Provider, true, c.ClientIP())
		c.Set(principalKey, principal)
		c.Next()
	}
}

// PrincipalFrom returns the operator set by Middleware.
func PrincipalFrom(c *gin.Context) (Principal, bool) {
	value, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	principal, ok := value.(Principal)
	return principal, ok
}
