package middleware

import (
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
)

// CasbinMW wraps the casbin enforcer for middleware
type CasbinMW struct {
	enforcer *casbin.Enforcer
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(enforcer *casbin.Enforcer) *CasbinMW {
	return &CasbinMW{enforcer: enforcer}
}

// Enforce authorizes the request against the policy table using the role the
// auth middleware derived from the session (anonymous vs full account)
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get("user_role")
		if !ok {
			c.JSON(http.StatusUnauthorized, errorBody(domain.KindUnauthenticated, "Role not found in context"))
			c.Abort()
			return
		}

		casbinRole := "role_" + role.(string)
		allowed, err := mw.enforcer.Enforce(casbinRole, c.Request.URL.Path, c.Request.Method)
		if err != nil {
			c.JSON(http.StatusInternalServerError, errorBody(domain.KindInternal, "Authorization check failed"))
			c.Abort()
			return
		}
		if !allowed {
			c.JSON(http.StatusForbidden, errorBody(domain.KindPermissionDenied, "Access denied"))
			c.Abort()
			return
		}

		c.Next()
	}
}
