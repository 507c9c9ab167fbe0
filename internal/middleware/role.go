package middleware

import (
	"net/http"

	"github.com/edustack/edustack-backend/internal/common"
	"github.com/edustack/edustack-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

// RequireRole checks that the request actor holds at least the given
// role. Must run after JWTAuth.
func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := GetActor(c)
		if actor.IsAnonymous() {
			common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
			c.Abort()
			return
		}
		if !actor.AtLeast(role) {
			common.ErrorResponse(c, http.StatusForbidden, "Insufficient role", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireStudent student-or-above gate
func RequireStudent() gin.HandlerFunc {
	return RequireRole(domain.RoleStudent)
}

// RequireContributor contributor-or-above gate
func RequireContributor() gin.HandlerFunc {
	return RequireRole(domain.RoleContributor)
}

// RequireManager manager-or-above gate
func RequireManager() gin.HandlerFunc {
	return RequireRole(domain.RoleManager)
}

// RequireAdmin admin gate
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}
