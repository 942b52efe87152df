package middleware

import (
	"net/http"

	"mendwell/services/role"
	"mendwell/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole gates a route to principals whose resolved role is in the
// allowed set. The resolver handles caching and background verification.
func RequireRole(resolver *role.Resolver, allowed ...role.Role) gin.HandlerFunc {
	allowedSet := make(map[role.Role]bool, len(allowed))
	for _, r := range allowed {
		allowedSet[r] = true
	}

	return func(c *gin.Context) {
		userID := c.GetString("userID")
		if userID == "" {
			utils.JSONError(c, http.StatusUnauthorized, "Authentication required", "")
			c.Abort()
			return
		}

		resolved := resolver.Resolve(c.Request.Context(), userID, false)
		if !allowedSet[resolved] {
			utils.JSONError(c, http.StatusForbidden, "You do not have access to this area", "")
			c.Abort()
			return
		}

		c.Set("role", string(resolved))
		c.Next()
	}
}
