package middleware

import (
	"crypto/subtle"
	"net/http"

	"mendwell/config"
	"mendwell/utils"

	"github.com/gin-gonic/gin"
)

// AdminKeyMiddleware gates moderation endpoints behind the operator key.
// With no key configured the endpoints are disabled outright.
func AdminKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		adminKey := config.AppConfig.AdminKey
		provided := c.GetHeader("X-Admin-Key")
		if adminKey == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(adminKey)) != 1 {
			utils.JSONError(c, http.StatusForbidden, "Admin access denied", "")
			c.Abort()
			return
		}
		c.Next()
	}
}
