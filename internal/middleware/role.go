package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopcart/internal/pkg/response"
)

// AdminOnly requires the admin capability on the identity attached by
// Authenticate. Must run after it.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		if !user.HasAdminAccess() {
			response.Error(c, http.StatusForbidden, "Access denied: admin only")
			c.Abort()
			return
		}

		c.Next()
	}
}
