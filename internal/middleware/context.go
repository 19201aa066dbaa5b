package middleware

import (
	"github.com/gin-gonic/gin"

	"shopcart/internal/domain"
)

const userContextKey = "auth_user"

// setCurrentUser attaches an immutable copy of the authenticated user to the
// request. Sensitive fields are stripped before the value is stored so no
// downstream handler can leak them.
func setCurrentUser(c *gin.Context, u domain.User) {
	u.PasswordHash = ""
	u.RefreshToken = ""
	c.Set(userContextKey, u)
}

// CurrentUser returns the identity attached by the Authenticate middleware.
// The second return is false when the request never passed authentication.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return domain.User{}, false
	}
	u, ok := v.(domain.User)
	return u, ok
}
