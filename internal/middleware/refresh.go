package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopcart/internal/domain"
)

// refreshSession exchanges a refresh-token cookie for a fresh access token
// and continues the request. The caller never sees an intermediate state:
// the request either proceeds with a rotated access cookie or terminates
// with a 401/403.
//
// A presented refresh token is honored only when it is byte-identical to the
// single token persisted for the user. Anything else means the session was
// superseded or revoked, and the attempt is terminal.
func (a *Authenticator) refreshSession(c *gin.Context, raw string) {
	claims, err := a.codec.VerifyRefresh(raw)
	if err != nil {
		a.reject(c, http.StatusUnauthorized, "REFRESH_TOKEN_EXPIRED", "Refresh token expired or invalid")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), a.lookupTimeout)
	defer cancel()

	user, err := a.users.GetByIDWithSession(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.reject(c, http.StatusUnauthorized, "USER_NOT_FOUND", "User not found")
			return
		}
		a.rejectInternal(c, "user lookup failed", err)
		return
	}

	if user.RefreshToken != raw {
		a.reject(c, http.StatusUnauthorized, "TOKEN_MISMATCH", "Session is no longer valid")
		return
	}

	if user.Blocked {
		a.reject(c, http.StatusForbidden, "", "Account is blocked")
		return
	}

	access, err := a.codec.SignAccess(user.ID)
	if err != nil {
		a.rejectInternal(c, "access token mint failed", err)
		return
	}

	a.SetAccessCookie(c, access)
	a.onEvent("refreshed", map[string]any{"user_id": user.ID})
	setCurrentUser(c, *user)
	c.Next()
}

// SetAccessCookie writes the access-token cookie with attributes derived
// from the deployment environment.
func (a *Authenticator) SetAccessCookie(c *gin.Context, token string) {
	c.SetSameSite(a.cookies.sameSite)
	c.SetCookie(AccessCookieName, token, int(a.codec.AccessTTL().Seconds()), "/", a.cookies.domain, a.cookies.secure, true)
}

// SetRefreshCookie writes the refresh-token cookie. Used by the login flow.
func (a *Authenticator) SetRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(a.cookies.sameSite)
	c.SetCookie(RefreshCookieName, token, int(a.codec.RefreshTTL().Seconds()), "/", a.cookies.domain, a.cookies.secure, true)
}

// ClearSessionCookies expires both auth cookies. Used by the logout flow.
func (a *Authenticator) ClearSessionCookies(c *gin.Context) {
	c.SetSameSite(a.cookies.sameSite)
	c.SetCookie(AccessCookieName, "", -1, "/", a.cookies.domain, a.cookies.secure, true)
	c.SetCookie(RefreshCookieName, "", -1, "/", a.cookies.domain, a.cookies.secure, true)
}
