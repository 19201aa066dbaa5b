package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"shopcart/internal/config"
	"shopcart/internal/domain"
	"shopcart/internal/pkg/jwt"
	"shopcart/internal/pkg/response"
)

const (
	AccessCookieName  = "accessToken"
	RefreshCookieName = "refreshToken"
)

// UserDirectory is the read surface of the identity store the auth
// middleware depends on.
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByIDWithSession(ctx context.Context, id int64) (*domain.User, error)
}

// EventFunc receives auth decision events. Decision logic never logs
// directly; it emits through this hook so tests can assert on outcomes
// without capturing output.
type EventFunc func(event string, fields map[string]any)

func logEvent(event string, fields map[string]any) {
	log.Printf("auth_event event=%s fields=%v", event, fields)
}

type cookieSettings struct {
	secure   bool
	sameSite http.SameSite
	domain   string
}

// Authenticator gates every protected request: it extracts a bearer token,
// verifies it and resolves the identity, falling back to the refresh path
// when the access token is missing or expired.
type Authenticator struct {
	codec         *jwt.Codec
	users         UserDirectory
	cookies       cookieSettings
	lookupTimeout time.Duration
	onEvent       EventFunc
}

func NewAuthenticator(codec *jwt.Codec, users UserDirectory, cfg *config.AuthRuntimeConfig) *Authenticator {
	timeout := cfg.LookupTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Authenticator{
		codec: codec,
		users: users,
		cookies: cookieSettings{
			secure:   cfg.CookieSecure,
			sameSite: cfg.SameSiteMode(),
			domain:   cfg.CookieDomain,
		},
		lookupTimeout: timeout,
		onEvent:       logEvent,
	}
}

// OnEvent replaces the event hook. Intended for tests and custom sinks.
func (a *Authenticator) OnEvent(fn EventFunc) {
	if fn != nil {
		a.onEvent = fn
	}
}

func (a *Authenticator) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, found := extractAccessToken(c)
		if !found {
			if refresh, ok := refreshCookie(c); ok {
				a.refreshSession(c, refresh)
				return
			}
			a.reject(c, http.StatusUnauthorized, "", "Authentication required")
			return
		}

		claims, err := a.codec.VerifyAccess(token)
		switch {
		case err == nil:
			a.attachUser(c, claims.UserID)
		case errors.Is(err, jwt.ErrTokenExpired):
			if refresh, ok := refreshCookie(c); ok {
				a.refreshSession(c, refresh)
				return
			}
			a.reject(c, http.StatusUnauthorized, "TOKEN_EXPIRED", "Access token expired")
		case errors.Is(err, jwt.ErrTokenMalformed):
			a.reject(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid access token")
		default:
			a.reject(c, http.StatusUnauthorized, "AUTH_FAILED", "Authentication failed")
		}
	}
}

// attachUser resolves the identity behind verified claims and attaches it to
// the request, or terminates the request.
func (a *Authenticator) attachUser(c *gin.Context, userID int64) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), a.lookupTimeout)
	defer cancel()

	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.reject(c, http.StatusUnauthorized, "USER_NOT_FOUND", "User not found")
			return
		}
		a.rejectInternal(c, "user lookup failed", err)
		return
	}

	if user.Blocked {
		a.reject(c, http.StatusForbidden, "", "Account is blocked")
		return
	}

	a.onEvent("authenticated", map[string]any{"user_id": user.ID})
	setCurrentUser(c, *user)
	c.Next()
}

func (a *Authenticator) reject(c *gin.Context, status int, code, message string) {
	a.onEvent("rejected", map[string]any{
		"status": status,
		"code":   code,
		"path":   c.Request.URL.Path,
	})
	if code == "" {
		response.Error(c, status, message)
	} else {
		response.ErrorWithCode(c, status, code, message)
	}
	c.Abort()
}

func (a *Authenticator) rejectInternal(c *gin.Context, message string, err error) {
	a.onEvent("internal_error", map[string]any{
		"path":    c.Request.URL.Path,
		"message": message,
		"error":   err.Error(),
	})
	response.Error(c, http.StatusInternalServerError, "Internal server error")
	c.Abort()
}

// extractAccessToken prefers the same-origin cookie and falls back to the
// Authorization header.
func extractAccessToken(c *gin.Context) (string, bool) {
	if v, err := c.Cookie(AccessCookieName); err == nil && v != "" {
		return v, true
	}

	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		token := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if token != "" {
			return token, true
		}
	}

	return "", false
}

func refreshCookie(c *gin.Context) (string, bool) {
	v, err := c.Cookie(RefreshCookieName)
	if err != nil || v == "" {
		return "", false
	}
	return v, true
}
