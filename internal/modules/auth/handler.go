package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopcart/internal/middleware"
	"shopcart/internal/pkg/response"
)

// Handler manages the HTTP surface of the login/logout flows.
type Handler struct {
	service *Service
	auth    *middleware.Authenticator
}

func NewHandler(service *Service, auth *middleware.Authenticator) *Handler {
	return &Handler{service: service, auth: auth}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.POST("/auth/logout", h.Logout)
	protected.GET("/users/me", h.GetMe)
}

// Login authenticates by email/password and opens a session: both token
// cookies are set and the refresh record is persisted.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "Email or password is incorrect")
		case errors.Is(err, ErrAccountBlocked):
			response.Error(c, http.StatusForbidden, "Account is blocked")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to login")
		}
		return
	}

	h.auth.SetAccessCookie(c, result.AccessToken)
	h.auth.SetRefreshCookie(c, result.RefreshToken)

	response.Success(c, http.StatusOK, gin.H{
		"user": UserPublic{
			ID:      result.User.ID,
			Name:    result.User.Name,
			Email:   result.User.Email,
			Mobile:  result.User.Mobile,
			Role:    string(result.User.Role),
			IsAdmin: result.User.IsAdmin,
		},
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
	})
}

// Logout closes the current session and expires both cookies.
func (h *Handler) Logout(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	refresh, _ := c.Cookie(middleware.RefreshCookieName)
	if err := h.service.Logout(c.Request.Context(), user.ID, refresh); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to logout")
		return
	}

	h.auth.ClearSessionCookies(c)
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// GetMe returns the identity context attached by the auth middleware.
func (h *Handler) GetMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user": UserPublic{
			ID:      user.ID,
			Name:    user.Name,
			Email:   user.Email,
			Mobile:  user.Mobile,
			Role:    string(user.Role),
			IsAdmin: user.IsAdmin,
		},
	})
}
