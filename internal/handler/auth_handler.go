package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"stockroom/internal/auth"
	"stockroom/internal/config"
	"stockroom/internal/errors"
	"stockroom/internal/middleware"
	"stockroom/internal/service"
	"stockroom/internal/shape"
)

// AuthHandler handles registration, login, and account endpoints.
type AuthHandler struct {
	authService service.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest represents a password change request.
type ChangePasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

// ChangeUserDataRequest represents a profile change request.
type ChangeUserDataRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Username  string `json:"username" validate:"required"`
}

// Register godoc
// @Summary Register a new user and log them in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, errors.ErrMissingField)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, errors.ErrMissingField)
	}

	user, token, err := h.authService.Register(c.Request().Context(), req.FirstName, req.LastName, req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	h.setSessionCookie(c, token)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    shape.Profile(user),
	})
}

// Login godoc
// @Summary Log in with username and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} shape.UserProfile
// @Failure 400 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, errors.ErrMissingField)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, errors.ErrMissingField)
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	h.setSessionCookie(c, token)
	return c.JSON(http.StatusOK, shape.Profile(user))
}

// Logout godoc
// @Summary Destroy the current session
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(auth.SessionCookie); err == nil {
		_ = h.authService.Logout(c.Request().Context(), cookie.Value)
	}
	h.clearSessionCookie(c)
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// CurrentUser godoc
// @Summary Get the authenticated user
// @Tags auth
// @Produce json
// @Success 200 {object} shape.UserProfile
// @Failure 401 {object} errors.ErrorResponse
// @Router /user [get]
func (h *AuthHandler) CurrentUser(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return respondError(c, errors.ErrUnauthorized)
	}
	user, err := h.authService.GetUser(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, shape.Profile(user))
}

// ChangePassword godoc
// @Summary Change the authenticated user's password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ChangePasswordRequest true "New password"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /change_password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return respondError(c, errors.ErrUnauthorized)
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, errors.ErrMissingField)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, errors.ErrMissingField)
	}

	if err := h.authService.ChangePassword(c.Request().Context(), userID, req.Password); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// ChangeUserData godoc
// @Summary Change the authenticated user's profile
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ChangeUserDataRequest true "Profile fields"
// @Success 200 {object} shape.UserProfile
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /change_user_data [post]
func (h *AuthHandler) ChangeUserData(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return respondError(c, errors.ErrUnauthorized)
	}

	var req ChangeUserDataRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, errors.ErrMissingField)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, errors.ErrMissingField)
	}

	user, err := h.authService.UpdateProfile(c.Request().Context(), userID, req.FirstName, req.LastName, req.Username)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, shape.Profile(user))
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(h.sessionCookie(token, int(auth.SessionTTL/time.Second)))
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(h.sessionCookie("", -1))
}

// sessionCookie builds the session cookie. SameSite is relaxed outside
// production so browser clients on localhost can authenticate.
func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if h.cfg.IsProduction() {
		sameSite = http.SameSiteStrictMode
	}
	return &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: sameSite,
	}
}
