package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cardvault/internal/auth"
	"cardvault/internal/middleware"
	"cardvault/internal/service"
)

// AuthHandler handles registration, login, logout, and session inspection.
type AuthHandler struct {
	authService service.AuthService
	sessions    *auth.SessionManager
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, sessions *auth.SessionManager) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SessionCheckResponse reports the current session principal.
type SessionCheckResponse struct {
	LoggedIn bool   `json:"logged_in"`
	UserID   uint   `json:"user_id,omitempty"`
	UserRole string `json:"user_role,omitempty"`
	Username string `json:"username,omitempty"`
}

// Register godoc
// @Summary Register a new customer or merchant user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		return respondError(c, "register", err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "user registered successfully",
		"user_id": user.ID,
	})
}

// Login godoc
// @Summary Log in and establish a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	principal, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return respondError(c, "login", err)
	}

	token, err := h.sessions.Issue(c.Request().Context(), *principal)
	if err != nil {
		return respondError(c, "issue session", err)
	}
	c.SetCookie(sessionCookie(token, int(auth.SessionTTL.Seconds())))

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"user_id": principal.UserID,
		"role":    principal.Role,
	})
}

// Logout destroys the session and clears the cookie. The cookie is cleared
// even when the store delete fails; the token then dies with its TTL instead
// of lingering on the client.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(auth.SessionCookieName); err == nil {
		if err := h.sessions.Destroy(c.Request().Context(), cookie.Value); err != nil {
			c.Logger().Errorf("logout: %v", err)
		}
	}
	c.SetCookie(sessionCookie("", -1))
	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out"})
}

// CheckSession reports the live principal, or logged_in=false with 401 for
// the unauthenticated case. Both outcomes are ordinary responses.
func (h *AuthHandler) CheckSession(c echo.Context) error {
	cookie, err := c.Cookie(auth.SessionCookieName)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, SessionCheckResponse{})
	}
	principal, err := h.sessions.Resolve(c.Request().Context(), cookie.Value)
	if err != nil {
		if err == auth.ErrNoSession {
			return c.JSON(http.StatusUnauthorized, SessionCheckResponse{})
		}
		return respondError(c, "check session", err)
	}
	return c.JSON(http.StatusOK, SessionCheckResponse{
		LoggedIn: true,
		UserID:   principal.UserID,
		UserRole: string(principal.Role),
		Username: principal.Username,
	})
}

func sessionCookie(token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// principal is a shortcut used by the other handlers.
func principal(c echo.Context) *auth.Principal {
	return middleware.Principal(c)
}
