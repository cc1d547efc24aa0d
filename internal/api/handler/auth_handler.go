package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kawuz/coffee-shop-api/internal/api/metrics"
	"github.com/kawuz/coffee-shop-api/internal/api/middleware"
	"github.com/kawuz/coffee-shop-api/internal/core/domain"
	"github.com/kawuz/coffee-shop-api/internal/core/ports"
)

const sessionMaxAge = 24 * 60 * 60 // seconds; matches the token TTL

// AuthHandler handles login, logout, registration and session checks. The
// session token travels in an HttpOnly, SameSite=Strict cookie.
type AuthHandler struct {
	authService  ports.AuthService
	cookieSecure bool
}

func NewAuthHandler(authService ports.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{authService: authService, cookieSecure: cookieSecure}
}

type loginRequest struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	RecaptchaToken string `json:"recaptchaToken"`
}

type registerRequest struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	Email          string `json:"email"`
	RecaptchaToken string `json:"recaptchaToken"`
}

type sessionResponse struct {
	Message  string `json:"message,omitempty"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Login authenticates a user and sets the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials plus reCAPTCHA token"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "auth.invalidPayload"})
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password, req.RecaptchaToken)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCaptchaRejected):
			metrics.LoginsTotal.WithLabelValues("captcha_rejected").Inc()
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "auth.captchaFailed"})
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "auth.invalidCredentials"})
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	c.SetCookie(h.sessionCookie(token))
	metrics.LoginsTotal.WithLabelValues("ok").Inc()

	return c.JSON(http.StatusOK, sessionResponse{
		Message:  "auth.loggedIn",
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	})
}

// Logout expires the session cookie. There is no server-side session state
// to invalidate.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.expiredSessionCookie())
	return c.JSON(http.StatusOK, echo.Map{"message": "auth.loggedOut"})
}

// Me reports the current session's user, letting the frontend recover its
// session after a page reload.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  "no valid session"
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	var token string
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil {
		token = cookie.Value
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.NoContent(http.StatusUnauthorized)
		}
		return err
	}

	return c.JSON(http.StatusOK, sessionResponse{
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	})
}

// Register creates a new non-admin account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "New account details plus reCAPTCHA token"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "auth.invalidPayload"})
	}

	_, err := h.authService.Register(c.Request().Context(), req.Username, req.Password, req.Email, req.RecaptchaToken)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCaptchaRejected):
			metrics.RegistrationsTotal.WithLabelValues("captcha_rejected").Inc()
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "auth.captchaFailed"})
		case errors.Is(err, domain.ErrUsernameTaken):
			metrics.RegistrationsTotal.WithLabelValues("username_taken").Inc()
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "auth.usernameTaken"})
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, echo.Map{"message": "auth.registered"})
}

func (h *AuthHandler) sessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	}
}

// expiredSessionCookie overwrites the session cookie with an empty value and
// Max-Age=0 so the browser drops it immediately.
func (h *AuthHandler) expiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	}
}
