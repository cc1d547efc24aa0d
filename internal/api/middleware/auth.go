package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kawuz/coffee-shop-api/internal/core/ports"
)

// SessionCookieName is the cookie the session token travels in.
const SessionCookieName = "auth_token"

// Auth validates the session cookie and injects the bound username into the
// request context. unauthorizedCode is the machine-readable message returned
// on failure, so each route group can keep its own error vocabulary.
func Auth(tokens ports.TokenIssuer, unauthorizedCode string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" || !tokens.Validate(cookie.Value) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": unauthorizedCode})
			}

			username, err := tokens.Subject(cookie.Value)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": unauthorizedCode})
			}

			c.Set("username", username)
			return next(c)
		}
	}
}
