package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kawuz/coffee-shop-api/internal/core/ports"
)

// RequireAdmin resolves the authenticated username (set by Auth) to a user
// and rejects the request unless the admin flag is set. Must run after Auth.
func RequireAdmin(users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username, _ := c.Get("username").(string)
			if username == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "auth.notLoggedIn"})
			}

			user, err := users.FindByUsername(c.Request().Context(), username)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "auth.notLoggedIn"})
			}
			if !user.IsAdmin {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "auth.forbidden"})
			}

			return next(c)
		}
	}
}
