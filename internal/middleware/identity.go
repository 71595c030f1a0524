package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// UserIDKey is the context key the identity middleware stores the acting
// user id under.
const UserIDKey = "userID"

// RequireUser extracts the acting user id from the X-User-ID header and
// stores it on the request context. Authentication itself happens upstream
// (session provider or authenticating proxy); the core only requires that
// every mutating operation names its caller explicitly.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get("X-User-ID")
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing X-User-ID header")
			}
			id, err := strconv.ParseUint(raw, 10, 32)
			if err != nil || id == 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid X-User-ID header")
			}
			c.Set(UserIDKey, uint(id))
			return next(c)
		}
	}
}
