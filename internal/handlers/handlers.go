package handlers

import (
	"errors"
	"net/http"

	"github.com/crestline/huddle/backend/internal/middleware"
	"github.com/crestline/huddle/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// currentUserID returns the acting user id placed on the context by the
// identity middleware.
func currentUserID(c echo.Context) uint {
	return c.Get(middleware.UserIDKey).(uint)
}

// httpError maps repository errors onto HTTP responses: not-found
// identifiers become 404, exhausted toggle retries 409, everything else
// 500. Validation failures are handled before repositories are reached.
func httpError(err error, msg string) *echo.HTTPError {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, msg+" not found")
	case errors.Is(err, repositories.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, "Concurrent update, please retry")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
