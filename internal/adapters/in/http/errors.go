package http

import (
	"errors"
	"net/http"

	"production/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every failed API response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeError(c echo.Context, status int, message string) error {
	return c.JSON(status, Error{Code: status, Message: message})
}

// statusOf maps domain errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrInvalidState):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err with its mapped status. Internal errors are logged and
// reported without detail.
func (s *Server) fail(c echo.Context, err error) error {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", c.Request().Method, "path", c.Path(), "error", err)
		return writeError(c, status, http.StatusText(status))
	}
	return writeError(c, status, err.Error())
}
