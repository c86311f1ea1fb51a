package http

import (
	"errors"
	"net/http"

	"worktrack-backend/internal/domain/timesheet"

	"github.com/labstack/echo/v4"
)

// Map domain errors → HTTP codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, timesheet.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, timesheet.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, timesheet.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, timesheet.ErrValidationFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, timesheet.ErrEmptyBatch):
		return http.StatusBadRequest
	case errors.Is(err, timesheet.ErrRemoteFailure):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeError(c echo.Context, err error) error {
	code := statusFor(err)
	resp := ErrorResponse{Error: err.Error()}
	if code == http.StatusInternalServerError {
		c.Logger().Error(err)
		resp.Error = "internal error"
	}
	if code == http.StatusBadGateway {
		// the wrapped store error stays in the log
		c.Logger().Warn(err)
		resp.Error = timesheet.ErrRemoteFailure.Error()
	}
	var g *timesheet.GuardError
	if errors.As(err, &g) {
		resp.Error = g.Kind.Error() + ": " + g.Guard
		resp.Problems = g.Details
	}
	return c.JSON(code, resp)
}
