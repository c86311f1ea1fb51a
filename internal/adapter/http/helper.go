package http

import (
	"net/http"
	"time"

	"worktrack-backend/internal/adapter/middleware"
	"worktrack-backend/internal/domain/role"
	"worktrack-backend/internal/domain/timesheet"
	"worktrack-backend/pkg/id"

	"github.com/labstack/echo/v4"
)

// ---- helpers ----

func currentActor(c echo.Context) (role.Actor, error) {
	a, ok := middleware.ActorFrom(c)
	if !ok {
		return role.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	return a, nil
}

// pathTimesheetID validates the :id path param.
func pathTimesheetID(c echo.Context) (string, error) {
	v := c.Param("id")
	if !id.Valid(v) {
		return "", echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{Error: "invalid timesheet id"})
	}
	return v, nil
}

// bindValid binds then validates req. Errors are *echo.HTTPError carrying
// an ErrorResponse.
func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return nil
}

// parseDate is only called on values that passed yyyymmdd.
func parseDate(s string) time.Time {
	t, _ := time.Parse(dateLayout, s)
	return t
}

func toEntries(in []entryReq) []timesheet.TimeEntry {
	out := make([]timesheet.TimeEntry, len(in))
	for i, e := range in {
		out[i] = timesheet.TimeEntry{
			ProjectID:   e.ProjectID,
			TaskID:      e.TaskID,
			Date:        parseDate(e.Date),
			Hours:       e.Hours,
			Description: e.Description,
			IsBillable:  e.IsBillable,
		}
	}
	return out
}
