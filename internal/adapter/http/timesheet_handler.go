package http

import (
	"net/http"
	"strconv"

	"worktrack-backend/internal/domain/timesheet"
	"worktrack-backend/internal/usecase/workflow"

	"github.com/labstack/echo/v4"
)

type TimesheetHandler struct{ uc *workflow.Usecase }

func NewTimesheetHandler(uc *workflow.Usecase) *TimesheetHandler { return &TimesheetHandler{uc: uc} }

type entryReq struct {
	ProjectID   string  `json:"project_id"  validate:"required,hex32"`
	TaskID      string  `json:"task_id"     validate:"omitempty,hex32"`
	Date        string  `json:"date"        validate:"required,yyyymmdd"`
	Hours       float64 `json:"hours"       validate:"gt=0,lte=24,dec2"`
	Description string  `json:"description" validate:"max=2000"`
	IsBillable  bool    `json:"is_billable"`
}

type createTimesheetReq struct {
	WeekStart string     `json:"week_start" validate:"required,yyyymmdd"`
	Entries   []entryReq `json:"entries"    validate:"max=100,dive"`
}

type replaceEntriesReq struct {
	Entries []entryReq `json:"entries" validate:"max=100,dive"`
}

type rejectReq struct {
	Reason string `json:"reason" validate:"max=2000"`
}

func (h *TimesheetHandler) Create(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req createTimesheetReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	t, err := h.uc.Create(c.Request().Context(), actor, workflow.CreateInput{
		WeekStart: parseDate(req.WeekStart),
		Entries:   toEntries(req.Entries),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}

// List accepts ?status=, ?week_start= and ?limit=.
func (h *TimesheetHandler) List(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	in := workflow.ListInput{Status: timesheet.Status(c.QueryParam("status"))}
	if in.Status != "" && !in.Status.Valid() {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid status"})
	}
	if ws := c.QueryParam("week_start"); ws != "" {
		d := parseDate(ws)
		if d.IsZero() {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "week_start must be YYYY-MM-DD"})
		}
		in.WeekStart = &d
	}
	if l := c.QueryParam("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 || n > 500 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be between 1 and 500"})
		}
		in.Limit = n
	}
	out, err := h.uc.List(c.Request().Context(), actor, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": out, "count": len(out)})
}

func (h *TimesheetHandler) Get(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	tsID, err := pathTimesheetID(c)
	if err != nil {
		return err
	}
	t, err := h.uc.Get(c.Request().Context(), actor, tsID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *TimesheetHandler) ReplaceEntries(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	tsID, err := pathTimesheetID(c)
	if err != nil {
		return err
	}
	var req replaceEntriesReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	t, err := h.uc.ReplaceEntries(c.Request().Context(), actor, tsID, toEntries(req.Entries))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *TimesheetHandler) Warnings(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	tsID, err := pathTimesheetID(c)
	if err != nil {
		return err
	}
	ws, err := h.uc.Warnings(c.Request().Context(), actor, tsID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"timesheet_id": tsID, "warnings": ws, "can_submit": len(ws) == 0})
}

func (h *TimesheetHandler) History(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	tsID, err := pathTimesheetID(c)
	if err != nil {
		return err
	}
	recs, err := h.uc.History(c.Request().Context(), actor, tsID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"timesheet_id": tsID, "items": recs})
}

func (h *TimesheetHandler) Submit(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	tsID, err := pathTimesheetID(c)
	if err != nil {
		return err
	}
	t, err := h.uc.Submit(c.Request().Context(), actor, tsID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *TimesheetHandler) Approve(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	tsID, err := pathTimesheetID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	rv, err := h.uc.ReviewerFor(ctx, actor)
	if err != nil {
		return writeError(c, err)
	}
	t, err := h.uc.Approve(ctx, rv, tsID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *TimesheetHandler) Reject(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	tsID, err := pathTimesheetID(c)
	if err != nil {
		return err
	}
	var req rejectReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if _, err := workflow.ValidateReason(req.Reason); err != nil {
		return writeError(c, err)
	}
	ctx := c.Request().Context()
	rv, err := h.uc.ReviewerFor(ctx, actor)
	if err != nil {
		return writeError(c, err)
	}
	t, err := h.uc.Reject(ctx, rv, tsID, req.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *TimesheetHandler) Reopen(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	tsID, err := pathTimesheetID(c)
	if err != nil {
		return err
	}
	t, err := h.uc.Reopen(c.Request().Context(), actor, tsID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *TimesheetHandler) Delete(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	tsID, err := pathTimesheetID(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Request().Context(), actor, tsID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
