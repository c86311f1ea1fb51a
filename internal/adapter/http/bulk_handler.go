package http

import (
	"net/http"

	"worktrack-backend/internal/domain/timesheet"
	"worktrack-backend/internal/usecase/bulk"
	"worktrack-backend/internal/usecase/workflow"

	"github.com/labstack/echo/v4"
)

type BulkHandler struct {
	wf    *workflow.Usecase
	coord *bulk.Coordinator
}

func NewBulkHandler(wf *workflow.Usecase, coord *bulk.Coordinator) *BulkHandler {
	return &BulkHandler{wf: wf, coord: coord}
}

// An empty id list is an empty batch (400), not a validation failure.
type bulkReq struct {
	TimesheetIDs []string `json:"timesheet_ids" validate:"max=500,dive,hex32"`
	Action       string   `json:"action"        validate:"required,oneof=approve reject"`
	Reason       string   `json:"reason"        validate:"max=2000"`
}

func (h *BulkHandler) Review(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req bulkReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	batch := bulk.Batch{TimesheetIDs: req.TimesheetIDs, Action: timesheet.Action(req.Action), Reason: req.Reason}
	if len(batch.TimesheetIDs) == 0 {
		return writeError(c, timesheet.ErrEmptyBatch)
	}
	if batch.Action == timesheet.ActionReject {
		if _, err := workflow.ValidateReason(batch.Reason); err != nil {
			return writeError(c, err)
		}
	}

	ctx := c.Request().Context()
	rv, err := h.wf.ReviewerFor(ctx, actor)
	if err != nil {
		return writeError(c, err)
	}
	rep, err := h.coord.Run(ctx, rv, batch)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rep)
}
