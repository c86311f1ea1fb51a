package uow

import (
	"context"

	"worktrack-backend/internal/domain/review"
	"worktrack-backend/internal/domain/timesheet"
)

type Repos struct {
	Timesheets timesheet.Repository
	Reviews    review.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: load the timesheet inside the tx, then pass it in
	WithinTimesheetTx(ctx context.Context, timesheetID string, fn func(r Repos, t *timesheet.Timesheet) error) error
}
