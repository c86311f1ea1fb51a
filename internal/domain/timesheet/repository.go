package timesheet

import (
	"context"
	"time"
)

// Repository is the timesheet store. Transition methods update only when
// the row is still in the expected source status and return
// ErrInvalidTransition otherwise, so a retried call is never re-applied.
type Repository interface {
	Create(ctx context.Context, t *Timesheet) error
	GetByTimesheetID(ctx context.Context, timesheetID string) (*Timesheet, error)
	Fetch(ctx context.Context, f Filter) ([]Timesheet, error)

	// ReplaceEntries swaps the entry list of a draft.
	ReplaceEntries(ctx context.Context, timesheetID string, entries []TimeEntry) error

	// draft -> submitted; clears review fields and bumps the cycle
	Submit(ctx context.Context, timesheetID string, at time.Time) error
	// submitted -> approved
	Approve(ctx context.Context, timesheetID, reviewerID string, at time.Time) error
	// submitted -> rejected
	Reject(ctx context.Context, timesheetID, reviewerID, reason string, at time.Time) error
	// rejected -> draft; review fields are kept until the next submit
	Reopen(ctx context.Context, timesheetID string) error

	// Soft delete
	Delete(ctx context.Context, timesheetID, deletedBy string) error
}
