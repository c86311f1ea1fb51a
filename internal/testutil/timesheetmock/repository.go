package timesheetmock

import (
	"context"
	"errors"
	"time"

	domain "worktrack-backend/internal/domain/timesheet"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("timesheetmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
// Unfilled functions return errUnimplemented.
type Repo struct {
	CreateFn           func(ctx context.Context, t *domain.Timesheet) error
	GetByTimesheetIDFn func(ctx context.Context, timesheetID string) (*domain.Timesheet, error)
	FetchFn            func(ctx context.Context, f domain.Filter) ([]domain.Timesheet, error)
	ReplaceEntriesFn   func(ctx context.Context, timesheetID string, entries []domain.TimeEntry) error
	SubmitFn           func(ctx context.Context, timesheetID string, at time.Time) error
	ApproveFn          func(ctx context.Context, timesheetID, reviewerID string, at time.Time) error
	RejectFn           func(ctx context.Context, timesheetID, reviewerID, reason string, at time.Time) error
	ReopenFn           func(ctx context.Context, timesheetID string) error
	DeleteFn           func(ctx context.Context, timesheetID, deletedBy string) error
}

func (m *Repo) Create(ctx context.Context, t *domain.Timesheet) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	return errUnimplemented
}

func (m *Repo) GetByTimesheetID(ctx context.Context, timesheetID string) (*domain.Timesheet, error) {
	if m.GetByTimesheetIDFn != nil {
		return m.GetByTimesheetIDFn(ctx, timesheetID)
	}
	return nil, errUnimplemented
}

func (m *Repo) Fetch(ctx context.Context, f domain.Filter) ([]domain.Timesheet, error) {
	if m.FetchFn != nil {
		return m.FetchFn(ctx, f)
	}
	return nil, errUnimplemented
}

func (m *Repo) ReplaceEntries(ctx context.Context, timesheetID string, entries []domain.TimeEntry) error {
	if m.ReplaceEntriesFn != nil {
		return m.ReplaceEntriesFn(ctx, timesheetID, entries)
	}
	return errUnimplemented
}

func (m *Repo) Submit(ctx context.Context, timesheetID string, at time.Time) error {
	if m.SubmitFn != nil {
		return m.SubmitFn(ctx, timesheetID, at)
	}
	return errUnimplemented
}

func (m *Repo) Approve(ctx context.Context, timesheetID, reviewerID string, at time.Time) error {
	if m.ApproveFn != nil {
		return m.ApproveFn(ctx, timesheetID, reviewerID, at)
	}
	return errUnimplemented
}

func (m *Repo) Reject(ctx context.Context, timesheetID, reviewerID, reason string, at time.Time) error {
	if m.RejectFn != nil {
		return m.RejectFn(ctx, timesheetID, reviewerID, reason, at)
	}
	return errUnimplemented
}

func (m *Repo) Reopen(ctx context.Context, timesheetID string) error {
	if m.ReopenFn != nil {
		return m.ReopenFn(ctx, timesheetID)
	}
	return errUnimplemented
}

func (m *Repo) Delete(ctx context.Context, timesheetID, deletedBy string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, timesheetID, deletedBy)
	}
	return errUnimplemented
}
