package uowmock

import (
	"context"
	"errors"

	"worktrack-backend/internal/domain/timesheet"
	"worktrack-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn          func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinTimesheetTxFn func(ctx context.Context, timesheetID string, fn func(r uow.Repos, t *timesheet.Timesheet) error) error
}

// Convenience fluent setters
func New() *UoW { return &UoW{} }
func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}
func (m *UoW) WithWithinTimesheetTx(fn func(context.Context, string, func(uow.Repos, *timesheet.Timesheet) error) error) *UoW {
	m.WithinTimesheetTxFn = fn
	return m
}
func (m *UoW) Reset() { *m = UoW{} }

// Passthrough runs callbacks directly against r, with no transaction.
func Passthrough(r uow.Repos) *UoW {
	return New().
		WithWithinTx(func(ctx context.Context, fn func(uow.Repos) error) error {
			return fn(r)
		}).
		WithWithinTimesheetTx(func(ctx context.Context, id string, fn func(uow.Repos, *timesheet.Timesheet) error) error {
			t, err := r.Timesheets.GetByTimesheetID(ctx, id)
			if err != nil {
				return err
			}
			return fn(r, t)
		})
}

// Methods implementing UnitOfWork
func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinTimesheetTx(ctx context.Context, timesheetID string, fn func(r uow.Repos, t *timesheet.Timesheet) error) error {
	if m.WithinTimesheetTxFn != nil {
		return m.WithinTimesheetTxFn(ctx, timesheetID, fn)
	}
	return errUnimplemented
}
