package uowmock

import (
	"context"
	"errors"
	"testing"

	"worktrack-backend/internal/domain/timesheet"
	"worktrack-backend/internal/domain/uow"
	"worktrack-backend/internal/testutil/reviewmock"
	"worktrack-backend/internal/testutil/timesheetmock"
)

func TestUoW_WithinTx_Happy(t *testing.T) {
	ctx := context.Background()

	sheets := &timesheetmock.Repo{}
	reviews := &reviewmock.Repo{}
	repos := uow.Repos{Timesheets: sheets, Reviews: reviews}

	innerCalled := false
	m := &UoW{
		WithinTxFn: func(gotCtx context.Context, fn func(r uow.Repos) error) error {
			if gotCtx != ctx {
				t.Fatalf("WithinTx: ctx mismatch")
			}
			return fn(repos)
		},
	}

	err := m.WithinTx(ctx, func(r uow.Repos) error {
		innerCalled = true
		if r.Timesheets != sheets || r.Reviews != reviews {
			t.Fatalf("WithinTx: repos not forwarded correctly")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinTx: unexpected err: %v", err)
	}
	if !innerCalled {
		t.Fatalf("WithinTx: inner fn not called")
	}
}

func TestUoW_WithinTx_PropagatesError(t *testing.T) {
	sentinel := errors.New("boom")
	m := &UoW{
		WithinTxFn: func(context.Context, func(uow.Repos) error) error { return sentinel },
	}
	if err := m.WithinTx(context.Background(), func(uow.Repos) error { return nil }); !errors.Is(err, sentinel) {
		t.Fatalf("WithinTx: want %v, got %v", sentinel, err)
	}
}

func TestUoW_Default_Unimplemented(t *testing.T) {
	ctx := context.Background()
	m := &UoW{} // no funcs set
	if err := m.WithinTx(ctx, func(uow.Repos) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinTx default: want errUnimplemented, got %v", err)
	}
	err := m.WithinTimesheetTx(ctx, "x", func(uow.Repos, *timesheet.Timesheet) error { return nil })
	if !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinTimesheetTx default: want errUnimplemented, got %v", err)
	}
}

func TestUoW_Passthrough_LoadsTimesheet(t *testing.T) {
	mem := timesheetmock.NewMemory(timesheet.Timesheet{TimesheetID: "ts-1", OwnerUserID: "u1"})
	m := Passthrough(uow.Repos{Timesheets: mem, Reviews: &reviewmock.Repo{}})

	err := m.WithinTimesheetTx(context.Background(), "ts-1", func(r uow.Repos, ts *timesheet.Timesheet) error {
		if ts.OwnerUserID != "u1" || ts.Status != timesheet.StatusDraft {
			t.Fatalf("unexpected timesheet: %+v", ts)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	err = m.WithinTimesheetTx(context.Background(), "missing", func(uow.Repos, *timesheet.Timesheet) error {
		t.Fatal("fn must not run for a missing timesheet")
		return nil
	})
	if !errors.Is(err, timesheet.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestUoW_FluentSetters_And_Reset(t *testing.T) {
	m := New()
	if m.WithinTxFn != nil || m.WithinTimesheetTxFn != nil {
		t.Fatalf("New should start with nil funcs")
	}
	m.WithWithinTx(func(context.Context, func(uow.Repos) error) error { return nil }).
		WithWithinTimesheetTx(func(context.Context, string, func(uow.Repos, *timesheet.Timesheet) error) error { return nil })
	if m.WithinTxFn == nil || m.WithinTimesheetTxFn == nil {
		t.Fatalf("fluent setters didn't assign funcs")
	}
	m.Reset()
	if m.WithinTxFn != nil || m.WithinTimesheetTxFn != nil {
		t.Fatalf("Reset should clear function fields")
	}
}
