package workflow

import (
	"context"
	"time"

	"worktrack-backend/internal/domain/permission"
	"worktrack-backend/internal/domain/review"
	"worktrack-backend/internal/domain/role"
	"worktrack-backend/internal/domain/team"
	"worktrack-backend/internal/domain/timesheet"
	"worktrack-backend/internal/domain/uow"
	"worktrack-backend/internal/logger"
	"worktrack-backend/pkg/id"
)

type Usecase struct {
	timesheets timesheet.Repository
	reviews    review.Repository
	uow        uow.UnitOfWork
	scopes     team.ScopeSource
	log        *logger.Logger
	now        func() time.Time
}

// NewUsecase: reads go through the repositories, every transition through tx.
func NewUsecase(timesheets timesheet.Repository, reviews review.Repository, tx uow.UnitOfWork, scopes team.ScopeSource, log *logger.Logger) *Usecase {
	if log == nil {
		log = logger.Nop()
	}
	return &Usecase{
		timesheets: timesheets,
		reviews:    reviews,
		uow:        tx,
		scopes:     scopes,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the time source; for tests.
func (u *Usecase) SetClock(now func() time.Time) { u.now = now }

func (u *Usecase) scopeFor(ctx context.Context, actor role.Actor) (team.Scope, error) {
	if !team.NeedsScope(actor.Role) {
		return nil, nil
	}
	s, err := u.scopes.FetchTeamScope(ctx, actor.ID)
	if err != nil {
		return nil, timesheet.Remote("fetch team scope", err)
	}
	return s, nil
}

// ReviewerFor clears actor for approve/reject and resolves its scope.
// An actor without the capability is refused before any remote call.
func (u *Usecase) ReviewerFor(ctx context.Context, actor role.Actor) (Reviewer, error) {
	if !permission.CanApproveTimesheets(actor.Role) {
		return Reviewer{}, timesheet.Denied("approve timesheets")
	}
	s, err := u.scopeFor(ctx, actor)
	if err != nil {
		return Reviewer{}, err
	}
	return Reviewer{Actor: actor, Scope: s}, nil
}

func canView(actor role.Actor, scope team.Scope, t *timesheet.Timesheet) bool {
	if t.OwnerUserID == actor.ID {
		return true
	}
	return permission.CanViewTeamData(actor.Role) &&
		team.CanManageUser(actor.Role, actor.ID, t.OwnerUserID, scope)
}

func (u *Usecase) record(ctx context.Context, r uow.Repos, t *timesheet.Timesheet, a timesheet.Action, actorID string, reason *string) error {
	return r.Reviews.Create(ctx, &review.Record{
		ReviewID:  id.NewID32(),
		SheetID:   t.ID,
		Action:    a,
		ActorID:   actorID,
		Cycle:     t.Cycle,
		Reason:    reason,
		CreatedAt: u.now(),
	})
}

// Create opens a draft for the actor's week.
func (u *Usecase) Create(ctx context.Context, actor role.Actor, in CreateInput) (*timesheet.Timesheet, error) {
	week := timesheet.DateOnly(in.WeekStart)
	if !timesheet.IsMonday(week) {
		return nil, timesheet.Rejected("week start", week.Format("2006-01-02")+" is not a Monday")
	}
	for i, e := range in.Entries {
		if err := timesheet.ValidateEntry(e, week); err != nil {
			return nil, annotate(err, i)
		}
	}

	existing, err := u.timesheets.Fetch(ctx, timesheet.Filter{OwnerIDs: []string{actor.ID}, WeekStart: &week, Limit: 1})
	if err != nil {
		return nil, timesheet.Remote("fetch timesheets", err)
	}
	if len(existing) > 0 {
		return nil, timesheet.DuplicateWeek(week)
	}

	t := &timesheet.Timesheet{
		TimesheetID: id.NewID32(),
		OwnerUserID: actor.ID,
		WeekStart:   week,
		Status:      timesheet.StatusDraft,
		Entries:     normalize(in.Entries),
	}
	// a concurrent create for the same week fails here with DuplicateWeek
	if err := u.timesheets.Create(ctx, t); err != nil {
		return nil, timesheet.Remote("create timesheet", err)
	}
	u.log.WithActor(actor.ID, string(actor.Role)).Audit("timesheet created", "timesheet_id", t.TimesheetID, "week_start", week.Format("2006-01-02"))
	return t, nil
}

// Get returns a timesheet the actor may see.
func (u *Usecase) Get(ctx context.Context, actor role.Actor, timesheetID string) (*timesheet.Timesheet, error) {
	t, err := u.timesheets.GetByTimesheetID(ctx, timesheetID)
	if err != nil {
		return nil, timesheet.Remote("get timesheet", err)
	}
	if t.OwnerUserID == actor.ID {
		return t, nil
	}
	if !permission.CanViewTeamData(actor.Role) {
		return nil, timesheet.Denied("view timesheet")
	}
	scope, err := u.scopeFor(ctx, actor)
	if err != nil {
		return nil, err
	}
	if !canView(actor, scope, t) {
		return nil, timesheet.Denied("view timesheet")
	}
	return t, nil
}

// List returns the timesheets visible to the actor, newest week first.
func (u *Usecase) List(ctx context.Context, actor role.Actor, in ListInput) ([]timesheet.Timesheet, error) {
	f := timesheet.Filter{Status: in.Status, WeekStart: in.WeekStart, Limit: in.Limit}
	switch {
	case team.NeedsScope(actor.Role):
		scope, err := u.scopeFor(ctx, actor)
		if err != nil {
			return nil, err
		}
		f.OwnerIDs = append([]string{actor.ID}, scope.UserIDs()...)
	case permission.CanViewTeamData(actor.Role):
		// org-wide
	default:
		f.OwnerIDs = []string{actor.ID}
	}
	out, err := u.timesheets.Fetch(ctx, f)
	if err != nil {
		return nil, timesheet.Remote("fetch timesheets", err)
	}
	return out, nil
}

// Warnings returns everything that would block a submit right now.
func (u *Usecase) Warnings(ctx context.Context, actor role.Actor, timesheetID string) ([]string, error) {
	t, err := u.Get(ctx, actor, timesheetID)
	if err != nil {
		return nil, err
	}
	ws := t.SubmitProblems()
	if ws == nil {
		ws = []string{}
	}
	return ws, nil
}

func (u *Usecase) History(ctx context.Context, actor role.Actor, timesheetID string) ([]review.Record, error) {
	t, err := u.Get(ctx, actor, timesheetID)
	if err != nil {
		return nil, err
	}
	out, err := u.reviews.ListBySheetID(ctx, t.ID)
	if err != nil {
		return nil, timesheet.Remote("list reviews", err)
	}
	return out, nil
}

// ReplaceEntries swaps the entry list of the owner's draft.
func (u *Usecase) ReplaceEntries(ctx context.Context, actor role.Actor, timesheetID string, entries []timesheet.TimeEntry) (*timesheet.Timesheet, error) {
	var out *timesheet.Timesheet
	err := u.uow.WithinTimesheetTx(ctx, timesheetID, func(r uow.Repos, t *timesheet.Timesheet) error {
		if t.OwnerUserID != actor.ID {
			return timesheet.Denied("only the owner can edit entries")
		}
		if !t.Status.Editable() {
			return timesheet.Invalid("edit entries from " + string(t.Status))
		}
		for i, e := range entries {
			if err := timesheet.ValidateEntry(e, t.WeekStart); err != nil {
				return annotate(err, i)
			}
		}
		rows := normalize(entries)
		if err := r.Timesheets.ReplaceEntries(ctx, timesheetID, rows); err != nil {
			return err
		}
		t.Entries = rows
		out = t
		return nil
	})
	if err != nil {
		return nil, timesheet.Remote("replace entries", err)
	}
	return out, nil
}

// Submit moves the owner's draft to submitted once nothing blocks it.
func (u *Usecase) Submit(ctx context.Context, actor role.Actor, timesheetID string) (*timesheet.Timesheet, error) {
	var out *timesheet.Timesheet
	err := u.uow.WithinTimesheetTx(ctx, timesheetID, func(r uow.Repos, t *timesheet.Timesheet) error {
		if t.OwnerUserID != actor.ID {
			return timesheet.Denied("only the owner can submit")
		}
		next, err := t.Status.Next(timesheet.ActionSubmit)
		if err != nil {
			return err
		}
		if problems := t.SubmitProblems(); len(problems) > 0 {
			return timesheet.Rejected("submit", problems...)
		}

		at := u.now()
		if err := r.Timesheets.Submit(ctx, timesheetID, at); err != nil {
			return err
		}
		t.Status = next
		t.SubmittedAt = &at
		t.ReviewedAt, t.ReviewedBy, t.RejectionReason = nil, nil, nil
		t.Cycle++
		if err := u.record(ctx, r, t, timesheet.ActionSubmit, actor.ID, nil); err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, timesheet.Remote("submit timesheet", err)
	}
	u.log.WithActor(actor.ID, string(actor.Role)).Audit("timesheet submitted", "timesheet_id", timesheetID, "cycle", out.Cycle)
	return out, nil
}

func (u *Usecase) Approve(ctx context.Context, rv Reviewer, timesheetID string) (*timesheet.Timesheet, error) {
	return u.review(ctx, rv, timesheetID, timesheet.ActionApprove, "")
}

// Reject validates reason before touching the store.
func (u *Usecase) Reject(ctx context.Context, rv Reviewer, timesheetID, reason string) (*timesheet.Timesheet, error) {
	trimmed, err := ValidateReason(reason)
	if err != nil {
		return nil, err
	}
	return u.review(ctx, rv, timesheetID, timesheet.ActionReject, trimmed)
}

func (u *Usecase) review(ctx context.Context, rv Reviewer, timesheetID string, a timesheet.Action, reason string) (*timesheet.Timesheet, error) {
	if !permission.CanApproveTimesheets(rv.Role) {
		return nil, timesheet.Denied("approve timesheets")
	}

	var out *timesheet.Timesheet
	err := u.uow.WithinTimesheetTx(ctx, timesheetID, func(r uow.Repos, t *timesheet.Timesheet) error {
		if !team.CanManageUser(rv.Role, rv.ID, t.OwnerUserID, rv.Scope) {
			return timesheet.Denied("owner outside approval scope")
		}
		next, err := t.Status.Next(a)
		if err != nil {
			return err
		}

		at := u.now()
		var why *string
		if a == timesheet.ActionReject {
			why = &reason
			err = r.Timesheets.Reject(ctx, timesheetID, rv.ID, reason, at)
		} else {
			err = r.Timesheets.Approve(ctx, timesheetID, rv.ID, at)
		}
		if err != nil {
			return err
		}
		reviewer := rv.ID
		t.Status = next
		t.ReviewedAt, t.ReviewedBy, t.RejectionReason = &at, &reviewer, why
		if err := u.record(ctx, r, t, a, rv.ID, why); err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, timesheet.Remote(string(a)+" timesheet", err)
	}
	u.log.WithActor(rv.ID, string(rv.Role)).Audit("timesheet reviewed", "timesheet_id", timesheetID, "action", string(a), "owner_user_id", out.OwnerUserID)
	return out, nil
}

// Reopen returns the owner's rejected timesheet to draft.
func (u *Usecase) Reopen(ctx context.Context, actor role.Actor, timesheetID string) (*timesheet.Timesheet, error) {
	var out *timesheet.Timesheet
	err := u.uow.WithinTimesheetTx(ctx, timesheetID, func(r uow.Repos, t *timesheet.Timesheet) error {
		if t.OwnerUserID != actor.ID {
			return timesheet.Denied("only the owner can reopen")
		}
		next, err := t.Status.Next(timesheet.ActionReopen)
		if err != nil {
			return err
		}
		if err := r.Timesheets.Reopen(ctx, timesheetID); err != nil {
			return err
		}
		t.Status = next
		if err := u.record(ctx, r, t, timesheet.ActionReopen, actor.ID, nil); err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, timesheet.Remote("reopen timesheet", err)
	}
	u.log.WithActor(actor.ID, string(actor.Role)).Audit("timesheet reopened", "timesheet_id", timesheetID)
	return out, nil
}

// Delete soft-deletes. Owners may delete their own in any status; anyone
// else needs the delete capability and the owner in scope.
func (u *Usecase) Delete(ctx context.Context, actor role.Actor, timesheetID string) error {
	err := u.uow.WithinTimesheetTx(ctx, timesheetID, func(r uow.Repos, t *timesheet.Timesheet) error {
		if t.OwnerUserID != actor.ID {
			if !permission.CanDeleteRecord(actor.Role, permission.RecordTimesheet) {
				return timesheet.Denied("delete timesheet")
			}
			scope, err := u.scopeFor(ctx, actor)
			if err != nil {
				return err
			}
			if !team.CanManageUser(actor.Role, actor.ID, t.OwnerUserID, scope) {
				return timesheet.Denied("delete timesheet")
			}
		}
		return r.Timesheets.Delete(ctx, timesheetID, actor.ID)
	})
	if err != nil {
		return timesheet.Remote("delete timesheet", err)
	}
	u.log.WithActor(actor.ID, string(actor.Role)).Audit("timesheet deleted", "timesheet_id", timesheetID)
	return nil
}

// normalize copies entries, pinning dates to the calendar day and
// dropping any ids a client sent.
func normalize(in []timesheet.TimeEntry) []timesheet.TimeEntry {
	out := make([]timesheet.TimeEntry, len(in))
	for i, e := range in {
		e.ID, e.SheetID, e.Position = 0, 0, i
		e.Date = timesheet.DateOnly(e.Date)
		out[i] = e
	}
	return out
}
