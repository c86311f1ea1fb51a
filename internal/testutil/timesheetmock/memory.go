package timesheetmock

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "worktrack-backend/internal/domain/timesheet"
)

var _ domain.Repository = (*Memory)(nil)

// Memory is an in-process domain.Repository with the same conditional
// transition semantics as the SQL store. Safe for concurrent use.
//
// Fail, when set, is consulted before every write; a non-nil result is
// returned as is and nothing changes.
type Memory struct {
	Fail func(op, timesheetID string) error

	mu     sync.Mutex
	nextID uint64
	rows   map[string]*domain.Timesheet
}

// NewMemory stores seed as is; fixtures may break the one-per-week rule
// that Create enforces.
func NewMemory(seed ...domain.Timesheet) *Memory {
	m := &Memory{rows: map[string]*domain.Timesheet{}}
	for i := range seed {
		t := seed[i]
		m.insert(&t)
	}
	return m
}

func clone(t *domain.Timesheet) *domain.Timesheet {
	c := *t
	c.Entries = append([]domain.TimeEntry(nil), t.Entries...)
	return &c
}

func (m *Memory) fail(op, id string) error {
	if m.Fail == nil {
		return nil
	}
	return m.Fail(op, id)
}

// Create rejects a second live timesheet for the same owner and week, like
// the unique index of the SQL store.
func (m *Memory) Create(ctx context.Context, t *domain.Timesheet) error {
	if err := m.fail("create", t.TimesheetID); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	week := domain.DateOnly(t.WeekStart)
	for _, r := range m.rows {
		if r.OwnerUserID == t.OwnerUserID && domain.DateOnly(r.WeekStart).Equal(week) {
			return domain.DuplicateWeek(week)
		}
	}
	m.insert(t)
	return nil
}

// insert needs m.mu held, or no other goroutine yet.
func (m *Memory) insert(t *domain.Timesheet) {
	m.nextID++
	t.ID = m.nextID
	if t.Status == "" {
		t.Status = domain.StatusDraft
	}
	for i := range t.Entries {
		t.Entries[i].SheetID = t.ID
		t.Entries[i].Position = i
	}
	now := time.Now().UTC()
	t.CreatedAt, t.UpdatedAt = now, now
	m.rows[t.TimesheetID] = clone(t)
}

func (m *Memory) GetByTimesheetID(ctx context.Context, timesheetID string) (*domain.Timesheet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.rows[timesheetID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(t), nil
}

func (m *Memory) Fetch(ctx context.Context, f domain.Filter) ([]domain.Timesheet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	owners := map[string]bool{}
	for _, o := range f.OwnerIDs {
		owners[o] = true
	}
	out := []domain.Timesheet{}
	for _, t := range m.rows {
		if f.OwnerIDs != nil && !owners[t.OwnerUserID] {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.WeekStart != nil && !domain.DateOnly(t.WeekStart).Equal(domain.DateOnly(*f.WeekStart)) {
			continue
		}
		out = append(out, *clone(t))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].WeekStart.Equal(out[j].WeekStart) {
			return out[i].WeekStart.After(out[j].WeekStart)
		}
		return out[i].ID > out[j].ID
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *Memory) ReplaceEntries(ctx context.Context, timesheetID string, entries []domain.TimeEntry) error {
	if err := m.fail("edit entries", timesheetID); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.rows[timesheetID]
	if !ok {
		return domain.ErrNotFound
	}
	if !t.Status.Editable() {
		return domain.Invalid("edit entries from " + string(t.Status))
	}
	t.Entries = make([]domain.TimeEntry, len(entries))
	for i, e := range entries {
		e.SheetID = t.ID
		e.Position = i
		t.Entries[i] = e
	}
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// apply runs the a transition under the lock, then mut on the stored row.
func (m *Memory) apply(timesheetID string, a domain.Action, mut func(t *domain.Timesheet)) error {
	if err := m.fail(string(a), timesheetID); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.rows[timesheetID]
	if !ok {
		return domain.ErrNotFound
	}
	next, err := t.Status.Next(a)
	if err != nil {
		return err
	}
	t.Status = next
	mut(t)
	t.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *Memory) Submit(ctx context.Context, timesheetID string, at time.Time) error {
	return m.apply(timesheetID, domain.ActionSubmit, func(t *domain.Timesheet) {
		at := at.UTC()
		t.SubmittedAt = &at
		t.ReviewedAt, t.ReviewedBy, t.RejectionReason = nil, nil, nil
		t.Cycle++
	})
}

func (m *Memory) Approve(ctx context.Context, timesheetID, reviewerID string, at time.Time) error {
	return m.apply(timesheetID, domain.ActionApprove, func(t *domain.Timesheet) {
		at := at.UTC()
		t.ReviewedAt, t.ReviewedBy = &at, &reviewerID
	})
}

func (m *Memory) Reject(ctx context.Context, timesheetID, reviewerID, reason string, at time.Time) error {
	return m.apply(timesheetID, domain.ActionReject, func(t *domain.Timesheet) {
		at := at.UTC()
		t.ReviewedAt, t.ReviewedBy, t.RejectionReason = &at, &reviewerID, &reason
	})
}

func (m *Memory) Reopen(ctx context.Context, timesheetID string) error {
	return m.apply(timesheetID, domain.ActionReopen, func(*domain.Timesheet) {})
}

func (m *Memory) Delete(ctx context.Context, timesheetID, deletedBy string) error {
	if err := m.fail("delete", timesheetID); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[timesheetID]; !ok {
		return domain.ErrNotFound
	}
	delete(m.rows, timesheetID)
	return nil
}
