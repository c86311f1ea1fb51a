package teammock

import (
	"context"
	"sync"

	domain "worktrack-backend/internal/domain/team"
)

var (
	_ domain.MemberStore      = (*Members)(nil)
	_ domain.ScopeInvalidator = (*Invalidator)(nil)
)

// Members is a function-backed domain.MemberStore. Unset, AddMember keeps
// the row in Rows and ProjectMemberIDs reads from it.
type Members struct {
	AddMemberFn        func(ctx context.Context, m *domain.ProjectMember) error
	ProjectMemberIDsFn func(ctx context.Context, projectID string) ([]string, error)

	Rows []domain.ProjectMember
}

func (m *Members) AddMember(ctx context.Context, pm *domain.ProjectMember) error {
	if m.AddMemberFn != nil {
		return m.AddMemberFn(ctx, pm)
	}
	for i, r := range m.Rows {
		if r.ProjectID == pm.ProjectID && r.UserID == pm.UserID {
			m.Rows[i] = *pm
			return nil
		}
	}
	m.Rows = append(m.Rows, *pm)
	return nil
}

func (m *Members) ProjectMemberIDs(ctx context.Context, projectID string) ([]string, error) {
	if m.ProjectMemberIDsFn != nil {
		return m.ProjectMemberIDsFn(ctx, projectID)
	}
	var out []string
	for _, r := range m.Rows {
		if r.ProjectID == projectID {
			out = append(out, r.UserID)
		}
	}
	return out, nil
}

// Invalidator records invalidated actor ids.
type Invalidator struct {
	InvalidateFn func(ctx context.Context, actorID string) error

	mu      sync.Mutex
	Dropped []string
}

func (m *Invalidator) Invalidate(ctx context.Context, actorID string) error {
	m.mu.Lock()
	m.Dropped = append(m.Dropped, actorID)
	m.mu.Unlock()
	if m.InvalidateFn != nil {
		return m.InvalidateFn(ctx, actorID)
	}
	return nil
}
