package teammock

import (
	"context"

	domain "worktrack-backend/internal/domain/team"
)

var _ domain.ScopeSource = (*Source)(nil)

// Source is a function-backed domain.ScopeSource. Unset, it returns Scope.
type Source struct {
	FetchTeamScopeFn func(ctx context.Context, actorID string) (domain.Scope, error)
	Scope            domain.Scope
	Calls            int
}

func (m *Source) FetchTeamScope(ctx context.Context, actorID string) (domain.Scope, error) {
	m.Calls++
	if m.FetchTeamScopeFn != nil {
		return m.FetchTeamScopeFn(ctx, actorID)
	}
	return m.Scope, nil
}
