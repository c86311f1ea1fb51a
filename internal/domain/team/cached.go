package team

import "context"

// ScopeStore is the cache side of CachedSource.
type ScopeStore interface {
	Get(ctx context.Context, actorID string) (Scope, bool, error)
	Set(ctx context.Context, actorID string, s Scope) error
}

// CachedSource reads through a ScopeStore. Cache errors fall back to the
// underlying source; they never fail a scope lookup.
type CachedSource struct {
	Source ScopeSource
	Cache  ScopeStore
}

func (c *CachedSource) FetchTeamScope(ctx context.Context, actorID string) (Scope, error) {
	if c.Cache != nil {
		if s, ok, err := c.Cache.Get(ctx, actorID); err == nil && ok {
			return s, nil
		}
	}
	s, err := c.Source.FetchTeamScope(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if c.Cache != nil {
		_ = c.Cache.Set(ctx, actorID, s)
	}
	return s, nil
}
