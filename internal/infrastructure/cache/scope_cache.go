package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"worktrack-backend/internal/domain/team"

	"github.com/redis/go-redis/v9"
)

// ScopeCache stores team scopes per actor with a TTL. It is an explicit
// handle; callers that do not pass one simply go to the store every time.
type ScopeCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

func NewScopeCache(rdb *redis.Client, ttl time.Duration) *ScopeCache {
	return &ScopeCache{rdb: rdb, ttl: ttl, prefix: "scope:"}
}

func (c *ScopeCache) key(actorID string) string { return c.prefix + actorID }

// Get reports ok=false on a miss.
func (c *ScopeCache) Get(ctx context.Context, actorID string) (team.Scope, bool, error) {
	raw, err := c.rdb.Get(ctx, c.key(actorID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var s team.Scope
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false, err
	}
	return s, true, nil
}

func (c *ScopeCache) Set(ctx context.Context, actorID string, s team.Scope) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key(actorID), payload, c.ttl).Err()
}

func (c *ScopeCache) Invalidate(ctx context.Context, actorID string) error {
	return c.rdb.Del(ctx, c.key(actorID)).Err()
}
