// Package redis caches sanitized user snapshots so request and message
// listings can resolve participants without hitting the primary store.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/oksasatya/skillswap-api/internal/application"
)

const keyPrefix = "skillswap:user:"

// UserCache stores one JSON document per user under skillswap:user:<id>.
type UserCache struct {
	rdb *goredis.Client
	ttl time.Duration
}

func NewUserCache(rdb *goredis.Client, ttl time.Duration) *UserCache {
	return &UserCache{rdb: rdb, ttl: ttl}
}

func key(id string) string { return keyPrefix + id }

// GetMany fetches all ids with a single MGET. Misses are simply absent from the result.
func (c *UserCache) GetMany(ctx context.Context, ids []string) (map[string]application.PublicUser, error) {
	const op = "cache/redis/users.GetMany"

	out := make(map[string]application.PublicUser, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = key(id)
	}
	vals, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var u application.PublicUser
		if err := json.Unmarshal([]byte(s), &u); err != nil {
			// Unreadable entries count as misses and get rewritten.
			continue
		}
		out[ids[i]] = u
	}
	return out, nil
}

// SetMany writes all snapshots in one pipeline.
func (c *UserCache) SetMany(ctx context.Context, users []application.PublicUser) error {
	const op = "cache/redis/users.SetMany"

	if len(users) == 0 {
		return nil
	}
	pipe := c.rdb.Pipeline()
	for _, u := range users {
		b, err := json.Marshal(u)
		if err != nil {
			return fmt.Errorf("%s: marshal: %w", op, err)
		}
		pipe.Set(ctx, key(u.ID), b, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *UserCache) Invalidate(ctx context.Context, id string) error {
	if err := c.rdb.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("cache/redis/users.Invalidate: %w", err)
	}
	return nil
}

var _ application.UserSnapshotCache = (*UserCache)(nil)
