// Package cache wraps redis as a best-effort key-value shadow of the store.
// A miss and an unreachable cache are distinct outcomes: Get reports presence
// explicitly and returns infrastructure errors on a separate channel so
// callers can fall through to the authoritative store.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds how stale a cached read can get. Entries are
// reconstructible from the store at any time.
const DefaultTTL = 30 * time.Minute

type Cache struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

// Get returns the value at key. present is false on a clean miss; err is
// non-nil only for infrastructure failures.
func (c *Cache) Get(ctx context.Context, key string) (value []byte, present bool, err error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}
