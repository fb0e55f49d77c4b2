package utils

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultCacheTTL = time.Hour

// Cache stores JSON documents in Redis. A Cache without a client (or a nil *Cache) is a no-op,
// so callers never branch on whether Redis is configured.
type Cache struct {
	rc  *redis.Client
	ttl time.Duration
}

// NewCache wraps rc. ttl <= 0 falls back to one hour.
func NewCache(rc *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{rc: rc, ttl: ttl}
}

func (c *Cache) enabled() bool {
	return c != nil && c.rc != nil
}

// GetJSON decodes the cached value for key into v. It reports false on miss or any error.
func (c *Cache) GetJSON(ctx context.Context, key string, v interface{}) bool {
	if !c.enabled() {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	b, err := c.rc.Get(ctx, key).Bytes()
	if err != nil {
		Sugar.Debugf("cache get miss key=%s err=%v", key, err)
		return false
	}
	if err := json.Unmarshal(b, v); err != nil {
		Sugar.Warnf("cache decode failed key=%s err=%v", key, err)
		return false
	}
	return true
}

// SetJSON marshals v and stores it under key with the cache TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, v interface{}) {
	if !c.enabled() {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := c.rc.Set(ctx, key, b, c.ttl).Err(); err != nil {
		Sugar.Warnf("cache set failed key=%s err=%v", key, err)
	}
}

// InvalidateByPrefix deletes keys that match the given prefix using SCAN.
func (c *Cache) InvalidateByPrefix(ctx context.Context, prefix string) {
	if !c.enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var cursor uint64
	for i := 0; i < 10; i++ { // limit rounds to avoid long loops
		keys, cur, err := c.rc.Scan(ctx, cursor, prefix+"*", 1000).Result()
		if err != nil {
			Sugar.Warnf("cache invalidate scan failed prefix=%s err=%v", prefix, err)
			return
		}
		cursor = cur
		if len(keys) > 0 {
			pipe := c.rc.Pipeline()
			for _, k := range keys {
				pipe.Del(ctx, k)
			}
			_, _ = pipe.Exec(ctx)
		}
		if cursor == 0 {
			return
		}
	}
}
