package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedItem struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })
	return NewCache(rc, time.Minute), mr
}

func TestCacheSetGet(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	var got cachedItem
	assert.False(t, c.GetJSON(ctx, "k", &got))

	c.SetJSON(ctx, "k", cachedItem{Name: "a", Count: 2})
	require.True(t, c.GetJSON(ctx, "k", &got))
	assert.Equal(t, cachedItem{Name: "a", Count: 2}, got)
	assert.Equal(t, time.Minute, mr.TTL("k"))
}

func TestCacheInvalidateByPrefix(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	c.SetJSON(ctx, "cache:posts:all", []int{1})
	c.SetJSON(ctx, "cache:posts:author:bob", []int{2})
	c.SetJSON(ctx, "cache:other", []int{3})

	c.InvalidateByPrefix(ctx, "cache:posts:")

	assert.False(t, mr.Exists("cache:posts:all"))
	assert.False(t, mr.Exists("cache:posts:author:bob"))
	assert.True(t, mr.Exists("cache:other"))
}

func TestCacheWithoutRedisIsNoop(t *testing.T) {
	ctx := context.Background()
	var nilCache *Cache
	for _, c := range []*Cache{nilCache, NewCache(nil, 0)} {
		c.SetJSON(ctx, "k", 1)
		var v int
		assert.False(t, c.GetJSON(ctx, "k", &v))
		c.InvalidateByPrefix(ctx, "k")
	}
}
