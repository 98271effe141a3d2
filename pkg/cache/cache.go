// Package cache holds short-lived copies of editor listings so repeated
// queries do not each cost a round trip through the command queue.
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/shaowenchen/unreal-mcp-server/pkg/metrics"
)

// Loader produces the value for a missing key
type Loader[V any] func(ctx context.Context) (V, error)

// Cache is an expiring LRU keyed by string. A zero TTL disables caching
// while still collapsing concurrent loads of the same key.
type Cache[V any] struct {
	ttl   time.Duration
	lru   *expirable.LRU[string, V]
	group singleflight.Group
}

// New creates a cache holding at most maxEntries values for ttl each
func New[V any](maxEntries int, ttl time.Duration) *Cache[V] {
	if maxEntries < 0 {
		maxEntries = 0
	}
	return &Cache[V]{
		ttl: ttl,
		lru: expirable.NewLRU[string, V](maxEntries, nil, ttl),
	}
}

// Get returns a cached value
func (c *Cache[V]) Get(key string) (V, bool) {
	if c.ttl <= 0 {
		var zero V
		return zero, false
	}
	return c.lru.Get(key)
}

// Set stores a value
func (c *Cache[V]) Set(key string, value V) {
	if c.ttl <= 0 {
		return
	}
	c.lru.Add(key, value)
}

// GetOrLoad returns the cached value for key or runs load once for all
// concurrent callers asking for the same key. Failed loads are not cached.
// The load is detached from the caller that started it, so one caller
// giving up does not fail the others; loaders bound their own duration.
func (c *Cache[V]) GetOrLoad(ctx context.Context, key string, load Loader[V]) (V, bool, error) {
	if value, ok := c.Get(key); ok {
		metrics.RecordCacheLookup(true)
		return value, true, nil
	}
	metrics.RecordCacheLookup(false)

	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		value, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		c.Set(key, value)
		return value, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			var zero V
			return zero, false, res.Err
		}
		return res.Val.(V), false, nil
	case <-ctx.Done():
		var zero V
		return zero, false, ctx.Err()
	}
}

// Invalidate removes a single key
func (c *Cache[V]) Invalidate(key string) {
	c.lru.Remove(key)
}

// InvalidatePrefix removes every key starting with prefix and returns how
// many entries were dropped
func (c *Cache[V]) InvalidatePrefix(prefix string) int {
	removed := 0
	for _, key := range c.lru.Keys() {
		if strings.HasPrefix(key, prefix) {
			if c.lru.Remove(key) {
				removed++
			}
		}
	}
	return removed
}

// Purge drops every entry
func (c *Cache[V]) Purge() {
	c.lru.Purge()
}

// Len returns the number of live entries
func (c *Cache[V]) Len() int {
	return c.lru.Len()
}
