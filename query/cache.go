package query

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const defaultTTL = 30 * time.Second

// CacheMetrics carries the metric counter IDs the cache increments.
type CacheMetrics struct {
	Hit          int
	Miss         int
	Invalidation int
}

// Options configures a [Cache].
type Options struct {
	// TTL bounds how long an entry may be served. Zero means 30s.
	TTL time.Duration

	MetricInc func(id int)
	Metrics   CacheMetrics
}

type entry struct {
	value   any
	expires time.Time
}

// Cache is a TTL keyed read cache with per-key request coalescing. The zero
// value is not usable; construct with [New]. A nil *Cache is valid and
// disables caching entirely, so callers can wire it unconditionally.
type Cache struct {
	ttl   time.Duration
	group singleflight.Group

	mu      sync.Mutex
	entries map[string]entry

	metricInc func(int)
	metrics   CacheMetrics
}

// New returns an empty cache.
func New(opts Options) *Cache {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{
		ttl:       ttl,
		entries:   make(map[string]entry),
		metricInc: opts.MetricInc,
		metrics:   opts.Metrics,
	}
}

// Get returns the live entry for key, if any.
func (c *Cache) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expires) {
		delete(c.entries, key)
		c.inc(c.metrics.Miss)
		return nil, false
	}
	c.inc(c.metrics.Hit)
	return e.value, true
}

// Set stores value under key with the cache TTL.
func (c *Cache) Set(key string, value any) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, expires: time.Now().Add(c.ttl)}
}

// Invalidate removes a single key.
func (c *Cache) Invalidate(key string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		c.inc(c.metrics.Invalidation)
	}
}

// InvalidatePrefix removes every key sharing the prefix. Services call this
// after mutations so both collection and item entries drop together.
func (c *Cache) InvalidatePrefix(prefix string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			c.inc(c.metrics.Invalidation)
		}
	}
}

func (c *Cache) inc(id int) {
	if c.metricInc != nil {
		c.metricInc(id)
	}
}

// Fetch returns the cached value for key or runs fn to produce it, caching
// only successful results. Concurrent callers of the same key share one fn
// invocation. A nil cache always calls fn.
func Fetch[T any](ctx context.Context, c *Cache, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	if c == nil {
		return fn(ctx)
	}
	if v, ok := c.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		value, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(key, value)
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
