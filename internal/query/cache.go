package query

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultTTL is how long a cached response stays fresh
const DefaultTTL = 30 * time.Second

// CoalesceWindow is the interval within which concurrent requests for the
// same key share a single backend call instead of each going out
const CoalesceWindow = 500 * time.Millisecond

// Loader fetches a fresh value for a cache key
type Loader func(ctx context.Context) (interface{}, error)

type entry struct {
	value     interface{}
	expiresAt time.Time
	version   uint64
}

type inflight struct {
	done    chan struct{}
	value   interface{}
	err     error
	started time.Time
	version uint64
}

// Cache is a keyed response cache for backend reads. Each key carries a
// version stamp that bumps on invalidation, so a fetch that was already in
// flight when the key was invalidated gets discarded instead of overwriting
// newer data.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]*entry
	inflight map[string]*inflight
	versions map[string]uint64
	ttl      time.Duration
	logger   *zap.Logger
}

// NewCache creates a cache with the given TTL. A non-positive TTL falls back
// to DefaultTTL.
func NewCache(ttl time.Duration, logger *zap.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries:  make(map[string]*entry),
		inflight: make(map[string]*inflight),
		versions: make(map[string]uint64),
		ttl:      ttl,
		logger:   logger,
	}
}

// Get returns the cached value for key, loading it on a miss. Concurrent
// callers within the coalesce window share one load. A load that finishes
// after its key was invalidated returns its value to the caller but is not
// stored.
func (c *Cache) Get(ctx context.Context, key string, load Loader) (interface{}, error) {
	c.mu.Lock()

	if e, ok := c.entries[key]; ok && time.Now().Before(e.expiresAt) {
		c.mu.Unlock()
		return e.value, nil
	}

	if f, ok := c.inflight[key]; ok && time.Since(f.started) < CoalesceWindow {
		c.mu.Unlock()
		select {
		case <-f.done:
			return f.value, f.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f := &inflight{
		done:    make(chan struct{}),
		started: time.Now(),
		version: c.versions[key],
	}
	c.inflight[key] = f
	c.mu.Unlock()

	value, err := load(ctx)

	c.mu.Lock()
	f.value = value
	f.err = err
	if c.inflight[key] == f {
		delete(c.inflight, key)
	}
	if err == nil {
		if c.versions[key] == f.version {
			c.entries[key] = &entry{
				value:     value,
				expiresAt: time.Now().Add(c.ttl),
				version:   f.version,
			}
		} else if c.logger != nil {
			c.logger.Debug("discarding stale cache fill", zap.String("key", key))
		}
	}
	c.mu.Unlock()
	close(f.done)

	return value, err
}

// Invalidate drops the entry for key and bumps its version so in-flight
// loads for the old version are discarded
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	c.versions[key]++
}

// InvalidatePrefix drops every entry whose key starts with prefix. Mutations
// call this with the resource prefix so all cached pages and filters of that
// resource refresh.
func (c *Cache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			c.versions[key]++
		}
	}
	// Keys with in-flight loads but no stored entry still need a bump
	for key := range c.inflight {
		if strings.HasPrefix(key, prefix) {
			c.versions[key]++
		}
	}
}

// Len reports the number of live entries, expired ones included
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
