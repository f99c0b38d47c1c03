package tenant

import (
	"context"
	"sync"
	"time"
)

// Cache is the interface for tenant configuration caching implementations.
//
// A cache distinguishes three states per hostname: a positive entry (the
// resolved Config), a negative entry (the registry said no tenant owns the
// host), and a miss. Get reports negative entries as (nil, true) so callers
// can skip the registry without treating the host as resolvable.
type Cache interface {
	// Get retrieves the cached configuration for a hostname. A nil
	// config with ok=true is a cached negative resolution.
	Get(ctx context.Context, host string) (cfg *Config, ok bool)

	// Set stores a resolved configuration, replacing any existing entry
	// for the hostname unconditionally.
	Set(ctx context.Context, host string, cfg *Config, ttl time.Duration)

	// SetNegative records that no tenant owns the hostname. Negative
	// entries use a shorter TTL than successes so a newly registered
	// tenant becomes reachable quickly.
	SetNegative(ctx context.Context, host string, ttl time.Duration)

	// Delete removes the entry for a hostname, if any.
	Delete(ctx context.Context, host string)
}

type memoryEntry struct {
	cfg       *Config // nil for negative entries
	expiresAt time.Time
}

// memoryCache is the default process-lifetime cache: a mutex-guarded map
// keyed by hostname. There is no size cap; the key space is bounded by the
// number of active tenant hostnames one process serves. Revisit if a single
// deployment ever fronts a very large tenant population.
type memoryCache struct {
	mu    sync.RWMutex
	items map[string]memoryEntry
	now   func() time.Time
}

// NewMemoryCache creates an in-memory tenant cache. Expired entries are
// superseded on the next Set for the same hostname rather than actively
// evicted.
func NewMemoryCache() Cache {
	return &memoryCache{
		items: make(map[string]memoryEntry),
		now:   time.Now,
	}
}

// NewMemoryCacheWithClock creates an in-memory cache with an injectable
// clock for deterministic expiry tests.
func NewMemoryCacheWithClock(now func() time.Time) Cache {
	if now == nil {
		now = time.Now
	}
	return &memoryCache{
		items: make(map[string]memoryEntry),
		now:   now,
	}
}

func (c *memoryCache) Get(ctx context.Context, host string) (*Config, bool) {
	c.mu.RLock()
	entry, exists := c.items[host]
	c.mu.RUnlock()

	if !exists || c.now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.cfg, true
}

func (c *memoryCache) Set(ctx context.Context, host string, cfg *Config, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[host] = memoryEntry{
		cfg:       cfg,
		expiresAt: c.now().Add(ttl),
	}
}

func (c *memoryCache) SetNegative(ctx context.Context, host string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[host] = memoryEntry{
		cfg:       nil,
		expiresAt: c.now().Add(ttl),
	}
}

func (c *memoryCache) Delete(ctx context.Context, host string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, host)
}

// noopCache disables caching entirely; every Get is a miss.
type noopCache struct{}

// NewNoopCache returns a cache that never stores anything. Useful in tests
// or when every request should hit the registry.
func NewNoopCache() Cache { return noopCache{} }

func (noopCache) Get(ctx context.Context, host string) (*Config, bool)            { return nil, false }
func (noopCache) Set(ctx context.Context, host string, cfg *Config, ttl time.Duration) {}
func (noopCache) SetNegative(ctx context.Context, host string, ttl time.Duration)      {}
func (noopCache) Delete(ctx context.Context, host string)                              {}
