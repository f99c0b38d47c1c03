package tenant

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// negativeSentinel marks a cached "no tenant owns this host" entry in Redis.
// It is not valid JSON for Config, so it can never collide with a real one.
const negativeSentinel = "!notfound"

// redisCache stores tenant configurations in Redis so that multiple gateway
// replicas share one resolution cache. Entries rely on Redis native TTL;
// any Redis error degrades to a cache miss so the registry remains the
// source of truth.
type redisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache creates a Redis-backed tenant cache. Keys are namespaced
// under the given prefix ("tenant" when empty).
func NewRedisCache(client *redis.Client, prefix string) Cache {
	if prefix == "" {
		prefix = "tenant"
	}
	return &redisCache{client: client, prefix: prefix}
}

func (c *redisCache) key(host string) string {
	return c.prefix + ":" + host
}

func (c *redisCache) Get(ctx context.Context, host string) (*Config, bool) {
	raw, err := c.client.Get(ctx, c.key(host)).Result()
	if err != nil {
		return nil, false
	}
	if raw == negativeSentinel {
		return nil, true
	}

	var cfg Config
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return nil, false
	}
	return &cfg, true
}

func (c *redisCache) Set(ctx context.Context, host string, cfg *Config, ttl time.Duration) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.key(host), raw, ttl).Err()
}

func (c *redisCache) SetNegative(ctx context.Context, host string, ttl time.Duration) {
	_ = c.client.Set(ctx, c.key(host), negativeSentinel, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, host string) {
	_ = c.client.Del(ctx, c.key(host)).Err()
}
