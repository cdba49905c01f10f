package imageday

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores image metadata under its per-day key. A miss is reported
// as (nil, nil), not an error.
type Cache interface {
	Get(ctx context.Context, key string) (*Info, error)
	Set(ctx context.Context, key string, info Info) error
}

// CachedProvider wraps a Provider so the upstream image API is hit at
// most once per calendar day. Cache failures fall through to the
// upstream fetch rather than failing the request.
type CachedProvider struct {
	inner Provider
	cache Cache
}

func NewCachedProvider(inner Provider, cache Cache) *CachedProvider {
	return &CachedProvider{inner: inner, cache: cache}
}

// TodayFor returns the cached info for the given day, fetching and
// caching on a miss. The game core passes its own notion of "today" so
// clock handling stays in one place.
func (p *CachedProvider) TodayFor(ctx context.Context, day string) (Info, error) {
	if cached, err := p.cache.Get(ctx, day); err == nil && cached != nil {
		return *cached, nil
	}

	info, err := p.inner.Today(ctx)
	if err != nil {
		return Info{}, err
	}

	// Best effort: a failed cache write only costs an extra fetch later.
	_ = p.cache.Set(ctx, day, info)
	return info, nil
}

// MemCache is a process-local Cache for single-instance deployments and
// tests.
type MemCache struct {
	mu      sync.RWMutex
	entries map[string]Info
}

func NewMemCache() *MemCache {
	return &MemCache{entries: make(map[string]Info)}
}

func (c *MemCache) Get(_ context.Context, key string) (*Info, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if info, ok := c.entries[key]; ok {
		return &info, nil
	}
	return nil, nil
}

func (c *MemCache) Set(_ context.Context, key string, info Info) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = info
	return nil
}

// RedisCache keeps image metadata in Redis so restarts within the same
// day do not refetch.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client, ttl: 48 * time.Hour}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*Info, error) {
	data, err := c.client.Get(ctx, "imageday:"+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading image cache: %w", err)
	}

	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("decoding cached image metadata: %w", err)
	}
	return &info, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, info Info) error {
	data, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "imageday:"+key, data, c.ttl).Err()
}
