package storage

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores signed URLs by cache key.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
}

type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (string, bool)         { return "", false }
func (NoopCache) Set(context.Context, string, string, time.Duration) {}

type cacheItem struct {
	value      string
	expiration int64
}

// DefaultCleanupInterval is the janitor period used when none is given.
const DefaultCleanupInterval = time.Minute

// MemoryCache is an in-process cache with a background janitor.
type MemoryCache struct {
	mu           sync.RWMutex
	items        map[string]cacheItem
	now          func() time.Time
	cleanupEvery time.Duration
	stop         chan struct{}
	once         sync.Once
}

// NewMemoryCache starts a cache that drops expired entries every
// cleanupEvery, or every DefaultCleanupInterval when cleanupEvery is not
// positive. Call Close to stop the janitor.
func NewMemoryCache(cleanupEvery time.Duration) *MemoryCache {
	if cleanupEvery <= 0 {
		cleanupEvery = DefaultCleanupInterval
	}
	c := &MemoryCache{
		items:        make(map[string]cacheItem),
		now:          time.Now,
		cleanupEvery: cleanupEvery,
		stop:         make(chan struct{}),
	}
	go c.cleanupExpired()
	return c
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, found := c.items[key]
	if !found || c.now().UnixNano() > item.expiration {
		return "", false
	}
	return item.value, true
}

func (c *MemoryCache) Set(_ context.Context, key, value string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = cacheItem{
		value:      value,
		expiration: c.now().Add(ttl).UnixNano(),
	}
}

func (c *MemoryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *MemoryCache) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(c.cleanupEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.deleteExpired()
		case <-c.stop:
			return
		}
	}
}

func (c *MemoryCache) deleteExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now().UnixNano()
	for key, item := range c.items {
		if now > item.expiration {
			delete(c.items, key)
		}
	}
}

// RedisCache shares signed URLs between processes.
type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	value, err := c.client.Get(ctx, c.prefix+key).Result()
	if err != nil {
		return "", false
	}
	return value, true
}

// Set is best-effort: a failed write only costs a re-sign later.
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	_ = c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}
