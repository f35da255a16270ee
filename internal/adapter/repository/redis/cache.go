// Package redis implements the best-effort cache layer for resolved links.
// Entries are lazily populated on read misses and proactively on writes; the
// write path invalidates synchronously before reporting success. The cache is
// never consulted for existence decisions, only for fast-path resolution.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/linksnip/linksnip/internal/entity"
	"github.com/redis/go-redis/v9"
)

const (
	linkKeyPrefix  = "link:"
	statsKeyPrefix = "stats:"

	defaultTTL = time.Hour
)

type LinkCache struct {
	client *redis.Client
	ttl    time.Duration
}

type Option func(*LinkCache)

// WithTTL overrides the default residency of cache entries. The effective TTL
// of an entry is still bounded by the link's own expiration time.
func WithTTL(ttl time.Duration) Option {
	return func(c *LinkCache) {
		c.ttl = ttl
	}
}

func NewLinkCache(client *redis.Client, opts ...Option) *LinkCache {
	c := &LinkCache{
		client: client,
		ttl:    defaultTTL,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func linkKey(shortCode string) string {
	return linkKeyPrefix + shortCode
}

func statsKey(shortCode string) string {
	return statsKeyPrefix + shortCode + ":count"
}

// Get returns the cached entry for the short code. It distinguishes a real
// miss (entity.ErrCacheMiss) from a backend failure: only misses tell the
// caller it is worth repopulating the cache after the store lookup.
func (c *LinkCache) Get(ctx context.Context, shortCode string) (*entity.CacheEntry, error) {
	const op = "adapter.repository.redis.LinkCache.Get"

	data, err := c.client.Get(ctx, linkKey(shortCode)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrCacheMiss)
		}

		return nil, fmt.Errorf("%s: failed to get cache entry: %w", op, err)
	}

	var entry entity.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		// A corrupt entry behaves like a miss so the store lookup repairs it.
		return nil, fmt.Errorf("%s: failed to decode cache entry: %w", op, entity.ErrCacheMiss)
	}

	return &entry, nil
}

// entryTTL clamps the configured TTL by the time left until the link expires.
// A zero result means the link is already expired and must not be cached.
func entryTTL(ttl time.Duration, expiresAt *time.Time, now time.Time) time.Duration {
	if expiresAt == nil {
		return ttl
	}

	untilExpiry := expiresAt.Sub(now)
	if untilExpiry <= 0 {
		return 0
	}
	if untilExpiry < ttl {
		return untilExpiry
	}

	return ttl
}

// Put stores the entry with a TTL of min(default ttl, time until expiration),
// so an entry never outlives its link's validity by more than clock skew.
// Links already past their expiration are not cached at all.
func (c *LinkCache) Put(ctx context.Context, shortCode, originalURL string, expiresAt *time.Time) error {
	const op = "adapter.repository.redis.LinkCache.Put"

	ttl := entryTTL(c.ttl, expiresAt, time.Now())
	if ttl == 0 {
		return nil
	}

	entry := entity.CacheEntry{
		OriginalURL: originalURL,
		ExpiresAt:   expiresAt,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("%s: failed to encode cache entry: %w", op, err)
	}

	if err := c.client.Set(ctx, linkKey(shortCode), data, ttl).Err(); err != nil {
		return fmt.Errorf("%s: failed to set cache entry: %w", op, err)
	}

	return nil
}

// Invalidate evicts the entry and its access counter. The write path calls
// this synchronously before returning success, bounding the staleness window
// for mutations.
func (c *LinkCache) Invalidate(ctx context.Context, shortCode string) error {
	const op = "adapter.repository.redis.LinkCache.Invalidate"

	if err := c.client.Del(ctx, linkKey(shortCode), statsKey(shortCode)).Err(); err != nil {
		return fmt.Errorf("%s: failed to invalidate cache entry: %w", op, err)
	}

	return nil
}

// IncrementAccess bumps the approximate per-code access counter. Many readers
// increment it concurrently without coordination; losing increments on a cache
// restart is acceptable since the store's counter stays authoritative.
func (c *LinkCache) IncrementAccess(ctx context.Context, shortCode string) error {
	const op = "adapter.repository.redis.LinkCache.IncrementAccess"

	if err := c.client.Incr(ctx, statsKey(shortCode)).Err(); err != nil {
		return fmt.Errorf("%s: failed to increment access counter: %w", op, err)
	}

	return nil
}
