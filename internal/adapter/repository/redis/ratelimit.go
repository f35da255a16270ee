package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitKeyPrefix = "rate_limit:"

// RateLimiter counts requests per client in fixed windows backed by redis,
// so the budget is shared across service instances.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

func rateLimitKey(clientIP string) string {
	return rateLimitKeyPrefix + clientIP
}

// Allow reports whether the client may proceed. When the budget is exhausted
// it also returns how long the client should wait before retrying.
func (l *RateLimiter) Allow(ctx context.Context, clientIP string) (bool, time.Duration, error) {
	const op = "adapter.repository.redis.RateLimiter.Allow"

	key := rateLimitKey(clientIP)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("%s: failed to increment request counter: %w", op, err)
	}

	// The first hit opens the window; the counter and its expiry die together.
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, 0, fmt.Errorf("%s: failed to set window expiry: %w", op, err)
		}
	}

	if count > int64(l.limit) {
		retryAfter, err := l.client.TTL(ctx, key).Result()
		if err != nil || retryAfter <= 0 {
			retryAfter = l.window
		}

		return false, retryAfter, nil
	}

	return true, 0, nil
}
