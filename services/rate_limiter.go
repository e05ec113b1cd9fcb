package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter is a fixed-window counter: first hit in a window creates
// the key with an expiry, every hit increments it, and the request is refused
// once the count exceeds the limit.
type RedisRateLimiter struct {
	client *redis.Client
	scope  string
	limit  int64
	window time.Duration
}

func NewRedisRateLimiter(client *redis.Client, scope string, limit int64, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		scope:  scope,
		limit:  limit,
		window: window,
	}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) error {
	redisKey := fmt.Sprintf("ratelimit:%s:%s", l.scope, key)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return fmt.Errorf("rate limiter unavailable: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return fmt.Errorf("rate limiter unavailable: %w", err)
		}
	}
	if count > l.limit {
		return ErrRateLimited
	}
	return nil
}

// NopRateLimiter never refuses. Used where a route carries no budget.
type NopRateLimiter struct{}

func (NopRateLimiter) Allow(ctx context.Context, key string) error { return nil }
