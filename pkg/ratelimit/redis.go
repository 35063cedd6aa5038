package ratelimit

import (
	"context"
	"fmt"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:"

// RedisStore shares limits across instances through Redis (GCRA)
type RedisStore struct {
	limiter *redis_rate.Limiter
	limit   redis_rate.Limit
}

// NewRedisStore creates a RedisStore on top of rdb
func NewRedisStore(rdb *redis.Client, limit Limit) *RedisStore {
	limit = limit.normalized()
	return &RedisStore{
		limiter: redis_rate.NewLimiter(rdb),
		limit: redis_rate.Limit{
			Rate:   limit.Requests,
			Burst:  limit.Requests,
			Period: limit.Window,
		},
	}
}

// Allow checks if the request is allowed
func (r *RedisStore) Allow(ctx context.Context, key string) (*Result, error) {
	res, err := r.limiter.Allow(ctx, redisKeyPrefix+key, r.limit)
	if err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}

	return &Result{
		Allowed:    res.Allowed > 0,
		Remaining:  res.Remaining,
		RetryAfter: res.RetryAfter,
	}, nil
}
