package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"feedback-prioritizer/internal/config"
)

const keyPrefix = "feedback:submit:"

// NewRedisClient connects and pings the configured server.
func NewRedisClient(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// RedisLimiter shares submission counters across API instances, counting in
// fixed windows that start at the first hit.
type RedisLimiter struct {
	client redis.Cmdable
	limit  int
	window time.Duration
}

func NewRedisLimiter(client redis.Cmdable, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, limit: limit, window: window}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	key = keyPrefix + key

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, l.window)
		return nil
	})
	if err != nil {
		return false, 0, fmt.Errorf("rate limit %s: %w", key, err)
	}

	if incr.Val() <= int64(l.limit) {
		return true, 0, nil
	}

	ttl, err := l.client.TTL(ctx, key).Result()
	if err != nil || ttl <= 0 {
		ttl = l.window
	}
	return false, ttl, nil
}

// NewFromConfig picks the submission limiter. A SUBMIT_RATE_LIMIT of zero or
// less disables it (nil Limiter), matching HTTP_RATE_LIMIT. The returned func
// releases the Redis client when one was opened.
func NewFromConfig(ctx context.Context, cfg config.Config) (Limiter, func(), error) {
	noop := func() {}
	if cfg.SubmitRateLimit <= 0 {
		return nil, noop, nil
	}
	if cfg.RedisAddr == "" {
		return NewLocalLimiter(cfg.SubmitRateLimit, cfg.SubmitRateWindow), noop, nil
	}
	rdb, err := NewRedisClient(ctx, cfg)
	if err != nil {
		return nil, noop, err
	}
	return NewRedisLimiter(rdb, cfg.SubmitRateLimit, cfg.SubmitRateWindow), func() { _ = rdb.Close() }, nil
}
