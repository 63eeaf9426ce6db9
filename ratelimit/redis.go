package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "scoutlens:ratelimit:"

// RedisLimiter shares the windows between instances. A window starts with the
// first request of a client and the key expires when it ends.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	length time.Duration
}

// NewRedis connects to the redis server at url, e.g. redis://localhost:6379/0.
func NewRedis(ctx context.Context, url string, limit int, length time.Duration) (*RedisLimiter, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("error parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}

	return &RedisLimiter{client: client, limit: limit, length: length}, nil
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := keyPrefix + key

	pipe := l.client.TxPipeline()
	count := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, l.length)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("error counting request: %w", err)
	}

	return count.Val() <= int64(l.limit), nil
}

func (l *RedisLimiter) Close() error {
	return l.client.Close()
}
