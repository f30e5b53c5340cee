package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisProvider wraps the redis client used as a lookup cache (user display
// names for document listings). The application works without it; callers
// treat cache misses and redis errors the same way.
type RedisProvider struct {
	Client *redis.Client
	URL    string
	logger *zap.Logger
	ttl    time.Duration
}

func NewRedisProvider(redisURL string, logger *zap.Logger, ttl time.Duration) *RedisProvider {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		opts = &redis.Options{
			Addr: redisURL,
			DB:   0,
		}
	}

	client := redis.NewClient(opts)

	client.Options().MaxRetries = 3
	client.Options().MinRetryBackoff = 100 * time.Millisecond
	client.Options().MaxRetryBackoff = 500 * time.Millisecond

	provider := &RedisProvider{
		Client: client,
		URL:    redisURL,
		logger: logger,
		ttl:    ttl,
	}

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("Redis connection failed at startup", zap.Error(err))
	} else {
		logger.Info("Redis connected",
			zap.String("url", redisURL),
			zap.Duration("default_ttl", ttl),
		)
	}

	return provider
}

// SetWithDefaultTTL stores a value using the provider's default TTL when
// ttl is not positive.
func (r *RedisProvider) SetWithDefaultTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = r.ttl
	}
	return r.Client.Set(ctx, key, value, ttl).Err()
}

// Get returns the cached value, or "" and false on miss or error.
func (r *RedisProvider) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.Client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *RedisProvider) Del(ctx context.Context, keys ...string) error {
	return r.Client.Del(ctx, keys...).Err()
}
