package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/example/casino-admin/internal/logging"
)

// ErrCacheMiss is returned by Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Cache abstracts the Redis operations used by the use case to make testing easier.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
}

// RedisCache is a concrete implementation backed by go-redis.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache constructs a new Redis-backed cache adapter.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Set writes a value to Redis.
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.client.Set(ctx, key, value, expiration).Err()
}

// Get retrieves a cached value from Redis.
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return value, err
}

// NoopCache never stores anything.
type NoopCache struct{}

func (NoopCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (NoopCache) Get(context.Context, string) (string, error) { return "", ErrCacheMiss }

func dashboardKey(name string) string {
	return "dashboard:" + name
}

// cachedDashboard serves name from the cache when possible and stores a fresh
// result otherwise. Cache failures only cost a recomputation.
func cachedDashboard[T any](ctx context.Context, uc *AdminUseCase, name string, compute func(context.Context) (T, error)) (T, error) {
	if uc.cacheTTL <= 0 {
		return compute(ctx)
	}
	key := dashboardKey(name)
	opLogger := uc.logger.With(zap.String("cache_key", key))

	raw, err := uc.cache.Get(ctx, key)
	switch {
	case err == nil:
		var hit T
		jsonErr := json.Unmarshal([]byte(raw), &hit)
		if jsonErr == nil {
			return hit, nil
		}
		opLogger.Warn("discarding unreadable cache entry", zap.Error(jsonErr))
	case !errors.Is(err, ErrCacheMiss):
		opLogger.Warn("cache get failed", zap.Error(err))
	}

	result, err := compute(ctx)
	if err != nil {
		return result, err
	}
	serialized, err := json.Marshal(result)
	if err != nil {
		opLogger.Warn("failed to serialize dashboard", zap.Error(err))
		return result, nil
	}
	if err := uc.cache.Set(ctx, key, serialized, uc.cacheTTL); err != nil {
		opLogger.Warn("cache set failed", zap.Error(err))
	}
	return result, nil
}

// RetryCache retries transient failures of the wrapped cache with
// exponential backoff. Misses and other errors return immediately.
type RetryCache struct {
	next           Cache
	attempts       int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *zap.Logger
}

// NewRetryCache wraps next. attempts <= 1 disables retrying.
func NewRetryCache(next Cache, attempts int, initialBackoff, maxBackoff time.Duration, logger *zap.Logger) *RetryCache {
	return &RetryCache{
		next:           next,
		attempts:       attempts,
		initialBackoff: initialBackoff,
		maxBackoff:     maxBackoff,
		logger:         logger.Named("cache"),
	}
}

func (c *RetryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.withRetry(ctx, "cache.set", key, func() error {
		return c.next.Set(ctx, key, value, expiration)
	})
}

func (c *RetryCache) Get(ctx context.Context, key string) (string, error) {
	var result string
	err := c.withRetry(ctx, "cache.get", key, func() error {
		value, err := c.next.Get(ctx, key)
		if err != nil {
			return err
		}
		result = value
		return nil
	})
	return result, err
}

func (c *RetryCache) withRetry(ctx context.Context, operation, key string, fn func() error) error {
	opLogger := c.logger.With(zap.String("operation", operation), zap.String("cache_key", key))
	backoff := c.initialBackoff
	var err error
	for attempt := 0; attempt < max(c.attempts, 1); attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return logging.NewOperationError(operation, "", ctx.Err())
			case <-time.After(backoff):
			}
			if next := backoff * 2; next <= c.maxBackoff {
				backoff = next
			}
		}

		err = fn()
		if err == nil {
			if attempt > 0 {
				opLogger.Info("cache operation succeeded after retry", zap.Int("attempt", attempt+1))
			}
			return nil
		}
		if errors.Is(err, ErrCacheMiss) {
			return err
		}
		if !isTransientError(err) || attempt >= c.attempts-1 {
			break
		}
		opLogger.Warn("transient cache error", zap.Error(err), zap.Int("attempt", attempt+1))
	}
	return logging.NewOperationError(operation, "", err)
}

func isTransientError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var temporary interface{ Temporary() bool }
	return errors.As(err, &temporary) && temporary.Temporary()
}
