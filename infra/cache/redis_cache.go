package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/finlabs/pkg/repository"
	"github.com/redis/go-redis/v9"
)

// RedisGuard implements repository.Guard with SET NX EX, so it deduplicates
// across concurrent Lambda containers.
type RedisGuard struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisGuard(client *redis.Client, prefix string, ttl time.Duration, logger *slog.Logger) *RedisGuard {
	if ttl <= 0 {
		ttl = repository.GuardTTL
	}
	return &RedisGuard{client: client, prefix: prefix + "seen:", ttl: ttl, logger: logger}
}

func (g *RedisGuard) Seen(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.prefix+key, time.Now().Unix(), g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis guard: %w", err)
	}
	if !ok {
		g.logger.Debug("Redis guard hit", "key", key)
	}
	return !ok, nil
}

func (g *RedisGuard) Forget(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, g.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis guard: %w", err)
	}
	return nil
}

// NewRedisClient builds a client from a redis:// URL and pool settings.
func NewRedisClient(url string, poolSize int, dial, read, write time.Duration) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	opt.PoolSize = poolSize
	opt.DialTimeout = dial
	opt.ReadTimeout = read
	opt.WriteTimeout = write
	return redis.NewClient(opt), nil
}

var _ repository.Guard = (*RedisGuard)(nil)
