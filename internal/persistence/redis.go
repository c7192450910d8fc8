package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/abkoo/ticketdesk/internal/config"
)

// Redis wraps the go-redis client. It backs the short-TTL caches; the
// service degrades to direct queries when Redis is unreachable.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client}
}

// GetString fetches a cached value; a cache miss returns redis.Nil.
func (r *Redis) GetString(ctx context.Context, key string) (string, error) {
	if r == nil || r.Client == nil {
		return "", redis.Nil
	}
	return r.Client.Get(ctx, key).Result()
}

// SetString stores a value with a TTL.
func (r *Redis) SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	if r == nil || r.Client == nil {
		return nil
	}
	return r.Client.Set(ctx, key, value, ttl).Err()
}

// Delete removes keys, ignoring missing ones.
func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if r == nil || r.Client == nil {
		return nil
	}
	return r.Client.Del(ctx, keys...).Err()
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}
