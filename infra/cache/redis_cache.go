package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/stockfolio/server/pkg/domain/stock"
)

// RedisQuoteCache implements QuoteCache using Redis.
type RedisQuoteCache struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// NewRedisQuoteCacheWithOptions creates a RedisQuoteCache from
// redis.Options.
func NewRedisQuoteCacheWithOptions(
	opt *redis.Options,
	prefix string,
	logger *slog.Logger,
) *RedisQuoteCache {
	client := redis.NewClient(opt)
	return &RedisQuoteCache{client: client, prefix: prefix, logger: logger}
}

func (r *RedisQuoteCache) key(key string) string {
	return r.prefix + key
}

func (r *RedisQuoteCache) Get(ctx context.Context, key string) (*stock.Candle, error) {
	val, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		r.logger.Debug("Redis quote cache miss", "key", key)
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Redis quote cache get error", "key", key, "error", err)
		return nil, err
	}
	var c stock.Candle
	if err := json.Unmarshal([]byte(val), &c); err != nil {
		r.logger.Error("Redis quote cache unmarshal error", "key", key, "error", err)
		return nil, err
	}
	return &c, nil
}

func (r *RedisQuoteCache) Set(
	ctx context.Context,
	key string,
	c *stock.Candle,
	ttl time.Duration,
) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(key), data, ttl).Err(); err != nil {
		r.logger.Error("Redis quote cache set error", "key", key, "error", err)
		return err
	}
	r.logger.Debug("Redis quote cache set", "key", key, "ttl", ttl)
	return nil
}

func (r *RedisQuoteCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		r.logger.Error("Redis quote cache delete error", "key", key, "error", err)
		return err
	}
	return nil
}
