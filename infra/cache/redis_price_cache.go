package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/brokerage/pkg/price"
	"github.com/redis/go-redis/v9"
)

// RedisPriceCache stores resolved prices as JSON in redis. It backs the
// historical price path, where values are immutable per day and safe to
// share between processes.
type RedisPriceCache struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// NewRedisPriceCache creates a redis price cache from client options.
func NewRedisPriceCache(opt *redis.Options, prefix string, logger *slog.Logger) *RedisPriceCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisPriceCache{client: redis.NewClient(opt), prefix: prefix, logger: logger}
}

func (r *RedisPriceCache) key(key string) string {
	return r.prefix + key
}

// Get returns the cached price for the key, or nil on a miss.
func (r *RedisPriceCache) Get(ctx context.Context, key string) (*price.Price, error) {
	val, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		r.logger.Debug("redis cache miss", "key", key)
		return nil, nil
	}
	if err != nil {
		r.logger.Error("redis cache get failed", "key", key, "error", err)
		return nil, err
	}

	var p price.Price
	if err := json.Unmarshal([]byte(val), &p); err != nil {
		r.logger.Error("redis cache unmarshal failed", "key", key, "error", err)
		return nil, err
	}
	return &p, nil
}

// Set stores the price under the key with a TTL.
func (r *RedisPriceCache) Set(ctx context.Context, key string, p price.Price, ttl time.Duration) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(key), data, ttl).Err()
}
