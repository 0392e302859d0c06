// Package rediscache provides a Redis-backed seed cache for deployments that
// run several engine processes against one secret and pool.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/roach88/wordseed/internal/model"
	"github.com/roach88/wordseed/internal/seed"
)

// DefaultPrefix is prepended to every cache key.
const DefaultPrefix = "wordseed:seed:"

// Options configures a Cache.
type Options struct {
	// Addr is the Redis host:port.
	Addr string
	// TTL expires entries. Zero keeps them forever.
	TTL time.Duration
	// Prefix overrides DefaultPrefix.
	Prefix string
	// DialTimeout defaults to 5s.
	DialTimeout time.Duration
}

// Cache stores seeds as JSON strings, first write wins via SETNX.
//
// Thread-safety: Cache is safe for concurrent use.
type Cache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

var _ seed.Cache = (*Cache)(nil)

// New connects to Redis and verifies the connection with PING.
func New(ctx context.Context, opts Options) (*Cache, error) {
	addr := strings.TrimSpace(opts.Addr)
	if addr == "" {
		return nil, model.NewConfigurationError("rediscache.New", "redis address is required", nil)
	}
	dialTimeout := opts.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 5 * time.Second
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: dialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, model.NewConfigurationError("rediscache.New", fmt.Sprintf("redis ping %s", addr), err)
	}

	return NewWithClient(rdb, opts), nil
}

// NewWithClient wraps an existing client. Addr and DialTimeout are ignored.
func NewWithClient(rdb *redis.Client, opts Options) *Cache {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Cache{rdb: rdb, prefix: prefix, ttl: opts.TTL}
}

// Key returns the Redis key for a cache key.
func (c *Cache) Key(key string) string {
	return c.prefix + key
}

// Get returns the seed stored under key.
func (c *Cache) Get(ctx context.Context, key string) (model.DailySeed, bool, error) {
	raw, err := c.rdb.Get(ctx, c.Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.DailySeed{}, false, nil
	}
	if err != nil {
		return model.DailySeed{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	ds, err := decodeSeed(raw)
	if err != nil {
		return model.DailySeed{}, false, err
	}
	return ds, true, nil
}

// PutIfAbsent stores ds unless key exists and returns the stored value.
func (c *Cache) PutIfAbsent(ctx context.Context, key string, ds model.DailySeed) (model.DailySeed, error) {
	raw, err := encodeSeed(ds)
	if err != nil {
		return model.DailySeed{}, err
	}

	set, err := c.rdb.SetNX(ctx, c.Key(key), raw, c.ttl).Result()
	if err != nil {
		return model.DailySeed{}, fmt.Errorf("redis setnx %s: %w", key, err)
	}
	if set {
		return ds, nil
	}

	stored, ok, err := c.Get(ctx, key)
	if err != nil {
		return model.DailySeed{}, err
	}
	if !ok {
		// expired between SETNX and GET
		return ds, nil
	}
	return stored, nil
}

// Close closes the client.
func (c *Cache) Close() error {
	return c.rdb.Close()
}

func encodeSeed(ds model.DailySeed) ([]byte, error) {
	ds.CreatedAt = ds.CreatedAt.UTC()
	raw, err := json.Marshal(ds)
	if err != nil {
		return nil, fmt.Errorf("encode seed: %w", err)
	}
	return raw, nil
}

func decodeSeed(raw []byte) (model.DailySeed, error) {
	var ds model.DailySeed
	if err := json.Unmarshal(raw, &ds); err != nil {
		return model.DailySeed{}, fmt.Errorf("decode seed: %w", err)
	}
	return ds, nil
}
