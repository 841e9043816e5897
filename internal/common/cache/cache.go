// internal/common/cache/cache.go
package cache

import (
	"context"
	"fmt"
	"time"

	"evoting-client/internal/common/config"

	"github.com/redis/go-redis/v9"
)

// Client wraps the Redis client used for short-TTL caching of public
// election records. Vote status, ballots, and receipts never pass
// through here.
type Client struct {
	Client *redis.Client
	TTL    time.Duration
}

// New creates a Redis-backed cache client
func New(cfg config.CacheConfig) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	return &Client{Client: rdb, TTL: config.GetDuration(cfg.TTL)}, nil
}

// NewFromRedis wraps an existing *redis.Client (used by tests)
func NewFromRedis(rdb *redis.Client, ttl time.Duration) *Client {
	return &Client{Client: rdb, TTL: ttl}
}

// Ping tests the Redis connection
func (c *Client) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	if c.Client != nil {
		return c.Client.Close()
	}
	return nil
}

// Get retrieves a value by key
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	return c.Client.Get(ctx, key).Result()
}

// Set sets a value using the configured TTL
func (c *Client) Set(ctx context.Context, key string, value interface{}) error {
	return c.Client.Set(ctx, key, value, c.TTL).Err()
}

// Del deletes one or more keys
func (c *Client) Del(ctx context.Context, keys ...string) error {
	return c.Client.Del(ctx, keys...).Err()
}

// IsMiss reports whether err is a cache miss
func IsMiss(err error) bool {
	return err == redis.Nil
}
