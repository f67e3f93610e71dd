// Package cache is a small read-through cache for the public page data
// (ticket types, venues, reviews) so anonymous traffic does not hit the
// backend on every load. Entries are JSON blobs with a short TTL.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"etiket-museum/internal/logger"
)

const (
	KeyTickets = "page:tickets"
	KeyVenues  = "page:venues"
	KeyReviews = "page:reviews"
)

// Cache wraps a Redis client. A nil client disables caching entirely;
// Get then always misses and Set is a no-op.
type Cache struct {
	Client *redis.Client
	TTL    time.Duration
	Logger *logger.Logger
}

func New(client *redis.Client, ttl time.Duration, log *logger.Logger) *Cache {
	return &Cache{Client: client, TTL: ttl, Logger: log}
}

// Get loads a cached value into out. Returns false on a miss or when the
// cache is disabled; cache errors degrade to a miss, never to a failure.
func (c *Cache) Get(ctx context.Context, key string, out interface{}) bool {
	if c == nil || c.Client == nil {
		return false
	}

	data, err := c.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.Logger.Warn("CACHE", fmt.Sprintf("get %s failed: %v", key, err))
		return false
	}

	if err := json.Unmarshal([]byte(data), out); err != nil {
		c.Logger.Warn("CACHE", fmt.Sprintf("corrupt entry %s: %v", key, err))
		return false
	}
	return true
}

// Set stores a value with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.Client == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		c.Logger.Warn("CACHE", fmt.Sprintf("marshal %s failed: %v", key, err))
		return
	}
	if err := c.Client.Set(ctx, key, data, c.TTL).Err(); err != nil {
		c.Logger.Warn("CACHE", fmt.Sprintf("set %s failed: %v", key, err))
	}
}

// Invalidate drops entries after an admin mutation so the public pages
// pick up the change on the next load.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.Client == nil || len(keys) == 0 {
		return
	}
	if err := c.Client.Del(ctx, keys...).Err(); err != nil {
		c.Logger.Warn("CACHE", fmt.Sprintf("invalidate failed: %v", err))
	}
}
