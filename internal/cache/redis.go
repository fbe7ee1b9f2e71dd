package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/waveformlabs/track-recommender/internal/domain"
)

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

const keyPrefix = "rec:user:"

func buildKey(userID int64, limit int) string {
	return fmt.Sprintf("%s%d:limit:%d", keyPrefix, userID, limit)
}

func buildUserPattern(userID int64) string {
	return fmt.Sprintf("%s%d:limit:*", keyPrefix, userID)
}

// Get recommendations from cache
func (c *Cache) Get(ctx context.Context, userID int64, limit int) ([]domain.Recommendation, error) {
	key := buildKey(userID, limit)
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get recommendations from cache: %w", err)
	}

	var recs []domain.Recommendation
	if err := json.Unmarshal([]byte(val), &recs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recommendations %s: %w", key, err)
	}

	return recs, nil
}

// Store recommendations in cache
func (c *Cache) Set(ctx context.Context, userID int64, limit int, recs []domain.Recommendation) error {
	key := buildKey(userID, limit)
	val, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set recommendations in cache: %w", err)
	}

	return nil
}

// Clear user cache: used when a playback event changes the profile
func (c *Cache) ClearUserCache(ctx context.Context, userID int64) error {
	return c.clearPattern(ctx, buildUserPattern(userID))
}

// ClearAll drops every cached recommendation list: used when the
// catalog is reloaded so no stale tracks outlive the swap
func (c *Cache) ClearAll(ctx context.Context) error {
	return c.clearPattern(ctx, keyPrefix+"*")
}

func (c *Cache) clearPattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache delete %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

// Ping connectivity
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
