package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"casenotes/internal/notetype/models"
)

const legacyTypesKey = "casenotes:legacy-types"

// DefaultCacheTTL bounds how stale the cached legacy catalog may get.
const DefaultCacheTTL = 10 * time.Minute

// RedisCache caches the legacy type catalog as a single JSON value.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// Get returns the cached catalog. The boolean is false on a miss.
func (c *RedisCache) Get(ctx context.Context) ([]models.NoteType, bool, error) {
	raw, err := c.client.Get(ctx, legacyTypesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read legacy type cache: %w", err)
	}
	var types []models.NoteType
	if err := json.Unmarshal(raw, &types); err != nil {
		return nil, false, fmt.Errorf("decode legacy type cache: %w", err)
	}
	return types, true, nil
}

func (c *RedisCache) Set(ctx context.Context, types []models.NoteType) error {
	raw, err := json.Marshal(types)
	if err != nil {
		return fmt.Errorf("encode legacy type cache: %w", err)
	}
	if err := c.client.Set(ctx, legacyTypesKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("write legacy type cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached catalog.
func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, legacyTypesKey).Err()
}
