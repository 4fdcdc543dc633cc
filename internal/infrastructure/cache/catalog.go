package cache

import (
	"context"
	"encoding/json"
	"time"

	"lmsplatform/internal/domain"

	"github.com/redis/go-redis/v9"
)

const catalogPrefix = "catalog:list:"

// CatalogCache keeps filtered published-course lists. Per-user data
// (purchases, progress) is never stored here.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CatalogCache{client: client, ttl: ttl}
}

func (c *CatalogCache) Get(ctx context.Context, key string) ([]domain.Course, bool) {
	val, err := c.client.Get(ctx, catalogPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	var courses []domain.Course
	if err := json.Unmarshal(val, &courses); err != nil {
		return nil, false
	}
	return courses, true
}

func (c *CatalogCache) Set(ctx context.Context, key string, courses []domain.Course) error {
	data, err := json.Marshal(courses)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, catalogPrefix+key, data, c.ttl).Err()
}

// Invalidate drops every cached list.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	var keys []string
	iter := c.client.Scan(ctx, 0, catalogPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
