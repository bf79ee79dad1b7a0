package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const contentTTL = 5 * time.Minute

// ContentCache caches description content for the read-heavy content
// endpoint. Implementations must be safe for concurrent use.
type ContentCache interface {
	GetContent(ctx context.Context, id string) (string, bool)
	SetContent(ctx context.Context, id string, content string)
	DeleteContent(ctx context.Context, id string)
}

// RedisContentCache is a Redis implementation of ContentCache
type RedisContentCache struct {
	client *redis.Client
}

// NewRedisContentCache creates a new RedisContentCache
func NewRedisContentCache(client *redis.Client) *RedisContentCache {
	return &RedisContentCache{client: client}
}

func contentKey(id string) string {
	return "description:content:" + id
}

// GetContent returns the cached content for a description id. Cache
// errors degrade to a miss; the store remains the source of truth.
func (c *RedisContentCache) GetContent(ctx context.Context, id string) (string, bool) {
	content, err := c.client.Get(ctx, contentKey(id)).Result()
	if err != nil {
		return "", false
	}
	return content, true
}

// SetContent stores the content for a description id with a TTL
func (c *RedisContentCache) SetContent(ctx context.Context, id string, content string) {
	c.client.Set(ctx, contentKey(id), content, contentTTL)
}

// DeleteContent invalidates the cached content for a description id
func (c *RedisContentCache) DeleteContent(ctx context.Context, id string) {
	c.client.Del(ctx, contentKey(id))
}
