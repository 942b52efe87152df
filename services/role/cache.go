package role

import (
	"context"
	"time"

	"mendwell/utils"

	"github.com/go-redis/redis/v8"
)

// Cache is the read-through layer in front of the probe sequence. It is
// explicitly invalidated on sign-out rather than treated as an ambient
// global.
type Cache interface {
	Get(ctx context.Context, userID string) (Role, bool, error)
	Set(ctx context.Context, userID string, role Role) error
	Del(ctx context.Context, userID string) error
}

const cacheTTL = 12 * time.Hour

// RedisCache implements Cache on the dedicated role-cache Redis DB.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache wraps a Redis client as a role cache.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func cacheKey(userID string) string {
	return utils.RoleCachePrefix + userID
}

// Get returns the cached role, reporting whether one was present.
func (c *RedisCache) Get(ctx context.Context, userID string) (Role, bool, error) {
	val, err := c.client.Get(ctx, cacheKey(userID)).Result()
	if err == redis.Nil {
		return Unknown, false, nil
	}
	if err != nil {
		return Unknown, false, err
	}
	return Role(val), true, nil
}

// Set stores the role with a TTL.
func (c *RedisCache) Set(ctx context.Context, userID string, role Role) error {
	return c.client.Set(ctx, cacheKey(userID), string(role), cacheTTL).Err()
}

// Del drops the cached role.
func (c *RedisCache) Del(ctx context.Context, userID string) error {
	return c.client.Del(ctx, cacheKey(userID)).Err()
}
