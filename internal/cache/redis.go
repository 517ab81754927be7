// Package cache wraps Redis for short-lived page caching. Roster and
// schedule pages are fetched once per school per cycle; caching them keeps
// repeated queries against the same school from hammering the site.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultPageTTL is how long a cached page stays valid.
const DefaultPageTTL = 15 * time.Minute

// RedisCache handles caching and fast state storage.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache connection.
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{client: client}, nil
}

// Close closes the Redis connection.
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// Client returns the underlying Redis client.
func (rc *RedisCache) Client() *redis.Client {
	return rc.client
}

// HealthCheck pings Redis to verify the connection.
func (rc *RedisCache) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// SetPage caches fetched page HTML under its URL.
func (rc *RedisCache) SetPage(ctx context.Context, url, html string, ttl time.Duration) error {
	return rc.client.Set(ctx, "page:"+url, html, ttl).Err()
}

// GetPage returns cached page HTML, or "" on a miss.
func (rc *RedisCache) GetPage(ctx context.Context, url string) (string, error) {
	html, err := rc.client.Get(ctx, "page:"+url).Result()
	if err == redis.Nil {
		return "", nil
	}
	return html, err
}

// Delete removes keys.
func (rc *RedisCache) Delete(ctx context.Context, keys ...string) error {
	return rc.client.Del(ctx, keys...).Err()
}
