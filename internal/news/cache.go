package news

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "headliner:gnews:"

// ResponseCache stores raw upstream response bodies in Redis.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponseCache connects to redisURL. A value that is not a redis:// URL
// is treated as a plain host:port address.
func NewResponseCache(redisURL string, ttl time.Duration) (*ResponseCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}
	return NewResponseCacheWithClient(redis.NewClient(opt), ttl), nil
}

// NewResponseCacheWithClient wraps an existing client.
func NewResponseCacheWithClient(client *redis.Client, ttl time.Duration) *ResponseCache {
	return &ResponseCache{client: client, ttl: ttl}
}

// Ping checks connectivity.
func (c *ResponseCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("pinging redis: %w", err)
	}
	return nil
}

// Get returns the cached body for key. A miss returns ok == false with a nil
// error.
func (c *ResponseCache) Get(ctx context.Context, key string) (body []byte, ok bool, err error) {
	body, err = c.client.Get(ctx, cacheKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache key %q: %w", key, err)
	}
	return body, true, nil
}

// Set stores body under key with the configured TTL.
func (c *ResponseCache) Set(ctx context.Context, key string, body []byte) error {
	if err := c.client.Set(ctx, cacheKeyPrefix+key, body, c.ttl).Err(); err != nil {
		return fmt.Errorf("writing cache key %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying client.
func (c *ResponseCache) Close() error {
	return c.client.Close()
}

// queryCacheKey hashes the query parameters that identify a search. The API
// key and the sliding from/to window are not part of the key.
func queryCacheKey(params url.Values) string {
	q := url.Values{}
	for k, v := range params {
		switch k {
		case "apikey", "from", "to":
			continue
		}
		q[k] = v
	}
	sum := sha256.Sum256([]byte(q.Encode()))
	return fmt.Sprintf("%x", sum)
}
