package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// CacheOptions represents options for cache operations
type CacheOptions struct {
	// TTL is used when CacheName has no configured TTL
	TTL          time.Duration
	Serializer   func(any) ([]byte, error)
	Deserializer func([]byte, any) error
	// CacheName prefixes keys and selects the TTL from the client Config
	CacheName string
}

// NewCacheOptions creates a new cache options with default values
func NewCacheOptions() *CacheOptions {
	return &CacheOptions{
		TTL:          10 * time.Minute,
		Serializer:   json.Marshal,
		Deserializer: json.Unmarshal,
	}
}

func (co *CacheOptions) WithTTL(ttl time.Duration) *CacheOptions {
	co.TTL = ttl
	return co
}

func (co *CacheOptions) WithCacheName(cacheName string) *CacheOptions {
	co.CacheName = cacheName
	return co
}

// Cache provides JSON caching over a Client
type Cache struct {
	client *Client
	opts   *CacheOptions
}

// NewCache creates a new cache instance
func NewCache(client *Client, opts *CacheOptions) *Cache {
	if opts == nil {
		opts = NewCacheOptions()
	}
	return &Cache{
		client: client,
		opts:   opts,
	}
}

// TTL returns the expiration applied on Set.
func (c *Cache) TTL() time.Duration {
	if c.opts.CacheName != "" {
		if ttl, ok := c.client.config.CacheTTLs[c.opts.CacheName]; ok {
			return ttl
		}
		if c.client.config.DefaultCacheTTL > 0 {
			return c.client.config.DefaultCacheTTL
		}
	}
	return c.opts.TTL
}

// buildCacheKey constructs the full cache key using CacheName::key format
func (c *Cache) buildCacheKey(key string) string {
	if c.opts.CacheName != "" {
		return c.opts.CacheName + "::" + key
	}
	return key
}

// Get loads key into dest. A miss yields ErrNotFound.
func (c *Cache) Get(ctx context.Context, key string, dest any) error {
	data, err := c.client.GetBytes(ctx, c.buildCacheKey(key))
	if err != nil {
		return err
	}

	return c.opts.Deserializer(data, dest)
}

// Set stores value under key with the cache TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	data, err := c.opts.Serializer(value)
	if err != nil {
		return fmt.Errorf("failed to serialize value: %w", err)
	}

	return c.client.Set(ctx, c.buildCacheKey(key), data, c.TTL())
}

// Delete removes a value from cache
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Delete(ctx, c.buildCacheKey(key))
}
