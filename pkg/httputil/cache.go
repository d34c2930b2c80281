package httputil

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/matzehuels/isograph/pkg/cache"
	"github.com/matzehuels/isograph/pkg/observability"
)

// Cache stores JSON-marshalable values in a [cache.Cache] backend.
//
// Every entry is written with the Cache's TTL; expiry is enforced by the
// backend. A TTL of 0 means entries never expire.
//
// Use [Cache.Namespace] to create scoped views that automatically prefix
// keys, avoiding collisions between different endpoints:
//
//	search := c.Namespace("uniprot:search:")
//	search.Set(ctx, "TP53", ids)  // key becomes "uniprot:search:TP53"
type Cache struct {
	backend cache.Cache
	ttl     time.Duration
	prefix  string
}

// NewCache creates a Cache over backend with the given TTL. A nil backend
// disables caching.
func NewCache(backend cache.Cache, ttl time.Duration) *Cache {
	if backend == nil {
		backend = cache.NewNullCache()
	}
	return &Cache{backend: backend, ttl: ttl}
}

// Backend returns the underlying byte cache.
func (c *Cache) Backend() cache.Cache { return c.backend }

// TTL returns the time-to-live duration for cache entries.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get retrieves a cached value by key and unmarshals it into v.
//
// Return values indicate three distinct outcomes:
//   - (true, nil): Cache hit. The value was found and unmarshaled into v.
//   - (false, nil): Cache miss or expired entry. v is unchanged.
//   - (false, err): Backend or JSON failure. v may be partially modified.
func (c *Cache) Get(ctx context.Context, key string, v any) (bool, error) {
	data, ok, err := c.backend.Get(ctx, c.prefix+key)
	if err != nil {
		return false, err
	}
	if !ok {
		observability.Cache().OnCacheMiss(ctx, c.keyType())
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, err
	}
	observability.Cache().OnCacheHit(ctx, c.keyType())
	return true, nil
}

// Set stores a value in the cache under the given key, overwriting any
// existing entry and restarting its TTL.
func (c *Cache) Set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := c.backend.Set(ctx, c.prefix+key, data, c.ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, c.keyType(), len(data))
	return nil
}

// Namespace returns a new Cache that automatically prefixes all keys with
// prefix. The returned Cache shares the backend and TTL of its parent.
// Namespace calls can be chained.
func (c *Cache) Namespace(prefix string) *Cache {
	return &Cache{
		backend: c.backend,
		ttl:     c.ttl,
		prefix:  c.prefix + prefix,
	}
}

// keyType labels hook events with the outermost namespace.
func (c *Cache) keyType() string {
	if i := strings.Index(c.prefix, ":"); i > 0 {
		return c.prefix[:i]
	}
	return "default"
}
