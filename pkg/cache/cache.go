// Package cache provides byte-level storage for cached remote responses.
//
// Backends:
//   - [FileCache]: one file per entry under a cache directory (CLI default)
//   - [RedisCache]: shared cache for several machines
//   - [NullCache]: never stores anything (caching disabled, tests)
//
// Keys are built with a [Keyer] so that every integration shares one naming
// scheme. Typed JSON access on top of a Cache lives in pkg/httputil.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque values under string keys.
type Cache interface {
	// Get returns the value for key. ok is false on a miss or an expired
	// entry; err is reserved for backend failures.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// NullCache misses on every Get and drops every Set. It backs --no-cache and
// the "none" cache backend.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
