// Package httputil provides HTTP utilities for remote service clients.
//
// # Overview
//
//   - [Cache]: typed JSON response caching over a pkg/cache backend
//   - [Retry]: automatic retry with exponential backoff
//
// # Caching
//
// [Cache] marshals values to JSON and stores them in any [cache.Cache]
// (file, Redis or null). Keys should be namespaced per endpoint:
//
//	c := httputil.NewCache(backend, 24*time.Hour).Namespace("uniprot:search:")
//	var ids []string
//	if ok, _ := c.Get(ctx, "TP53", &ids); !ok {
//	    ids = search("TP53")
//	    c.Set(ctx, "TP53", ids)
//	}
//
// # Retry
//
// [Retry] repeats an operation while it fails with a [RetryableError]:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    return fetch()
//	})
//
// Wrap network errors and 5xx responses in RetryableError; anything else is
// returned immediately.
//
// [cache.Cache]: github.com/matzehuels/isograph/pkg/cache.Cache
package httputil
