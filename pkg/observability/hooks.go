// Package observability provides hooks for metrics and tracing.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. The CLI registers hooks at
// startup; libraries emit events about conversions, retention bookkeeping,
// identifier resolution, cache use and outgoing HTTP calls.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// A Prometheus implementation lives in the prom subpackage.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    m := prom.New()
//	    observability.SetPipelineHooks(m)
//	    observability.SetRetentionHooks(m)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnParseStart(ctx, path)
//	// ... parse ...
//	observability.Pipeline().OnParseComplete(ctx, path, nodes, edges, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the conversion pipeline.
type PipelineHooks interface {
	// Parse events
	OnParseStart(ctx context.Context, path string)
	OnParseComplete(ctx context.Context, path string, nodeCount, edgeCount int, duration time.Duration, err error)

	// Write events
	OnWriteStart(ctx context.Context, dir string)
	OnWriteComplete(ctx context.Context, dir string, duration time.Duration, err error)
}

// =============================================================================
// Retention Hooks
// =============================================================================

// RetentionHooks receives events from the retention ledger.
type RetentionHooks interface {
	// OnTouch records a ledger update. size is the ledger length afterwards.
	OnTouch(ctx context.Context, id string, size int, evicted []string, duration time.Duration, err error)

	// OnEvict records the removal of an evicted artifact's backing files.
	OnEvict(ctx context.Context, id string, err error)
}

// =============================================================================
// Resolver Hooks
// =============================================================================

// ResolverHooks receives events from protein identifier resolution.
type ResolverHooks interface {
	// OnResolve records a resolution. remote is false for tokens that were
	// already canonical.
	OnResolve(ctx context.Context, token string, remote bool, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnParseStart(context.Context, string)                                    {}
func (NoopPipelineHooks) OnParseComplete(context.Context, string, int, int, time.Duration, error) {}
func (NoopPipelineHooks) OnWriteStart(context.Context, string)                                    {}
func (NoopPipelineHooks) OnWriteComplete(context.Context, string, time.Duration, error)           {}

// NoopRetentionHooks is a no-op implementation of RetentionHooks.
type NoopRetentionHooks struct{}

func (NoopRetentionHooks) OnTouch(context.Context, string, int, []string, time.Duration, error) {}
func (NoopRetentionHooks) OnEvict(context.Context, string, error)                               {}

// NoopResolverHooks is a no-op implementation of ResolverHooks.
type NoopResolverHooks struct{}

func (NoopResolverHooks) OnResolve(context.Context, string, bool, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks  PipelineHooks  = NoopPipelineHooks{}
	retentionHooks RetentionHooks = NoopRetentionHooks{}
	resolverHooks  ResolverHooks  = NoopResolverHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	httpHooks      HTTPHooks      = NoopHTTPHooks{}
	hooksMu        sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any conversion.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetRetentionHooks registers custom retention hooks.
func SetRetentionHooks(h RetentionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		retentionHooks = h
	}
}

// SetResolverHooks registers custom resolver hooks.
func SetResolverHooks(h ResolverHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		resolverHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Retention returns the registered retention hooks.
func Retention() RetentionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return retentionHooks
}

// Resolver returns the registered resolver hooks.
func Resolver() ResolverHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return resolverHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	retentionHooks = NoopRetentionHooks{}
	resolverHooks = NoopResolverHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
