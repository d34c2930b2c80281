package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnParseStart(ctx, "data/P04637.graphml")
	p.OnParseComplete(ctx, "data/P04637.graphml", 12, 15, time.Second, nil)
	p.OnWriteStart(ctx, "generated")
	p.OnWriteComplete(ctx, "generated", time.Second, nil)

	// Retention hooks
	r := NoopRetentionHooks{}
	r.OnTouch(ctx, "P04637", 15, []string{"Q9Y6K9"}, time.Millisecond, nil)
	r.OnEvict(ctx, "Q9Y6K9", nil)

	// Resolver hooks
	NoopResolverHooks{}.OnResolve(ctx, "TP53_HUMAN", true, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "uniprot")
	c.OnCacheMiss(ctx, "uniprot")
	c.OnCacheSet(ctx, "uniprot", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "rest.uniprot.org", "/uniprotkb/search")
	h.OnResponse(ctx, "GET", "rest.uniprot.org", "/uniprotkb/search", 200, time.Second)
	h.OnError(ctx, "GET", "rest.uniprot.org", "/uniprotkb/search", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Retention().(NoopRetentionHooks); !ok {
		t.Error("Retention() should return NoopRetentionHooks by default")
	}
	if _, ok := Resolver().(NoopResolverHooks); !ok {
		t.Error("Resolver() should return NoopResolverHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customRetention := &testRetentionHooks{}
	SetRetentionHooks(customRetention)
	if Retention() != customRetention {
		t.Error("SetRetentionHooks should set custom hooks")
	}

	customResolver := &testResolverHooks{}
	SetResolverHooks(customResolver)
	if Resolver() != customResolver {
		t.Error("SetResolverHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
	if _, ok := Retention().(NoopRetentionHooks); !ok {
		t.Error("Reset() should restore NoopRetentionHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)

	// Setting nil should be ignored
	SetPipelineHooks(nil)
	SetRetentionHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
	if _, ok := Retention().(NoopRetentionHooks); !ok {
		t.Error("SetRetentionHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testPipelineHooks struct{ NoopPipelineHooks }
type testRetentionHooks struct{ NoopRetentionHooks }
type testResolverHooks struct{ NoopResolverHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
