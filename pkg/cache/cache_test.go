package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "http:uniprot:search:TP53", []byte(`["P04637"]`), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "http:uniprot:search:TP53")
	if err != nil || !hit {
		t.Fatalf("Get = %v, %v", hit, err)
	}
	if string(data) != `["P04637"]` {
		t.Errorf("data = %s", data)
	}

	if err := c.Delete(ctx, "http:uniprot:search:TP53"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "http:uniprot:search:TP53"); hit {
		t.Error("hit after Delete")
	}
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete(missing) = %v", err)
	}
}

func TestFileCache_Expired(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("expired entry: hit=%v err=%v", hit, err)
	}
}

func TestFileCache_CorruptIsMiss(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	path := c.path("k")
	os.MkdirAll(filepath.Dir(path), 0o755)
	os.WriteFile(path, []byte("garbage"), 0o644)

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit=%v err=%v", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCache_Clear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, _ := NewFileCache(dir)
	c.Set(ctx, "a", []byte("1"), 0)
	c.Set(ctx, "b", []byte("2"), 0)

	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("%d entries left after Clear", len(entries))
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("cache dir removed: %v", err)
	}
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	c := NewRedisCache(client, "")

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Fatalf("Get on empty = %v, %v", hit, err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if !mr.Exists(DefaultRedisPrefix + "k") {
		t.Error("key not stored under prefix")
	}
	data, hit, err := c.Get(ctx, "k")
	if !hit || err != nil || string(data) != "v" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}

	mr.FastForward(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry should expire with its TTL")
	}
}

func TestFileCache_Path(t *testing.T) {
	c := &FileCache{dir: "root"}
	p1 := c.path("http:uniprot:search:TP53")
	if p1 != c.path("http:uniprot:search:TP53") {
		t.Error("path should be deterministic")
	}
	if p1 == c.path("http:uniprot:search:BRCA1") {
		t.Error("different keys should map to different files")
	}

	rel, err := filepath.Rel("root", p1)
	if err != nil {
		t.Fatal(err)
	}
	dir, file := filepath.Split(rel)
	if len(dir) != 3 || len(file) != 62+len(".json") {
		t.Errorf("unexpected layout %q", rel)
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	if got := k.HTTPKey("uniprot:search", "TP53"); got != "http:uniprot:search:TP53" {
		t.Errorf("HTTPKey unexpected: %s", got)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "rest.uniprot.org:")
	if got := scoped.HTTPKey("uniprot:search", "TP53"); got != "rest.uniprot.org:http:uniprot:search:TP53" {
		t.Errorf("ScopedKeyer HTTPKey unexpected: %s", got)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.HTTPKey("test", "key")
	if key != "prefix:http:test:key" {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestRedisCache_Clear(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	c := NewRedisCache(client, "")

	for _, k := range []string{"a", "b", "c"} {
		c.Set(ctx, k, []byte(k), time.Minute)
	}
	mr.Set("unrelated", "keep")

	n, err := c.Clear(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d keys, want 3", n)
	}
	if !mr.Exists("unrelated") {
		t.Error("Clear removed a key outside the prefix")
	}
}
