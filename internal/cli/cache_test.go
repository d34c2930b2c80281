package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/isograph/pkg/config"
)

func TestCacheDir(t *testing.T) {
	cfg := config.Default()
	dir, err := cacheDir(cfg)
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if filepath.Base(dir) != "isograph" {
		t.Errorf("cacheDir() = %q, should end with 'isograph'", dir)
	}
}

func TestCacheDirConfigured(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Dir = "/tmp/isograph-http"

	dir, err := cacheDir(cfg)
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != "/tmp/isograph-http" {
		t.Errorf("cacheDir() = %q, want configured dir", dir)
	}
}

func TestClearCache(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "entry.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	c := newTestCLI(t)
	c.cfg.Cache.Dir = dir
	if err := c.clearCache(t.Context()); err != nil {
		t.Fatalf("clearCache: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir has %d entries after clear", len(entries))
	}
}

func TestClearCacheDisabled(t *testing.T) {
	c := newTestCLI(t)
	c.cfg.Cache.Backend = config.BackendNone
	if err := c.clearCache(t.Context()); err != nil {
		t.Fatalf("clearCache: %v", err)
	}
}
