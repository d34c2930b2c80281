//go:build integration

package retention

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

// Run with: ISOGRAPH_MONGO_URI=mongodb://localhost:27017 go test -tags integration ./pkg/retention/
func newMongoStore(t *testing.T) *MongoStore {
	t.Helper()
	uri := os.Getenv("ISOGRAPH_MONGO_URI")
	if uri == "" {
		t.Skip("ISOGRAPH_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := NewMongoStore(ctx, MongoConfig{
		URI:        uri,
		Database:   "isograph_test",
		Collection: "retention_" + uuid.NewString()[:8],
	})
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	t.Cleanup(func() {
		s.coll.Drop(context.Background())
		s.Close()
	})
	return s
}

func TestMongoStore_Touch(t *testing.T) {
	ctx := context.Background()
	c := New(newMongoStore(t), 15)

	var evicted []string
	for i := 0; i < 16; i++ {
		ev, err := c.Touch(ctx, fmt.Sprintf("P%05d", i))
		if err != nil {
			t.Fatal(err)
		}
		evicted = append(evicted, ev...)
	}
	if len(evicted) != 1 || evicted[0] != "P00000" {
		t.Errorf("evicted = %v", evicted)
	}
}

func TestMongoStore_ConcurrentCAS(t *testing.T) {
	ctx := context.Background()
	c := New(newMongoStore(t), 50)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := c.Touch(ctx, fmt.Sprintf("id%d", i)); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	ids, err := c.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 10 {
		t.Errorf("len = %d, want 10 (lost update)", len(ids))
	}
}
