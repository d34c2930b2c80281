//go:build integration

package uniprot

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestSearch_Integration(t *testing.T) {
	client := NewClient(nil, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ids, err := client.Search(ctx, "P53_HUMAN", true)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(ids) == 0 || ids[0] != "P04637" {
		t.Errorf("Search(P53_HUMAN) = %v, want [P04637]", ids)
	}
}

func TestDownload_Integration(t *testing.T) {
	client := NewClient(nil, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var buf bytes.Buffer
	if err := client.Download(ctx, "P04637", &buf); err != nil {
		t.Fatalf("Download() error: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("P53_HUMAN")) {
		t.Error("entry does not mention P53_HUMAN")
	}
}
