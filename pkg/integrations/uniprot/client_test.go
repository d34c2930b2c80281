package uniprot

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/isograph/pkg/cache"
	"github.com/matzehuels/isograph/pkg/integrations"
)

func testClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewClientWithBaseURL(server.URL, fc, time.Hour,
		integrations.WithHTTPClient(server.Client()),
		integrations.WithRetryDelay(time.Millisecond),
	)
}

func TestClient_Search(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/uniprotkb/search" {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		if q.Get("query") != "TP53_HUMAN" || q.Get("fields") != "accession" || q.Get("format") != "json" || q.Get("size") != "1" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"results":[{"entryType":"UniProtKB reviewed (Swiss-Prot)","primaryAccession":"P04637"}]}`))
	}))
	defer server.Close()

	c := testClient(t, server)
	ctx := context.Background()

	ids, err := c.Search(ctx, "TP53_HUMAN", false)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(ids) != 1 || ids[0] != "P04637" {
		t.Errorf("ids = %v, want [P04637]", ids)
	}

	// Second lookup is served from cache.
	if _, err := c.Search(ctx, "TP53_HUMAN", false); err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 1 {
		t.Errorf("server calls = %d, want 1", calls.Load())
	}

	// refresh bypasses the cache.
	if _, err := c.Search(ctx, "TP53_HUMAN", true); err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 2 {
		t.Errorf("server calls = %d, want 2", calls.Load())
	}
}

func TestClient_SearchNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	ids, err := testClient(t, server).Search(context.Background(), "NOPE", false)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("ids = %v, want none", ids)
	}
}

func TestClient_SearchBadRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	_, err := testClient(t, server).Search(context.Background(), "(((", false)
	if !errors.Is(err, integrations.ErrNetwork) {
		t.Errorf("err = %v, want ErrNetwork", err)
	}
}

func TestClient_Download(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/uniprotkb/P04637.txt" {
			w.Write([]byte("ID   P53_HUMAN               Reviewed;         393 AA.\n//\n"))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	c := testClient(t, server)

	var buf bytes.Buffer
	if err := c.Download(context.Background(), "P04637", &buf); err != nil {
		t.Fatalf("Download: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("ID   P53_HUMAN")) {
		t.Errorf("body = %q", buf.String())
	}

	err := c.Download(context.Background(), "Q00000", &bytes.Buffer{})
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestClient_DownloadFileRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("ID   P53_HUMAN\n//\n"))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "P04637.txt")
	if err := testClient(t, server).DownloadFile(context.Background(), "P04637", path); err != nil {
		t.Fatalf("DownloadFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "ID   P53_HUMAN\n//\n" {
		t.Errorf("file = %q", data)
	}
	if _, err := os.Stat(path + ".part"); !os.IsNotExist(err) {
		t.Error("partial file left behind")
	}
}

func TestClient_DownloadFileFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	path := filepath.Join(t.TempDir(), "Q00000.txt")
	err := testClient(t, server).DownloadFile(context.Background(), "Q00000", path)
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("target file should not exist after failure")
	}
}

func TestHostOf(t *testing.T) {
	if got := hostOf("https://rest.uniprot.org"); got != "rest.uniprot.org" {
		t.Errorf("hostOf = %q", got)
	}
	if got := hostOf("not a url"); got != "not a url" {
		t.Errorf("hostOf = %q", got)
	}
}
