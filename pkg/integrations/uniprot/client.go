// Package uniprot provides a client for the UniProt REST API.
//
// Two endpoints are used:
//
//   - GET /uniprotkb/search resolves free-text protein tokens (gene names,
//     entry names) to primary accessions
//   - GET /uniprotkb/{accession}.txt downloads the flat-file entry consumed
//     by the graph generator
//
// Search results are cached; entry downloads are not.
package uniprot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/matzehuels/isograph/pkg/buildinfo"
	"github.com/matzehuels/isograph/pkg/cache"
	"github.com/matzehuels/isograph/pkg/integrations"
)

// DefaultBaseURL is the public UniProt REST endpoint.
const DefaultBaseURL = "https://rest.uniprot.org"

// Client provides access to the UniProt REST API.
// All methods are safe for concurrent use.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a UniProt client against DefaultBaseURL.
//
// Parameters:
//   - backend: cache backend for search results (nil disables caching)
//   - cacheTTL: how long search results are cached
//   - opts: transport options, see [integrations.Option]
func NewClient(backend cache.Cache, cacheTTL time.Duration, opts ...integrations.Option) *Client {
	return NewClientWithBaseURL(DefaultBaseURL, backend, cacheTTL, opts...)
}

// NewClientWithBaseURL creates a UniProt client against a mirror or test
// server. Cache keys are scoped by base URL.
func NewClientWithBaseURL(baseURL string, backend cache.Cache, cacheTTL time.Duration, opts ...integrations.Option) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), hostOf(baseURL)+":")
	return &Client{
		Client: integrations.NewClient(backend, keyer.HTTPKey("uniprot", ""), cacheTTL,
			map[string]string{"User-Agent": buildinfo.UserAgent()}, opts...),
		baseURL: baseURL,
	}
}

// BaseURL returns the endpoint the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Search returns the primary accessions matching token, best match first.
// At most one accession is requested. An empty result is not an error.
//
// If refresh is true, the cache is bypassed.
func (c *Client) Search(ctx context.Context, token string, refresh bool) ([]string, error) {
	var ids []string
	err := c.Cached(ctx, "search:"+token, refresh, &ids, func() error {
		return c.search(ctx, token, &ids)
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (c *Client) search(ctx context.Context, token string, ids *[]string) error {
	q := url.Values{}
	q.Set("query", token)
	q.Set("fields", "accession")
	q.Set("format", "json")
	q.Set("size", "1")

	var data searchResponse
	if err := c.Get(ctx, c.baseURL+"/uniprotkb/search?"+q.Encode(), &data); err != nil {
		return err
	}

	out := make([]string, 0, len(data.Results))
	for _, r := range data.Results {
		if r.PrimaryAccession != "" {
			out = append(out, r.PrimaryAccession)
		}
	}
	*ids = out
	return nil
}

// Download streams the flat-file entry for accession to w.
//
// Returns [integrations.ErrNotFound] if UniProt has no such entry. Transient
// failures are retried, so w should be rewindable (e.g. a file truncated by
// the caller); use [Client.DownloadFile] for that.
func (c *Client) Download(ctx context.Context, accession string, w io.Writer) error {
	u := fmt.Sprintf("%s/uniprotkb/%s.txt", c.baseURL, url.PathEscape(accession))
	err := c.Stream(ctx, u, w)
	if errors.Is(err, integrations.ErrNotFound) {
		return fmt.Errorf("%w: uniprot entry %s", err, accession)
	}
	return err
}

// DownloadFile downloads the entry for accession to path, retrying
// transient failures. path is replaced atomically and is never left
// holding a partial entry.
func (c *Client) DownloadFile(ctx context.Context, accession, path string) error {
	tmp := path + ".part"
	err := c.Retry(ctx, func() error {
		f, err := os.Create(tmp)
		if err != nil {
			return err
		}
		if err := c.Download(ctx, accession, f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	})
	if err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	PrimaryAccession string `json:"primaryAccession"`
}

func hostOf(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return baseURL
	}
	return u.Host
}
