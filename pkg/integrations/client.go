package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/matzehuels/isograph/pkg/cache"
	"github.com/matzehuels/isograph/pkg/httputil"
	"github.com/matzehuels/isograph/pkg/observability"
)

// DefaultRetryAttempts is the number of tries for transient failures.
const DefaultRetryAttempts = 3

const maxRetryDelay = 30 * time.Second

// Client provides shared HTTP functionality for remote service clients.
// It handles caching, retry logic, circuit breaking and common request
// headers. All methods are safe for concurrent use.
type Client struct {
	http       *http.Client
	cache      *httputil.Cache
	breaker    *gobreaker.CircuitBreaker
	headers    map[string]string
	retryDelay time.Duration
	attempts   int
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithBreaker replaces the default circuit breaker.
func WithBreaker(cb *gobreaker.CircuitBreaker) Option {
	return func(c *Client) { c.breaker = cb }
}

// WithRetryDelay sets the initial backoff between retries.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.retryDelay = d }
}

// WithRetryAttempts sets how many times transient failures are tried.
// One disables retries.
func WithRetryAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.attempts = n
		}
	}
}

// NewClient creates a Client whose responses are cached in backend under
// namespace for ttl. Headers are applied to all requests made through this
// client. Pass nil for backend to disable caching and nil for headers if no
// default headers are needed.
func NewClient(backend cache.Cache, namespace string, ttl time.Duration, headers map[string]string, opts ...Option) *Client {
	c := &Client{
		http:       NewHTTPClient(0),
		cache:      httputil.NewCache(backend, ttl).Namespace(namespace),
		headers:    headers,
		retryDelay: time.Second,
		attempts:   DefaultRetryAttempts,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.breaker == nil {
		c.breaker = NewBreaker(DefaultBreakerConfig(namespace), nil)
	}
	return c
}

// Cached retrieves a value from cache or executes fetch and caches the result.
// If refresh is true, the cache is bypassed and fetch is always called.
// The fetch function should populate v; on success, v is stored in the cache.
// Cache failures never fail the call.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	if !refresh {
		if ok, _ := c.cache.Get(ctx, key, v); ok {
			return nil
		}
	}
	if err := c.Retry(ctx, fetch); err != nil {
		return err
	}
	_ = c.cache.Set(ctx, key, v)
	return nil
}

// Retry runs fn with the client's backoff policy.
func (c *Client) Retry(ctx context.Context, fn func() error) error {
	return httputil.Backoff{Attempts: c.attempts, Delay: c.retryDelay, MaxDelay: maxRetryDelay}.Do(ctx, fn)
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders performs an HTTP GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	body, err := c.doRequest(ctx, url, headers)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// Stream performs an HTTP GET request and copies the response body to w.
// A failure while copying is retryable; w may then hold a partial body.
func (c *Client) Stream(ctx context.Context, url string, w io.Writer) error {
	body, err := c.doRequest(ctx, url, nil)
	if err != nil {
		return err
	}
	defer body.Close()
	if _, err := io.Copy(w, body); err != nil {
		return &httputil.RetryableError{Err: fmt.Errorf("%w: read body: %v", ErrNetwork, err)}
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, url string, headers map[string]string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	out, err := c.breaker.Execute(func() (any, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			hooks.OnError(ctx, req.Method, host, path, err)
			return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
		}
		hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))
		if err := checkStatus(resp.StatusCode); err != nil {
			resp.Body.Close()
			return nil, err
		}
		return resp.Body, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %s unavailable: %v", ErrNetwork, host, err)
	}
	if err != nil {
		return nil, err
	}
	return out.(io.ReadCloser), nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
