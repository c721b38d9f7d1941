// Package registry implements a manifest source backed by an
// npm-style package registry over HTTP.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"depscope/pkg/cache"
	"depscope/pkg/httputil"
	"depscope/pkg/source"
)

// DefaultBaseURL is the public npm registry.
const DefaultBaseURL = "https://registry.npmjs.org"

const httpTimeout = 10 * time.Second

// ErrNetwork is returned for transport failures and non-404 HTTP error
// statuses.
var ErrNetwork = errors.New("network error")

// Client fetches version documents from a package registry and exposes
// their dependencies as manifests. Responses are cached through the
// configured cache backend and transient failures are retried with
// backoff. Safe for concurrent use.
type Client struct {
	http    *http.Client
	store   cache.Cache
	baseURL string
	ttl     time.Duration

	// retry policy, overridable in tests
	attempts int
	delay    time.Duration
}

// New creates a registry client. An empty baseURL selects
// [DefaultBaseURL]; store may be a [cache.NullCache] to disable
// caching.
func New(baseURL string, store cache.Cache, ttl time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:     &http.Client{Timeout: httpTimeout},
		store:    store,
		baseURL:  baseURL,
		ttl:      ttl,
		attempts: 3,
		delay:    time.Second,
	}
}

// versionDoc is the subset of a registry version document we consume.
type versionDoc struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Dependencies map[string]string `json:"dependencies"`
}

// FetchManifest returns the declared dependencies of name at version.
// The version may be a dist-tag such as "latest". Missing packages or
// versions return [source.ErrNotFound]; transport failures and 5xx
// statuses surface as [ErrNetwork] after the retry budget is spent.
func (c *Client) FetchManifest(ctx context.Context, name, version string) (source.Manifest, error) {
	key := "manifest:" + name + "@" + version

	if data, ok, _ := c.store.Get(ctx, key); ok {
		var doc versionDoc
		if err := json.Unmarshal(data, &doc); err == nil {
			return source.Manifest(doc.Dependencies), nil
		}
		// Corrupt entry: drop it and refetch.
		_ = c.store.Delete(ctx, key)
	}

	var doc versionDoc
	fetch := func() error { return c.fetch(ctx, name, version, &doc) }
	if err := httputil.Retry(ctx, c.attempts, c.delay, fetch); err != nil {
		return nil, err
	}

	if data, err := json.Marshal(doc); err == nil {
		_ = c.store.Set(ctx, key, data, c.ttl)
	}
	return source.Manifest(doc.Dependencies), nil
}

func (c *Client) fetch(ctx context.Context, name, version string, doc *versionDoc) error {
	u := fmt.Sprintf("%s/%s/%s", c.baseURL, url.PathEscape(name), url.PathEscape(version))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return httputil.Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s@%s", source.ErrNotFound, name, version)
	case resp.StatusCode >= 500:
		return httputil.Retryable(fmt.Errorf("%w: status %d", ErrNetwork, resp.StatusCode))
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(doc); err != nil {
		return fmt.Errorf("decode version document: %w", err)
	}
	return nil
}

var _ source.Source = (*Client)(nil)
