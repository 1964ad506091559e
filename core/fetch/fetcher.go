// Package fetch implements the Fetcher interface.
// It performs HTTP GET requests with browser-like defaults, since many
// recipe sites reject unknown clients.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/gaurav-prasanna/recipepipe/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	maxPageBytes     = 10 << 20
)

// StatusError reports a non-2xx response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.Code, e.URL)
}

// HTTPFetcher fetches web pages via HTTP.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	maxPage   int64
}

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithTimeout sets the total request timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *HTTPFetcher) { f.client.Timeout = d }
}

// WithClient replaces the underlying HTTP client.
func WithClient(c *http.Client) Option {
	return func(f *HTTPFetcher) { f.client = c }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *HTTPFetcher) { f.userAgent = ua }
}

// WithMaxPageBytes caps the size of a fetched page.
func WithMaxPageBytes(n int64) Option {
	return func(f *HTTPFetcher) { f.maxPage = n }
}

// New creates an HTTPFetcher with a sensible timeout.
func New(opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		client:    &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
		maxPage:   maxPageBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves the HTML content of the given URL, decoded to UTF-8
// from whatever charset the server or the page declares.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.maxPage+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if int64(len(raw)) > f.maxPage {
		return nil, fmt.Errorf("page %s exceeds %d bytes", url, f.maxPage)
	}

	contentType := resp.Header.Get("Content-Type")
	body, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return nil, fmt.Errorf("detecting charset: %w", err)
	}
	html, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("decoding response body: %w", err)
	}

	return &core.FetchResult{
		URL:         url,
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		HTML:        string(html),
	}, nil
}

// Download retrieves a binary resource with the given extra headers and
// returns its body and content type. Bodies larger than limit bytes are
// rejected; a limit of zero or less disables the check.
func (f *HTTPFetcher) Download(ctx context.Context, url string, headers map[string]string, limit int64) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", &StatusError{URL: url, Code: resp.StatusCode}
	}

	var r io.Reader = resp.Body
	if limit > 0 {
		r = io.LimitReader(resp.Body, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("reading response body: %w", err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, "", fmt.Errorf("%s exceeds %d bytes", url, limit)
	}
	return data, resp.Header.Get("Content-Type"), nil
}
