// ABOUTME: Standard HTTP client implementation with per-call retries, timeout and headers
// ABOUTME: Retries network errors and 5xx responses with exponential backoff when asked to

package standard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/oisu/rss-finder-for-smartfeed/core/interfaces"
)

const (
	// DefaultUserAgent is sent unless FetchOptions.UserAgent overrides it
	DefaultUserAgent = "rss-finder/1.0 (+https://github.com/oisu/rss-finder-for-smartfeed)"

	baseBackoff = 100 * time.Millisecond
)

// StandardHTTPClient implements the HTTPClient interface using standard library
type StandardHTTPClient struct {
	client    *http.Client
	userAgent string
}

// NewStandardHTTPClient creates a new HTTP client with the specified timeout
func NewStandardHTTPClient(timeout time.Duration) *StandardHTTPClient {
	return &StandardHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: DefaultUserAgent,
	}
}

// WithUserAgent sets the default User-Agent for requests without their own
func (c *StandardHTTPClient) WithUserAgent(userAgent string) *StandardHTTPClient {
	if userAgent != "" {
		c.userAgent = userAgent
	}
	return c
}

// WithTransport replaces the round tripper used for outbound requests
func (c *StandardHTTPClient) WithTransport(transport http.RoundTripper) *StandardHTTPClient {
	if transport != nil {
		c.client.Transport = transport
	}
	return c
}

// Get performs an HTTP GET request. opts.Retries extra attempts are made after
// network errors and 5xx responses; the last response is returned whatever its
// status.
func (c *StandardHTTPClient) Get(ctx context.Context, url string, opts interfaces.FetchOptions) (interfaces.Response, error) {
	cancel := context.CancelFunc(func() {})
	if opts.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		cancel()
		return nil, err
	}

	userAgent := c.userAgent
	if opts.UserAgent != "" {
		userAgent = opts.UserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	attempts := 1
	if opts.Retries > 0 {
		attempts += opts.Retries
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 100ms, 200ms, 400ms, ...
			backoff := baseBackoff * time.Duration(1<<(attempt-1))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				cancel()
				return nil, ctx.Err()
			}
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		// Success, 4xx and the final attempt are handed back to the caller
		if resp.StatusCode < 500 || attempt == attempts-1 {
			return &httpResponse{
				statusCode: resp.StatusCode,
				body:       &cancelOnClose{ReadCloser: resp.Body, cancel: cancel},
				headers:    resp.Header,
			}, nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
	}

	cancel()
	return nil, lastErr
}

// cancelOnClose releases the per-request timeout once the body is closed
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelOnClose) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
