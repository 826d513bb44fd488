package interfaces

import (
	"context"
	"io"
	"time"
)

// FetchOptions tunes a single outbound request.
// The zero value performs one attempt with the client's defaults.
type FetchOptions struct {
	// Retries is the number of extra attempts after the first one.
	// Only network errors and 5xx responses are retried.
	Retries int `json:"retries,omitempty" yaml:"retries"`

	// Timeout bounds the whole request including retries. Zero uses the client default.
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout"`

	// UserAgent overrides the client's User-Agent header when set.
	UserAgent string `json:"userAgent,omitempty" yaml:"userAgent"`

	// Headers are added to the request verbatim.
	Headers map[string]string `json:"headers,omitempty" yaml:"headers"`
}

// HTTPClient defines the interface for making HTTP requests.
// This abstraction allows for easy mocking in tests and switching between
// different HTTP client implementations.
type HTTPClient interface {
	// Get performs an HTTP GET request to the specified URL.
	// Responses with any status code are returned; callers decide what counts
	// as success. An error is returned only when no response was obtained.
	Get(ctx context.Context, url string, opts FetchOptions) (Response, error)
}

// Response defines the interface for HTTP responses.
type Response interface {
	// StatusCode returns the HTTP status code of the response.
	StatusCode() int

	// Body returns the response body as an io.ReadCloser.
	// The caller is responsible for closing the body when done.
	Body() io.ReadCloser

	// Header returns the value of the specified header.
	// Returns an empty string if the header is not present.
	// Header names are case-insensitive.
	Header(key string) string
}
