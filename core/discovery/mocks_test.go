package discovery

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/oisu/rss-finder-for-smartfeed/core/domain"
	"github.com/oisu/rss-finder-for-smartfeed/core/interfaces"
)

// mockHTTPClient is a mock implementation of the HTTPClient interface
type mockHTTPClient struct {
	getFunc func(ctx context.Context, url string, opts interfaces.FetchOptions) (interfaces.Response, error)

	mu    sync.Mutex
	calls []string
	opts  []interfaces.FetchOptions
}

func (m *mockHTTPClient) Get(ctx context.Context, url string, opts interfaces.FetchOptions) (interfaces.Response, error) {
	m.mu.Lock()
	m.calls = append(m.calls, url)
	m.opts = append(m.opts, opts)
	m.mu.Unlock()

	if m.getFunc != nil {
		return m.getFunc(ctx, url, opts)
	}
	return &mockResponse{statusCode: http.StatusNotFound}, nil
}

func (m *mockHTTPClient) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// routes builds a mockHTTPClient answering from a fixed URL table. Unknown
// URLs get a 404.
func routes(table map[string]*mockResponse) *mockHTTPClient {
	return &mockHTTPClient{
		getFunc: func(ctx context.Context, url string, opts interfaces.FetchOptions) (interfaces.Response, error) {
			if resp, ok := table[url]; ok {
				return resp, nil
			}
			return &mockResponse{statusCode: http.StatusNotFound}, nil
		},
	}
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       string
	headers    map[string]string
}

func (m *mockResponse) StatusCode() int {
	return m.statusCode
}

func (m *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(strings.NewReader(m.body))
}

func (m *mockResponse) Header(key string) string {
	if m.headers != nil {
		return m.headers[key]
	}
	return ""
}

func htmlResponse(body string) *mockResponse {
	return &mockResponse{
		statusCode: http.StatusOK,
		body:       body,
		headers:    map[string]string{"Content-Type": "text/html; charset=utf-8"},
	}
}

func feedResponse(contentType string) *mockResponse {
	return &mockResponse{
		statusCode: http.StatusOK,
		body:       "<rss/>",
		headers:    map[string]string{"Content-Type": contentType},
	}
}

// netHTTPClient adapts net/http for tests running against httptest servers
type netHTTPClient struct {
	client *http.Client
}

func (c *netHTTPClient) Get(ctx context.Context, url string, opts interfaces.FetchOptions) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	return &netHTTPResponse{resp: resp}, nil
}

type netHTTPResponse struct {
	resp *http.Response
}

func (r *netHTTPResponse) StatusCode() int          { return r.resp.StatusCode }
func (r *netHTTPResponse) Body() io.ReadCloser      { return r.resp.Body }
func (r *netHTTPResponse) Header(key string) string { return r.resp.Header.Get(key) }

// mockCache is a mock implementation of the Cache interface
type mockCache struct {
	getFunc    func(ctx context.Context, key string) ([]byte, error)
	setFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	deleteFunc func(ctx context.Context, key string) error
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, key)
	}
	return nil, interfaces.ErrCacheMiss
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFunc != nil {
		return m.setFunc(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, key)
	}
	return nil
}

// mockLogger is a mock implementation of the Logger interface
type mockLogger struct {
	mu       sync.Mutex
	messages []string
}

func (m *mockLogger) record(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) { m.record(msg) }
func (m *mockLogger) Info(msg string, fields map[string]interface{})  { m.record(msg) }
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  { m.record(msg) }
func (m *mockLogger) Error(msg string, fields map[string]interface{}) { m.record(msg) }

func (m *mockLogger) has(msg string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, got := range m.messages {
		if got == msg {
			return true
		}
	}
	return false
}

// mockDiscoveryService is a mock implementation of the DiscoveryService interface
type mockDiscoveryService struct {
	discoverFunc    func(ctx context.Context, input interface{}) (*domain.DiscoveryResult, error)
	discoverURLFunc func(ctx context.Context, url string) (*domain.DiscoveryResult, error)
	urlCalls        int
}

func (m *mockDiscoveryService) Discover(ctx context.Context, input interface{}) (*domain.DiscoveryResult, error) {
	if m.discoverFunc != nil {
		return m.discoverFunc(ctx, input)
	}
	return nil, nil
}

func (m *mockDiscoveryService) DiscoverURL(ctx context.Context, url string) (*domain.DiscoveryResult, error) {
	m.urlCalls++
	if m.discoverURLFunc != nil {
		return m.discoverURLFunc(ctx, url)
	}
	return nil, nil
}
