package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/oisu/rss-finder-for-smartfeed/core/discovery"
	"github.com/oisu/rss-finder-for-smartfeed/core/domain"
	"github.com/oisu/rss-finder-for-smartfeed/core/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockDiscoveryService is a mock implementation of the discovery service
type mockDiscoveryService struct {
	mu           sync.Mutex
	inputs       []interface{}
	discoverFunc func(ctx context.Context, input interface{}) (*domain.DiscoveryResult, error)
}

func (m *mockDiscoveryService) Discover(ctx context.Context, input interface{}) (*domain.DiscoveryResult, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, input)
	m.mu.Unlock()

	if m.discoverFunc != nil {
		return m.discoverFunc(ctx, input)
	}
	return &domain.DiscoveryResult{FeedURLs: []domain.FeedReference{}}, nil
}

func (m *mockDiscoveryService) DiscoverURL(ctx context.Context, url string) (*domain.DiscoveryResult, error) {
	return m.Discover(ctx, url)
}

func sampleResult(siteURL string) *domain.DiscoveryResult {
	return &domain.DiscoveryResult{
		Site: domain.Site{
			Title:   "Example Blog",
			Favicon: siteURL + "/favicon.ico",
			URL:     siteURL,
		},
		FeedURLs: []domain.FeedReference{
			{Title: "Example Blog", URL: siteURL + "/feed.xml"},
		},
	}
}

func inputURL(input interface{}) string {
	switch v := input.(type) {
	case string:
		return v
	case discovery.Request:
		return v.URL
	}
	return ""
}

func TestDiscoverHandler_RegisterRoutes(t *testing.T) {
	handler := NewDiscoverHandler(&mockDiscoveryService{})
	_, api := humatest.New(t)

	handler.RegisterRoutes(api)

	openapi := api.OpenAPI()
	require.NotNil(t, openapi.Paths["/discover"])
	assert.NotNil(t, openapi.Paths["/discover"].Get, "GET /discover not registered")
	assert.NotNil(t, openapi.Paths["/discover"].Post, "POST /discover not registered")
}

func TestDiscoverHandler_DiscoverSite_Success(t *testing.T) {
	service := &mockDiscoveryService{
		discoverFunc: func(ctx context.Context, input interface{}) (*domain.DiscoveryResult, error) {
			return sampleResult("https://blog.example.com"), nil
		},
	}
	_, api := humatest.New(t)
	NewDiscoverHandler(service).RegisterRoutes(api)

	resp := api.Get("/discover?url=https://blog.example.com")

	require.Equal(t, http.StatusOK, resp.Code)

	var result domain.DiscoveryResult
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	assert.Equal(t, "Example Blog", result.Site.Title)
	assert.Equal(t, "https://blog.example.com", result.Site.URL)
	require.Len(t, result.FeedURLs, 1)
	assert.Equal(t, "https://blog.example.com/feed.xml", result.FeedURLs[0].URL)

	assert.Equal(t, []interface{}{"https://blog.example.com"}, service.inputs)
}

func TestDiscoverHandler_DiscoverSite_MissingFaviconIsNull(t *testing.T) {
	service := &mockDiscoveryService{
		discoverFunc: func(ctx context.Context, input interface{}) (*domain.DiscoveryResult, error) {
			return &domain.DiscoveryResult{
				Site:     domain.Site{URL: "http://ex.test/html"},
				FeedURLs: []domain.FeedReference{},
			}, nil
		},
	}
	_, api := humatest.New(t)
	NewDiscoverHandler(service).RegisterRoutes(api)

	resp := api.Get("/discover?url=http://ex.test/html")

	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Site     map[string]interface{} `json:"site"`
		FeedURLs []interface{}          `json:"feedUrls"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, map[string]interface{}{
		"title":       nil,
		"favicon":     nil,
		"url":         "http://ex.test/html",
		"description": nil,
	}, body.Site)
	assert.NotNil(t, body.FeedURLs)
	assert.Empty(t, body.FeedURLs)
}

func TestDiscoverHandler_DiscoverSite_MissingURL(t *testing.T) {
	_, api := humatest.New(t)
	NewDiscoverHandler(&mockDiscoveryService{}).RegisterRoutes(api)

	resp := api.Get("/discover")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestDiscoverHandler_DiscoverSite_MapsErrorKinds(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"invalid url", errors.NewInvalidURL("ftp://example.com"), http.StatusBadRequest},
		{"not a feed", errors.NewNotAFeed(nil), http.StatusUnprocessableEntity},
		{"transport", errors.NewTransportFailure("https://down.example", nil), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mockDiscoveryService{
				discoverFunc: func(ctx context.Context, input interface{}) (*domain.DiscoveryResult, error) {
					return nil, tt.err
				},
			}
			_, api := humatest.New(t)
			NewDiscoverHandler(service).RegisterRoutes(api)

			resp := api.Get("/discover?url=https://down.example")

			assert.Equal(t, tt.expectedStatus, resp.Code)
		})
	}
}

func TestDiscoverHandler_DiscoverFeeds_Batch(t *testing.T) {
	service := &mockDiscoveryService{
		discoverFunc: func(ctx context.Context, input interface{}) (*domain.DiscoveryResult, error) {
			url := inputURL(input)
			if url == "https://broken.example" {
				return nil, errors.NewTransportFailure(url, &errors.HTTPStatusError{StatusCode: 500, URL: url})
			}
			return sampleResult(url), nil
		},
	}
	_, api := humatest.New(t)
	NewDiscoverHandler(service).RegisterRoutes(api)

	resp := api.Post("/discover", map[string]interface{}{
		"urls": []string{"https://a.example", "https://broken.example", "https://b.example"},
	})

	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Feeds []FeedDiscoveryResult `json:"feeds"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Feeds, 3)

	// results follow request order
	assert.Equal(t, "https://a.example", body.Feeds[0].URL)
	assert.Equal(t, "ok", body.Feeds[0].Status)
	require.NotNil(t, body.Feeds[0].Result)
	assert.Equal(t, "https://a.example/feed.xml", body.Feeds[0].Result.FeedURLs[0].URL)

	assert.Equal(t, "https://broken.example", body.Feeds[1].URL)
	assert.Equal(t, "error", body.Feeds[1].Status)
	assert.Equal(t, "transport", body.Feeds[1].Kind)
	assert.Contains(t, body.Feeds[1].Error, "response code 500")
	assert.Nil(t, body.Feeds[1].Result)

	assert.Equal(t, "https://b.example", body.Feeds[2].URL)
	assert.Equal(t, "ok", body.Feeds[2].Status)

	// bare URLs are passed as strings
	for _, input := range service.inputs {
		assert.IsType(t, "", input)
	}
}

func TestDiscoverHandler_DiscoverFeeds_ForwardsOptions(t *testing.T) {
	service := &mockDiscoveryService{}
	_, api := humatest.New(t)
	NewDiscoverHandler(service).RegisterRoutes(api)

	resp := api.Post("/discover", map[string]interface{}{
		"urls": []string{"https://a.example"},
		"transportOptions": map[string]interface{}{
			"retries":   2,
			"userAgent": "smartfeed-bot/2.0",
		},
		"feedParserOptions": map[string]interface{}{
			"feedUrl": "https://a.example/feed",
		},
	})

	require.Equal(t, http.StatusOK, resp.Code)
	require.Len(t, service.inputs, 1)

	req, ok := service.inputs[0].(discovery.Request)
	require.True(t, ok, "expected a discovery.Request, got %T", service.inputs[0])
	assert.Equal(t, "https://a.example", req.URL)
	assert.Equal(t, 2, req.TransportOptions.Retries)
	assert.Equal(t, "smartfeed-bot/2.0", req.TransportOptions.UserAgent)
	assert.Equal(t, "https://a.example/feed", req.FeedParserOptions.FeedURL)
}

func TestDiscoverHandler_DiscoverFeeds_EmptyURLs(t *testing.T) {
	_, api := humatest.New(t)
	NewDiscoverHandler(&mockDiscoveryService{}).RegisterRoutes(api)

	resp := api.Post("/discover", map[string]interface{}{
		"urls": []string{},
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "No URLs provided")
}

func TestDiscoverHandler_DiscoverFeeds_TooManyURLs(t *testing.T) {
	_, api := humatest.New(t)
	NewDiscoverHandler(&mockDiscoveryService{}).RegisterRoutes(api)

	urls := make([]string, MaxBatchURLs+1)
	for i := range urls {
		urls[i] = "https://example.com"
	}

	resp := api.Post("/discover", map[string]interface{}{"urls": urls})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}
