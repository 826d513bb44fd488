// ABOUTME: Discover handler exposing feed discovery over HTTP
// ABOUTME: Serves single-URL lookups and concurrent batch discovery with per-URL status

package handlers

import (
	"context"
	"net/http"
	"sync"

	"github.com/danielgtaylor/huma/v2"
	"github.com/oisu/rss-finder-for-smartfeed/core/discovery"
	"github.com/oisu/rss-finder-for-smartfeed/core/domain"
	"github.com/oisu/rss-finder-for-smartfeed/core/errors"
	"github.com/oisu/rss-finder-for-smartfeed/core/interfaces"
)

// MaxBatchURLs caps how many URLs one batch request may carry
const MaxBatchURLs = 50

// DiscoverHandler handles RSS feed discovery
type DiscoverHandler struct {
	service interfaces.DiscoveryService
}

// NewDiscoverHandler creates a new discover handler
func NewDiscoverHandler(service interfaces.DiscoveryService) *DiscoverHandler {
	return &DiscoverHandler{
		service: service,
	}
}

// RegisterRoutes registers discover routes
func (h *DiscoverHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "discoverSite",
		Method:      http.MethodGet,
		Path:        "/discover",
		Summary:     "Discover the feeds of one website",
		Description: "Fetches the page, finds its advertised RSS/Atom/RDF feeds and verifies each one",
		Tags:        []string{"Discovery"},
	}, h.DiscoverSite)

	huma.Register(api, huma.Operation{
		OperationID: "discoverFeeds",
		Method:      http.MethodPost,
		Path:        "/discover",
		Summary:     "Discover RSS feeds from websites",
		Description: "Runs discovery for every provided URL concurrently and reports each outcome",
		Tags:        []string{"Discovery"},
	}, h.DiscoverFeeds)
}

// DiscoverSiteInput defines the input for a single discovery
type DiscoverSiteInput struct {
	URL string `query:"url" required:"true" doc:"Absolute http(s) URL of the page to inspect" example:"https://blog.example.com"`
}

// DiscoverSiteOutput defines the output for a single discovery
type DiscoverSiteOutput struct {
	Body domain.DiscoveryResult
}

// DiscoverSite handles the GET /discover endpoint
func (h *DiscoverHandler) DiscoverSite(ctx context.Context, input *DiscoverSiteInput) (*DiscoverSiteOutput, error) {
	result, err := h.service.DiscoverURL(ctx, input.URL)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &DiscoverSiteOutput{Body: *result}, nil
}

// DiscoverFeedsInput defines the input for batch feed discovery
type DiscoverFeedsInput struct {
	Body struct {
		URLs              []string                    `json:"urls" maxItems:"50" doc:"List of website URLs to discover feeds from"`
		TransportOptions  interfaces.FetchOptions     `json:"transportOptions,omitempty" doc:"Options for each primary page fetch"`
		FeedParserOptions discovery.FeedParserOptions `json:"feedParserOptions,omitempty" doc:"Options for pages that are feeds themselves"`
	}
}

// FeedDiscoveryResult represents a single discovery result
type FeedDiscoveryResult struct {
	URL    string                  `json:"url" doc:"Original URL that was checked"`
	Status string                  `json:"status" doc:"Discovery status: 'ok' or 'error'" enum:"ok,error"`
	Result *domain.DiscoveryResult `json:"result,omitempty" doc:"Site identity and verified feeds"`
	Error  string                  `json:"error,omitempty" doc:"Error message if discovery failed"`
	Kind   string                  `json:"kind,omitempty" doc:"Error kind if discovery failed"`
}

// DiscoverFeedsOutput defines the output for feed discovery
type DiscoverFeedsOutput struct {
	Body struct {
		Feeds []FeedDiscoveryResult `json:"feeds" doc:"Discovery results for each URL in request order"`
	}
}

// DiscoverFeeds handles the POST /discover endpoint
func (h *DiscoverHandler) DiscoverFeeds(ctx context.Context, input *DiscoverFeedsInput) (*DiscoverFeedsOutput, error) {
	if len(input.Body.URLs) == 0 {
		return nil, huma.Error400BadRequest("No URLs provided")
	}

	var wg sync.WaitGroup
	results := make([]FeedDiscoveryResult, len(input.Body.URLs))

	for i, siteURL := range input.Body.URLs {
		wg.Add(1)
		go func(idx int, siteURL string) {
			defer wg.Done()

			result, err := h.service.Discover(ctx, batchInput(siteURL, input))
			if err != nil {
				results[idx] = FeedDiscoveryResult{
					URL:    siteURL,
					Status: "error",
					Error:  err.Error(),
					Kind:   string(errors.KindOf(err)),
				}
				return
			}
			results[idx] = FeedDiscoveryResult{
				URL:    siteURL,
				Status: "ok",
				Result: result,
			}
		}(i, siteURL)
	}

	wg.Wait()

	output := &DiscoverFeedsOutput{}
	output.Body.Feeds = results
	return output, nil
}

// batchInput passes bare URLs as strings so cached results can be reused
func batchInput(siteURL string, input *DiscoverFeedsInput) interface{} {
	transport := input.Body.TransportOptions
	parser := input.Body.FeedParserOptions
	if transport.Retries == 0 && transport.Timeout == 0 && transport.UserAgent == "" &&
		len(transport.Headers) == 0 && parser.FeedURL == "" {
		return siteURL
	}

	return discovery.Request{
		URL:               siteURL,
		TransportOptions:  transport,
		FeedParserOptions: parser,
	}
}
