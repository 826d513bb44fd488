// ABOUTME: Main client for the rssfinder library providing feed discovery
// ABOUTME: Offers a clean API for using the discovery pipeline without HTTP server dependencies

package rssfinder

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/oisu/rss-finder-for-smartfeed/core/discovery"
	"github.com/oisu/rss-finder-for-smartfeed/core/interfaces"
)

// Client is the main entry point for the rssfinder library
type Client struct {
	service interfaces.DiscoveryService
	config  Config
}

// Config holds the configuration for the client
type Config struct {
	// HTTPClient performs every outbound request. When nil a standard client
	// is built from Timeout and UserAgent.
	HTTPClient interfaces.HTTPClient

	// Cache keeps results for plain URL lookups; nil disables caching
	Cache interfaces.Cache

	// CacheTTL is how long cached results live
	CacheTTL time.Duration

	Logger interfaces.Logger

	// Timeout bounds the primary document fetch
	Timeout time.Duration

	// ProbeTimeout bounds each favicon and feed verification request
	ProbeTimeout time.Duration

	// Retries is the number of extra attempts for the primary fetch
	Retries int

	UserAgent string

	// VerifyConcurrency caps parallel verification requests; 0 is unbounded
	VerifyConcurrency int
}

// NewClient creates a new client with the given options
func NewClient(options ...Option) (*Client, error) {
	config := defaultConfig()

	for _, opt := range options {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	if config.HTTPClient == nil {
		config.HTTPClient = DefaultHTTPClient(config.Timeout, config.UserAgent)
	}

	deps := interfaces.Dependencies{
		HTTPClient: config.HTTPClient,
		Cache:      config.Cache,
		Logger:     config.Logger,
	}

	discoveryConfig := discovery.DefaultConfig()
	discoveryConfig.UserAgent = config.UserAgent
	discoveryConfig.ProbeTimeout = config.ProbeTimeout
	discoveryConfig.VerifyConcurrency = config.VerifyConcurrency
	discoveryConfig.Defaults.TransportOptions = interfaces.FetchOptions{
		Retries: config.Retries,
		Timeout: config.Timeout,
	}

	var service interfaces.DiscoveryService = discovery.NewService(deps, discoveryConfig)
	if config.Cache != nil {
		service = discovery.NewCachingService(service, config.Cache, config.Logger, config.CacheTTL)
	}

	return &Client{
		service: service,
		config:  config,
	}, nil
}

// Discover runs discovery for a URL string, a Request, a *Request or a
// map[string]interface{} carrying the same fields as Request.
func (c *Client) Discover(ctx context.Context, input interface{}) (*Result, error) {
	return c.service.Discover(ctx, input)
}

// DiscoverURL runs discovery for a single URL with the client's defaults
func (c *Client) DiscoverURL(ctx context.Context, url string) (*Result, error) {
	return c.service.DiscoverURL(ctx, url)
}

// Close releases the cache when it holds resources such as an open file
func (c *Client) Close() error {
	if closer, ok := c.config.Cache.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

var (
	defaultClient     *Client
	defaultClientErr  error
	defaultClientOnce sync.Once
)

// Discover runs discovery with a shared client built from the defaults
func Discover(ctx context.Context, input interface{}) (*Result, error) {
	defaultClientOnce.Do(func() {
		defaultClient, defaultClientErr = NewClient()
	})
	if defaultClientErr != nil {
		return nil, defaultClientErr
	}
	return defaultClient.Discover(ctx, input)
}

// validateConfig validates the client configuration
func validateConfig(config *Config) error {
	if config.Logger == nil {
		return errors.New("rssfinder: logger is required")
	}

	if config.Timeout < 0 || config.ProbeTimeout < 0 {
		return errors.New("rssfinder: timeouts cannot be negative")
	}

	if config.Retries < 0 {
		return errors.New("rssfinder: retries cannot be negative")
	}

	if config.VerifyConcurrency < 0 {
		return errors.New("rssfinder: verify concurrency cannot be negative")
	}

	return nil
}
