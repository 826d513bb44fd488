// ABOUTME: Configuration options for the rssfinder library client
// ABOUTME: Provides functional options pattern for flexible client configuration

package rssfinder

import (
	"errors"
	"time"

	"github.com/oisu/rss-finder-for-smartfeed/core/interfaces"
	httpInfra "github.com/oisu/rss-finder-for-smartfeed/infrastructure/http/standard"
)

// Option is a functional option for configuring the client
type Option func(*Config) error

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client interfaces.HTTPClient) Option {
	return func(c *Config) error {
		if client == nil {
			return errors.New("rssfinder: HTTP client cannot be nil")
		}
		c.HTTPClient = client
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		if logger == nil {
			return errors.New("rssfinder: logger cannot be nil")
		}
		c.Logger = logger
		return nil
	}
}

// WithCache caches plain URL lookups in cache for ttl
func WithCache(cache interfaces.Cache, ttl time.Duration) Option {
	return func(c *Config) error {
		c.Cache = cache
		c.CacheTTL = ttl
		return nil
	}
}

// WithMemoryCache caches plain URL lookups in process for ttl
func WithMemoryCache(ttl time.Duration) Option {
	return func(c *Config) error {
		c.Cache = DefaultMemoryCache()
		c.CacheTTL = ttl
		return nil
	}
}

// WithSQLiteCache caches plain URL lookups in the SQLite file at path for
// ttl, so results survive restarts. Call Client.Close to release the file.
func WithSQLiteCache(path string, ttl time.Duration) Option {
	return func(c *Config) error {
		cache, err := DefaultSQLiteCache(path)
		if err != nil {
			return err
		}
		c.Cache = cache
		c.CacheTTL = ttl
		return nil
	}
}

// WithTimeout bounds the primary document fetch
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		c.Timeout = timeout
		return nil
	}
}

// WithProbeTimeout bounds each verification request
func WithProbeTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		c.ProbeTimeout = timeout
		return nil
	}
}

// WithRetries sets the number of extra attempts for the primary fetch
func WithRetries(retries int) Option {
	return func(c *Config) error {
		c.Retries = retries
		return nil
	}
}

// WithUserAgent sets the User-Agent sent with every request
func WithUserAgent(userAgent string) Option {
	return func(c *Config) error {
		if userAgent != "" {
			c.UserAgent = userAgent
		}
		return nil
	}
}

// WithVerifyConcurrency caps parallel verification requests per call
func WithVerifyConcurrency(n int) Option {
	return func(c *Config) error {
		c.VerifyConcurrency = n
		return nil
	}
}

// WithQuietMode configures the client to suppress all log output
func WithQuietMode() Option {
	return func(c *Config) error {
		c.Logger = QuietLogger()
		return nil
	}
}

// defaultConfig returns the default client configuration
func defaultConfig() Config {
	return Config{
		Logger:       QuietLogger(),
		Timeout:      30 * time.Second,
		ProbeTimeout: 10 * time.Second,
		UserAgent:    httpInfra.DefaultUserAgent,
	}
}
