// ABOUTME: Default implementations for library dependencies
// ABOUTME: Provides factory functions for creating default HTTP, cache and logger implementations

package rssfinder

import (
	"time"

	"github.com/oisu/rss-finder-for-smartfeed/core/interfaces"
	"github.com/oisu/rss-finder-for-smartfeed/infrastructure/cache/memory"
	"github.com/oisu/rss-finder-for-smartfeed/infrastructure/cache/sqlite"
	httpInfra "github.com/oisu/rss-finder-for-smartfeed/infrastructure/http/standard"
	loggerInfra "github.com/oisu/rss-finder-for-smartfeed/infrastructure/logger/logrus"
)

// DefaultHTTPClient creates the standard HTTP client
func DefaultHTTPClient(timeout time.Duration, userAgent string) interfaces.HTTPClient {
	return httpInfra.NewStandardHTTPClient(timeout).WithUserAgent(userAgent)
}

// DefaultMemoryCache creates a default in-memory cache
func DefaultMemoryCache() interfaces.Cache {
	return memory.NewMemoryCache()
}

// DefaultSQLiteCache opens a persistent cache at filePath
func DefaultSQLiteCache(filePath string) (interfaces.Cache, error) {
	cache, err := sqlite.NewSQLiteCache(filePath)
	if err != nil {
		return nil, err
	}
	return cache, nil
}

// DefaultLogger creates an info level text logger writing to stderr
func DefaultLogger() interfaces.Logger {
	logger, err := loggerInfra.NewLogrusLogger(loggerInfra.Options{})
	if err != nil {
		// the zero options are always valid
		panic(err)
	}
	return logger
}

// QuietLogger creates a logger that discards all output
func QuietLogger() interfaces.Logger {
	return loggerInfra.NewQuietLogger()
}
