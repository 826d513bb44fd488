// ABOUTME: Caching decorator for discovery services
// ABOUTME: Stores successful results by URL in any interfaces.Cache backend

package discovery

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/oisu/rss-finder-for-smartfeed/core/domain"
	"github.com/oisu/rss-finder-for-smartfeed/core/interfaces"
)

const cacheKeyPrefix = "discover:"

// CachingService wraps a DiscoveryService and caches results of plain URL
// lookups. Calls carrying options bypass the cache.
type CachingService struct {
	next   interfaces.DiscoveryService
	cache  interfaces.Cache
	logger interfaces.Logger
	ttl    time.Duration
}

// NewCachingService creates a caching decorator around next
func NewCachingService(next interfaces.DiscoveryService, cache interfaces.Cache, logger interfaces.Logger, ttl time.Duration) *CachingService {
	if logger == nil {
		logger = nopLogger{}
	}
	return &CachingService{
		next:   next,
		cache:  cache,
		logger: logger,
		ttl:    ttl,
	}
}

// Discover serves string inputs through the cache
func (c *CachingService) Discover(ctx context.Context, input interface{}) (*domain.DiscoveryResult, error) {
	if url, ok := input.(string); ok {
		return c.DiscoverURL(ctx, url)
	}
	return c.next.Discover(ctx, input)
}

// DiscoverURL returns a cached result when present, otherwise discovers and stores it
func (c *CachingService) DiscoverURL(ctx context.Context, url string) (*domain.DiscoveryResult, error) {
	key := cacheKeyPrefix + url

	if data, err := c.cache.Get(ctx, key); err == nil {
		var cached domain.DiscoveryResult
		if err := json.Unmarshal(data, &cached); err == nil {
			c.logger.Debug("Discovery cache hit", map[string]interface{}{"url": url})
			return &cached, nil
		}
		c.logger.Warn("Discarding unreadable cache entry", map[string]interface{}{"key": key})
	} else if !errors.Is(err, interfaces.ErrCacheMiss) {
		c.logger.Warn("Cache read failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}

	result, err := c.next.DiscoverURL(ctx, url)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(result)
	if err != nil {
		return result, nil
	}
	if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}

	return result, nil
}
