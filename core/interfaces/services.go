// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines the discovery contract consumed by the API, CLI and library facade

package interfaces

import (
	"context"

	"github.com/oisu/rss-finder-for-smartfeed/core/domain"
)

// DiscoveryService finds the feeds advertised by a web page
type DiscoveryService interface {
	// Discover accepts a URL string or an options object and returns the
	// site metadata together with the verified feed references.
	Discover(ctx context.Context, input interface{}) (*domain.DiscoveryResult, error)

	// DiscoverURL is a typed shortcut for Discover with a URL string.
	DiscoverURL(ctx context.Context, url string) (*domain.DiscoveryResult, error)
}
