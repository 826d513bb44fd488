// ABOUTME: Public types for the rssfinder library API
// ABOUTME: Aliases the domain and request models so callers need a single import

package rssfinder

import (
	"github.com/oisu/rss-finder-for-smartfeed/core/discovery"
	"github.com/oisu/rss-finder-for-smartfeed/core/domain"
	"github.com/oisu/rss-finder-for-smartfeed/core/interfaces"
)

// Result is the site identity plus its verified feeds
type Result = domain.DiscoveryResult

// Site describes the page a discovery ran against
type Site = domain.Site

// FeedReference is one verified feed
type FeedReference = domain.FeedReference

// Request is the object form of a discovery call
type Request = discovery.Request

// FetchOptions tunes the primary document fetch
type FetchOptions = interfaces.FetchOptions

// FeedParserOptions tunes parsing when the page is itself a feed
type FeedParserOptions = discovery.FeedParserOptions
