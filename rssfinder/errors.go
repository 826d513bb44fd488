// ABOUTME: Error kinds and predicates for the rssfinder library
// ABOUTME: Lets callers branch on discovery failures without importing core packages

package rssfinder

import (
	coreerrors "github.com/oisu/rss-finder-for-smartfeed/core/errors"
)

// Error is a classified discovery failure
type Error = coreerrors.Error

// HTTPStatusError reports a primary document response outside the 2xx range
type HTTPStatusError = coreerrors.HTTPStatusError

// Kind classifies a discovery failure
type Kind = coreerrors.Kind

const (
	KindInvalidParameter = coreerrors.KindInvalidParameter
	KindInvalidURL       = coreerrors.KindInvalidURL
	KindNotAFeed         = coreerrors.KindNotAFeed
	KindTransport        = coreerrors.KindTransport
)

// KindOf returns the kind of err, or an empty Kind if err is not classified
func KindOf(err error) Kind {
	return coreerrors.KindOf(err)
}

// IsInvalidParameter checks if the input was neither a string nor an options object
func IsInvalidParameter(err error) bool {
	return coreerrors.IsInvalidParameter(err)
}

// IsInvalidURL checks if the URL did not use the http or https scheme
func IsInvalidURL(err error) bool {
	return coreerrors.IsInvalidURL(err)
}

// IsNotAFeed checks if a feed-looking document failed to parse
func IsNotAFeed(err error) bool {
	return coreerrors.IsNotAFeed(err)
}

// IsTransportFailure checks if the primary document could not be fetched
func IsTransportFailure(err error) bool {
	return coreerrors.IsTransportFailure(err)
}
