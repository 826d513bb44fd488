// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts discovery error kinds to appropriate HTTP responses

package handlers

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/oisu/rss-finder-for-smartfeed/core/errors"
)

// toHumaError converts discovery errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	switch errors.KindOf(err) {
	case errors.KindInvalidParameter, errors.KindInvalidURL:
		return huma.Error400BadRequest(err.Error())
	case errors.KindNotAFeed:
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.KindTransport:
		// The page itself could not be fetched
		return huma.Error502BadGateway("Failed to fetch document", err)
	}

	return huma.Error500InternalServerError("Internal server error", err)
}
