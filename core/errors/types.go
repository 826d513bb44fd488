// ABOUTME: Error taxonomy for feed discovery
// ABOUTME: Provides structured errors with a kind so callers can branch without string matching

package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a discovery failure
type Kind string

const (
	// KindInvalidParameter means the input was neither a URL string nor an options object
	KindInvalidParameter Kind = "invalid_parameter"

	// KindInvalidURL means the URL does not use the http or https scheme
	KindInvalidURL Kind = "invalid_url"

	// KindNotAFeed means the document looked like a feed but could not be parsed as one
	KindNotAFeed Kind = "not_a_feed"

	// KindTransport means the primary document fetch failed
	KindTransport Kind = "transport"
)

// ErrDocumentTooLarge is the cause of a TransportFailure for a feed document
// that exceeds the configured read limit
var ErrDocumentTooLarge = errors.New("document exceeds the size limit")

const (
	invalidParameterMessage = "Parameter `opts` must be a string or object."
	invalidURLMessage       = "Not HTTP URL is provided."
	notAFeedMessage         = "Not a feed"
)

// Error is a classified discovery failure
type Error struct {
	Kind    Kind
	Message string
	URL     string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil && e.Cause.Error() != e.Message {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewInvalidParameter reports an unsupported input type
func NewInvalidParameter() *Error {
	return &Error{Kind: KindInvalidParameter, Message: invalidParameterMessage}
}

// NewInvalidURL reports a URL without an http(s) scheme
func NewInvalidURL(url string) *Error {
	return &Error{Kind: KindInvalidURL, Message: invalidURLMessage, URL: url}
}

// NewNotAFeed reports a document that the feed parser rejected
func NewNotAFeed(cause error) *Error {
	return &Error{Kind: KindNotAFeed, Message: notAFeedMessage, Cause: cause}
}

// NewTransportFailure reports a failed primary fetch
func NewTransportFailure(url string, cause error) *Error {
	msg := "transport failure"
	if cause != nil {
		msg = cause.Error()
	}
	return &Error{Kind: KindTransport, Message: msg, URL: url, Cause: cause}
}

// HTTPStatusError is returned by transports for responses outside the 2xx range
type HTTPStatusError struct {
	StatusCode int
	URL        string
}

// Error implements the error interface
func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("response code %d (%s)", e.StatusCode, e.URL)
}

// Normalize turns any error into a structured *Error. Errors that already carry
// a kind are returned unchanged; anything else is treated as a transport failure.
func Normalize(err error, url string) error {
	if err == nil {
		return nil
	}
	var discErr *Error
	if errors.As(err, &discErr) {
		return err
	}
	return NewTransportFailure(url, err)
}

// KindOf returns the kind of err, or an empty Kind if err is not classified
func KindOf(err error) Kind {
	var discErr *Error
	if errors.As(err, &discErr) {
		return discErr.Kind
	}
	return ""
}

// IsInvalidParameter checks if an error is an invalid parameter error
func IsInvalidParameter(err error) bool {
	return KindOf(err) == KindInvalidParameter
}

// IsInvalidURL checks if an error is an invalid URL error
func IsInvalidURL(err error) bool {
	return KindOf(err) == KindInvalidURL
}

// IsNotAFeed checks if an error is a not-a-feed error
func IsNotAFeed(err error) bool {
	return KindOf(err) == KindNotAFeed
}

// IsTransportFailure checks if an error is a transport failure
func IsTransportFailure(err error) bool {
	return KindOf(err) == KindTransport
}

// IsHTTPStatus checks if an error is a non-2xx response error
func IsHTTPStatus(err error) bool {
	var statusErr *HTTPStatusError
	return errors.As(err, &statusErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
