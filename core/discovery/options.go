// ABOUTME: Discovery request options, service configuration and input parsing
// ABOUTME: Accepts a URL string, a Request or a plain object merged over configured defaults

package discovery

import (
	"encoding/json"
	"time"

	"github.com/oisu/rss-finder-for-smartfeed/core/errors"
	"github.com/oisu/rss-finder-for-smartfeed/core/interfaces"
)

// Request is the object form of a discovery call.
type Request struct {
	URL string `json:"url"`

	// TransportOptions apply to the primary document fetch only.
	TransportOptions interfaces.FetchOptions `json:"transportOptions,omitempty"`

	FeedParserOptions FeedParserOptions `json:"feedParserOptions,omitempty"`
}

// Config holds service-wide settings
type Config struct {
	// Defaults are merged under every request.
	Defaults Request

	// UserAgent is sent when a request does not set its own.
	UserAgent string

	// ProbeTimeout bounds each favicon and feed verification request. Zero leaves
	// it to the transport.
	ProbeTimeout time.Duration

	// VerifyConcurrency caps parallel verification requests. Zero is unbounded.
	VerifyConcurrency int

	// MaxDocumentSize caps how many bytes of the primary document are read.
	// Zero reads the whole body. HTML pages past the cap are scanned from the
	// bytes that fit; feed documents past the cap fail.
	MaxDocumentSize int64
}

// DefaultConfig returns the settings used when none are supplied
func DefaultConfig() Config {
	return Config{
		UserAgent:    "rss-finder/1.0 (+https://github.com/oisu/rss-finder-for-smartfeed)",
		ProbeTimeout: 10 * time.Second,
	}
}

// parseInput turns a caller's input into a Request merged over the defaults.
func (s *Service) parseInput(input interface{}) (Request, error) {
	req := cloneRequest(s.config.Defaults)

	switch v := input.(type) {
	case string:
		req.URL = v
	case Request:
		req = mergeRequest(req, v)
	case *Request:
		if v == nil {
			return Request{}, errors.NewInvalidParameter()
		}
		req = mergeRequest(req, *v)
	case map[string]interface{}:
		if v == nil {
			return Request{}, errors.NewInvalidParameter()
		}
		data, err := json.Marshal(v)
		if err != nil {
			return Request{}, errors.NewInvalidParameter()
		}
		// decoding into the defaults keeps every field the object leaves out
		if err := json.Unmarshal(data, &req); err != nil {
			return Request{}, errors.NewInvalidParameter()
		}
	default:
		return Request{}, errors.NewInvalidParameter()
	}

	return req, nil
}

func cloneRequest(r Request) Request {
	if r.TransportOptions.Headers != nil {
		headers := make(map[string]string, len(r.TransportOptions.Headers))
		for k, v := range r.TransportOptions.Headers {
			headers[k] = v
		}
		r.TransportOptions.Headers = headers
	}
	return r
}

// mergeRequest overlays the non-zero fields of override onto base
func mergeRequest(base, override Request) Request {
	if override.URL != "" {
		base.URL = override.URL
	}

	opts := override.TransportOptions
	if opts.Retries != 0 {
		base.TransportOptions.Retries = opts.Retries
	}
	if opts.Timeout != 0 {
		base.TransportOptions.Timeout = opts.Timeout
	}
	if opts.UserAgent != "" {
		base.TransportOptions.UserAgent = opts.UserAgent
	}
	if len(opts.Headers) > 0 {
		if base.TransportOptions.Headers == nil {
			base.TransportOptions.Headers = make(map[string]string, len(opts.Headers))
		}
		for k, v := range opts.Headers {
			base.TransportOptions.Headers[k] = v
		}
	}

	if override.FeedParserOptions.FeedURL != "" {
		base.FeedParserOptions.FeedURL = override.FeedParserOptions.FeedURL
	}

	return base
}
