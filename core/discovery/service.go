// ABOUTME: Discovery service orchestrating fetch, scan, resolve and verify
// ABOUTME: Provides feed discovery independent of the HTTP layer, CLI or library facade

package discovery

import (
	"context"
	"fmt"
	"io"

	"github.com/oisu/rss-finder-for-smartfeed/core/domain"
	"github.com/oisu/rss-finder-for-smartfeed/core/errors"
	"github.com/oisu/rss-finder-for-smartfeed/core/interfaces"
)

// Service runs the discovery pipeline. It keeps no state between calls and is
// safe for concurrent use.
type Service struct {
	deps   interfaces.Dependencies
	config Config
}

// NewService creates a new discovery service instance
func NewService(deps interfaces.Dependencies, config Config) *Service {
	if deps.Logger == nil {
		deps.Logger = nopLogger{}
	}
	return &Service{
		deps:   deps,
		config: config,
	}
}

// Discover finds the site metadata and verified feeds for input, which is a
// URL string, a Request, a *Request or a map[string]interface{} object.
func (s *Service) Discover(ctx context.Context, input interface{}) (*domain.DiscoveryResult, error) {
	req, err := s.parseInput(input)
	if err != nil {
		return nil, err
	}
	return s.discover(ctx, req)
}

// DiscoverURL finds the site metadata and verified feeds for a page URL
func (s *Service) DiscoverURL(ctx context.Context, url string) (*domain.DiscoveryResult, error) {
	return s.Discover(ctx, url)
}

func (s *Service) discover(ctx context.Context, req Request) (*domain.DiscoveryResult, error) {
	if !domain.IsAbsoluteURL(req.URL) {
		return nil, errors.NewInvalidURL(req.URL)
	}

	doc, err := s.fetchDocument(ctx, req)
	if err != nil {
		s.deps.Logger.Debug("Document fetch failed", map[string]interface{}{
			"url":   req.URL,
			"error": err.Error(),
		})
		return nil, errors.Normalize(err, req.URL)
	}

	site, refs, err := s.analyzeDocument(doc, req)
	if err != nil {
		return nil, errors.Normalize(err, req.URL)
	}

	refs = resolveFeedURLs(req.URL, refs)
	site = s.resolveSite(ctx, req.URL, site)
	refs = s.verifyFeeds(ctx, refs)

	s.deps.Logger.Info("Discovery completed", map[string]interface{}{
		"url":   req.URL,
		"feeds": len(refs),
	})

	return &domain.DiscoveryResult{Site: site, FeedURLs: refs}, nil
}

// document is the primary fetch as read off the wire
type document struct {
	body        []byte
	contentType string

	// truncated is set when the body was cut at MaxDocumentSize
	truncated bool
}

// fetchDocument retrieves the primary document with the caller's transport options.
func (s *Service) fetchDocument(ctx context.Context, req Request) (document, error) {
	opts := req.TransportOptions
	if opts.UserAgent == "" {
		opts.UserAgent = s.config.UserAgent
	}

	resp, err := s.deps.HTTPClient.Get(ctx, req.URL, opts)
	if err != nil {
		return document{}, err
	}
	reader := resp.Body()
	defer reader.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return document{}, &errors.HTTPStatusError{StatusCode: resp.StatusCode(), URL: req.URL}
	}

	doc := document{contentType: resp.Header("Content-Type")}
	limit := s.config.MaxDocumentSize
	if limit <= 0 {
		doc.body, err = io.ReadAll(reader)
		return doc, err
	}

	// one byte past the limit tells a full body from a cut one
	doc.body, err = io.ReadAll(io.LimitReader(reader, limit+1))
	if err != nil {
		return document{}, err
	}
	if int64(len(doc.body)) > limit {
		doc.body = doc.body[:limit]
		doc.truncated = true
	}

	return doc, nil
}

// analyzeDocument decodes and scans the document. Feed documents describe
// themselves; HTML pages yield their normalized link candidates.
func (s *Service) analyzeDocument(doc document, req Request) (domain.Site, []domain.FeedReference, error) {
	text := DecodeDocument(doc.body, doc.contentType)
	scan := ScanDocument(text)

	if scan.IsFeedDocument {
		s.deps.Logger.Debug("Document is a feed", map[string]interface{}{"url": req.URL})
		if doc.truncated {
			return domain.Site{}, nil, errors.NewTransportFailure(req.URL,
				fmt.Errorf("%w: more than %d bytes", errors.ErrDocumentTooLarge, s.config.MaxDocumentSize))
		}
		return resolveSelfFeed(text, req.FeedParserOptions)
	}

	if doc.truncated {
		s.deps.Logger.Debug("Page scanned up to the size limit", map[string]interface{}{
			"url":   req.URL,
			"limit": s.config.MaxDocumentSize,
		})
	}

	refs := normalizeCandidates(scan.Candidates, scan.Site.Title)
	if dropped := len(scan.Candidates) - len(refs); dropped > 0 {
		s.deps.Logger.Debug("Duplicate feed candidates dropped", map[string]interface{}{
			"url":     req.URL,
			"dropped": dropped,
		})
	}

	return scan.Site, refs, nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}
