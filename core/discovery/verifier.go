// ABOUTME: Concurrent verification of candidate feed URLs
// ABOUTME: Keeps only candidates whose response declares an XML content type, in original order

package discovery

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/oisu/rss-finder-for-smartfeed/core/domain"
	"github.com/oisu/rss-finder-for-smartfeed/core/errors"
	"github.com/oisu/rss-finder-for-smartfeed/core/interfaces"
)

// maxProbeDrain bounds how much of a probe body is read before closing it
const maxProbeDrain = 64 << 10

// probe issues a single GET with retries disabled and returns the response
// content type. Non-2xx responses are errors.
func (s *Service) probe(ctx context.Context, target string) (string, error) {
	resp, err := s.deps.HTTPClient.Get(ctx, target, interfaces.FetchOptions{
		Retries:   0,
		Timeout:   s.config.ProbeTimeout,
		UserAgent: s.config.UserAgent,
	})
	if err != nil {
		return "", err
	}

	body := resp.Body()
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(body, maxProbeDrain))
		body.Close()
	}()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return "", &errors.HTTPStatusError{StatusCode: resp.StatusCode(), URL: target}
	}

	return resp.Header("Content-Type"), nil
}

// verifyFeeds probes every reference concurrently and waits for all of them.
func (s *Service) verifyFeeds(ctx context.Context, refs []domain.FeedReference) []domain.FeedReference {
	if len(refs) == 0 {
		return []domain.FeedReference{}
	}

	var wg sync.WaitGroup
	keep := make([]bool, len(refs))

	var semaphore chan struct{}
	if s.config.VerifyConcurrency > 0 {
		semaphore = make(chan struct{}, s.config.VerifyConcurrency)
	}

	for i, ref := range refs {
		wg.Add(1)
		go func(idx int, target string) {
			defer wg.Done()

			if semaphore != nil {
				semaphore <- struct{}{}
				defer func() { <-semaphore }()
			}

			contentType, err := s.probe(ctx, target)
			if err != nil {
				s.deps.Logger.Debug("Feed candidate dropped", map[string]interface{}{
					"url":    target,
					"reason": err.Error(),
				})
				return
			}

			if !strings.Contains(strings.ToLower(contentType), "xml") {
				s.deps.Logger.Debug("Feed candidate dropped", map[string]interface{}{
					"url":          target,
					"reason":       "content type is not xml",
					"content_type": contentType,
				})
				return
			}

			keep[idx] = true
		}(i, ref.URL)
	}

	wg.Wait()

	verified := make([]domain.FeedReference, 0, len(refs))
	for i, ref := range refs {
		if keep[i] {
			verified = append(verified, ref)
		}
	}
	return verified
}
