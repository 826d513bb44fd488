// ABOUTME: URL resolution and finalization of the site and feed references
// ABOUTME: Makes URLs absolute, runs the overlap dedup pass and probes the default favicon

package discovery

import (
	"context"
	"net/url"
	"slices"
	"strings"

	"github.com/oisu/rss-finder-for-smartfeed/core/domain"
)

// resolveReference returns ref made absolute against base. Unparseable input
// is returned unchanged and left for verification to reject.
func resolveReference(base, ref string) string {
	if domain.IsAbsoluteURL(ref) {
		return ref
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}

	return baseURL.ResolveReference(refURL).String()
}

// resolveFeedURLs makes every reference absolute against base and removes the
// duplicates that only appear after resolution.
func resolveFeedURLs(base string, refs []domain.FeedReference) []domain.FeedReference {
	resolved := make([]domain.FeedReference, len(refs))
	for i, ref := range refs {
		if ref.URL == "" {
			ref.URL = base
		} else {
			ref.URL = resolveReference(base, ref.URL)
		}
		resolved[i] = ref
	}

	return dedupeFromEnd(resolved)
}

// dedupeFromEnd keeps the last occurrence of each URL and non-empty title,
// returning the survivors in their original order.
func dedupeFromEnd(refs []domain.FeedReference) []domain.FeedReference {
	seenURLs := make(map[string]bool, len(refs))
	seenTitles := make(map[string]bool, len(refs))
	kept := make([]domain.FeedReference, 0, len(refs))

	for i := len(refs) - 1; i >= 0; i-- {
		ref := refs[i]
		if seenURLs[ref.URL] || (ref.Title != "" && seenTitles[ref.Title]) {
			continue
		}
		seenURLs[ref.URL] = true
		if ref.Title != "" {
			seenTitles[ref.Title] = true
		}
		kept = append(kept, ref)
	}

	slices.Reverse(kept)
	return kept
}

// finalizeSiteURL defaults the site URL to base and strips trailing slashes.
func finalizeSiteURL(base string, site domain.Site) domain.Site {
	if site.URL == "" {
		site.URL = base
	} else {
		site.URL = resolveReference(base, site.URL)
	}
	site.URL = strings.TrimRight(site.URL, "/")
	return site
}

// defaultFaviconURL returns /favicon.ico at the origin of siteURL, or "" when
// siteURL has no host.
func defaultFaviconURL(siteURL string) string {
	u, err := url.Parse(siteURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host + "/favicon.ico"
}

// resolveSite finalizes the site URL and favicon. A failed favicon probe leaves
// the favicon empty and never fails discovery.
func (s *Service) resolveSite(ctx context.Context, base string, site domain.Site) domain.Site {
	site = finalizeSiteURL(base, site)

	if site.Favicon != "" {
		site.Favicon = resolveReference(site.URL, site.Favicon)
		return site
	}

	candidate := defaultFaviconURL(site.URL)
	if candidate == "" {
		return site
	}

	if _, err := s.probe(ctx, candidate); err != nil {
		s.deps.Logger.Debug("Favicon probe failed", map[string]interface{}{
			"url":   candidate,
			"error": err.Error(),
		})
		return site
	}

	site.Favicon = candidate
	return site
}
