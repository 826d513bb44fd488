// ABOUTME: First-pass candidate normalization for links found in HTML pages
// ABOUTME: Fills titles, rewrites the feed: scheme and drops duplicates and aggregator links

package discovery

import (
	"regexp"
	"strings"

	"github.com/oisu/rss-finder-for-smartfeed/core/domain"
)

var (
	placeholderTitles = map[string]bool{
		"rss":  true,
		"atom": true,
	}

	aggregatorPattern = regexp.MustCompile(`(?i)^https?://cloud\.feedly\.com/`)
)

// normalizeCandidates walks candidates in document order. The first occurrence
// of a URL or of a non-empty title wins. Titles arrive entity-decoded from the
// tokenizer and are not unescaped again.
func normalizeCandidates(candidates []domain.FeedReference, siteTitle string) []domain.FeedReference {
	seenURLs := make(map[string]bool)
	seenTitles := make(map[string]bool)
	normalized := make([]domain.FeedReference, 0, len(candidates))

	for _, candidate := range candidates {
		title := candidate.Title
		if title == "" || placeholderTitles[strings.ToLower(title)] {
			title = siteTitle
		}
		href := rewriteFeedScheme(candidate.URL)

		if seenURLs[href] || (title != "" && seenTitles[title]) {
			continue
		}
		if aggregatorPattern.MatchString(href) {
			continue
		}

		seenURLs[href] = true
		if title != "" {
			seenTitles[title] = true
		}
		normalized = append(normalized, domain.FeedReference{Title: title, URL: href})
	}

	return normalized
}

// rewriteFeedScheme maps feed://host/x to http://host/x and feed:https://host/x
// to https://host/x. Other URLs are returned unchanged.
func rewriteFeedScheme(href string) string {
	const scheme = "feed:"
	if len(href) < len(scheme) || !strings.EqualFold(href[:len(scheme)], scheme) {
		return href
	}

	rest := href[len(scheme):]
	if domain.IsAbsoluteURL(rest) {
		return rest
	}
	return "http:" + rest
}
