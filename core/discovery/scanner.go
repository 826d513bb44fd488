// ABOUTME: Streaming document scanner that extracts site metadata and feed candidates
// ABOUTME: Tokenizes HTML once and folds open-tag, text and close-tag events into a scan state

package discovery

import (
	"regexp"
	"strings"

	"github.com/oisu/rss-finder-for-smartfeed/core/domain"
	"golang.org/x/net/html"
)

var (
	// feedLinkTypes are the <link type> values that advertise a feed
	feedLinkTypes = map[string]bool{
		"application/rss+xml":  true,
		"application/atom+xml": true,
		"application/rdf+xml":  true,
		"application/rss":      true,
		"application/atom":     true,
		"application/rdf":      true,
		"text/rss+xml":         true,
		"text/atom+xml":        true,
		"text/rdf+xml":         true,
		"text/rss":             true,
		"text/atom":            true,
		"text/rdf":             true,
	}

	iconRels = map[string]bool{
		"icon":          true,
		"shortcut icon": true,
	}

	feedContainerPattern = regexp.MustCompile(`(?i)feed|atom|rdf|rss`)
	feedAnchorPattern    = regexp.MustCompile(`(?i)(rss|atom|rdf|feeds?)/?(\?.*)?$`)

	titleReplacer = strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&amp;", "&",
		"&raquo;", "»",
		"&mdash;", "—",
		"&ndash;", "–",
		"\r", "",
		"\n", "",
	)
)

// ScanResult is what a single pass over a document yields.
type ScanResult struct {
	// Site carries the title, favicon and description found in the page.
	// URL is never set by the scanner.
	Site domain.Site

	// Candidates are feed references in document order, before normalization.
	Candidates []domain.FeedReference

	// IsFeedDocument is set when a tag name looks like a feed container.
	IsFeedDocument bool
}

// scanState accumulates everything the tag handlers learn about a document
type scanState struct {
	titleCaptureActive bool
	titleSeen          bool
	siteTitle          strings.Builder
	favicon            string
	description        string
	candidates         []domain.FeedReference
	isFeedDocument     bool
}

// ScanDocument streams decoded document text through the HTML tokenizer.
func ScanDocument(text string) ScanResult {
	var state scanState

	z := html.NewTokenizer(strings.NewReader(text))
	z.AllowCDATA(true)

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return state.result()

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			handleOpenTag(&state, tag, readAttributes(z, hasAttr))
			if tt == html.SelfClosingTagToken {
				handleCloseTag(&state, tag)
			}

		case html.TextToken:
			// raw text keeps entities; the title is unescaped once at the end
			handleText(&state, string(z.Raw()))

		case html.EndTagToken:
			name, _ := z.TagName()
			handleCloseTag(&state, string(name))
		}
	}
}

func readAttributes(z *html.Tokenizer, hasAttr bool) map[string]string {
	attrs := make(map[string]string)
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		attrs[string(key)] = string(val)
	}
	return attrs
}

func handleOpenTag(s *scanState, name string, attrs map[string]string) {
	if feedContainerPattern.MatchString(name) {
		s.isFeedDocument = true
	}

	switch name {
	case "link":
		linkType := strings.ToLower(strings.TrimSpace(attrs["type"]))
		if feedLinkTypes[linkType] {
			s.candidates = append(s.candidates, domain.FeedReference{
				Title: attrs["title"],
				URL:   attrs["href"],
			})
		}

		rel := strings.ToLower(strings.TrimSpace(attrs["rel"]))
		if iconRels[rel] || linkType == "image/x-icon" {
			s.favicon = attrs["href"]
		}

	case "a":
		href := attrs["href"]
		if href != "" && feedAnchorPattern.MatchString(href) {
			s.candidates = append(s.candidates, domain.FeedReference{URL: href})
		}

	case "meta":
		if strings.EqualFold(attrs["name"], "description") || strings.EqualFold(attrs["property"], "og:description") {
			s.description = attrs["content"]
		}

	case "title":
		if !s.titleSeen {
			s.titleSeen = true
			s.titleCaptureActive = true
		}
	}
}

func handleText(s *scanState, text string) {
	if s.titleCaptureActive {
		s.siteTitle.WriteString(text)
	}
}

func handleCloseTag(s *scanState, name string) {
	if name == "title" {
		s.titleCaptureActive = false
	}
}

func (s *scanState) result() ScanResult {
	return ScanResult{
		Site: domain.Site{
			Title:       unescapeTitle(s.siteTitle.String()),
			Favicon:     s.favicon,
			Description: s.description,
		},
		Candidates:     s.candidates,
		IsFeedDocument: s.isFeedDocument,
	}
}

// unescapeTitle decodes the handful of entities common in page titles and
// removes embedded line breaks.
func unescapeTitle(title string) string {
	return titleReplacer.Replace(title)
}
