// ABOUTME: Discovery domain model describes a site and the feeds it advertises
// ABOUTME: Provides invariant checks for results returned to callers

package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var absoluteURLPattern = regexp.MustCompile(`(?i)^https?://`)

// IsAbsoluteURL reports whether s starts with an http or https scheme.
func IsAbsoluteURL(s string) bool {
	return absoluteURLPattern.MatchString(s)
}

// Site describes the identity of the page a discovery ran against.
// Empty strings mean the value is unknown and encode as JSON null.
type Site struct {
	// Title is the page or feed title
	Title string `json:"title" nullable:"true"`

	// Favicon is an absolute URL to the site icon
	Favicon string `json:"favicon" nullable:"true"`

	// URL is the absolute site URL without a trailing slash
	URL string `json:"url" nullable:"true"`

	// Description comes from meta description tags or the feed description
	Description string `json:"description" nullable:"true"`
}

// MarshalJSON encodes unknown values as null
func (s Site) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Title       *string `json:"title"`
		Favicon     *string `json:"favicon"`
		URL         *string `json:"url"`
		Description *string `json:"description"`
	}{
		Title:       nullIfEmpty(s.Title),
		Favicon:     nullIfEmpty(s.Favicon),
		URL:         nullIfEmpty(s.URL),
		Description: nullIfEmpty(s.Description),
	})
}

// FeedReference is one candidate syndication feed. An empty title encodes
// as JSON null.
type FeedReference struct {
	Title string `json:"title" nullable:"true"`
	URL   string `json:"url"`
}

// MarshalJSON encodes an unknown title as null
func (f FeedReference) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Title *string `json:"title"`
		URL   string  `json:"url"`
	}{
		Title: nullIfEmpty(f.Title),
		URL:   f.URL,
	})
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// DiscoveryResult is the value returned for a single discovery run.
type DiscoveryResult struct {
	Site     Site            `json:"site"`
	FeedURLs []FeedReference `json:"feedUrls"`
}

// Validate checks the invariants every returned result must satisfy.
func (r *DiscoveryResult) Validate() error {
	if !IsAbsoluteURL(r.Site.URL) {
		return fmt.Errorf("site URL %q is not absolute", r.Site.URL)
	}

	if strings.HasSuffix(r.Site.URL, "/") {
		return errors.New("site URL must not end with a slash")
	}

	if r.Site.Favicon != "" && !IsAbsoluteURL(r.Site.Favicon) {
		return fmt.Errorf("favicon %q is not absolute", r.Site.Favicon)
	}

	urls := make(map[string]bool, len(r.FeedURLs))
	titles := make(map[string]bool, len(r.FeedURLs))
	for _, ref := range r.FeedURLs {
		if !IsAbsoluteURL(ref.URL) {
			return fmt.Errorf("feed URL %q is not absolute", ref.URL)
		}
		if urls[ref.URL] {
			return fmt.Errorf("duplicate feed URL %q", ref.URL)
		}
		urls[ref.URL] = true

		if ref.Title == "" {
			continue
		}
		if titles[ref.Title] {
			return fmt.Errorf("duplicate feed title %q", ref.Title)
		}
		titles[ref.Title] = true
	}

	return nil
}
