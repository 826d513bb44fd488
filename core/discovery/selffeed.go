// ABOUTME: Self-feed resolution for documents that are themselves feeds
// ABOUTME: Parses RSS, Atom and RDF with gofeed and reports the feed as its own single candidate

package discovery

import (
	"regexp"

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/atom"

	"github.com/oisu/rss-finder-for-smartfeed/core/domain"
	"github.com/oisu/rss-finder-for-smartfeed/core/errors"
)

const faviconKey = "favicon"

// xmlEncodingPattern finds the encoding pseudo-attribute of a leading XML declaration
var xmlEncodingPattern = regexp.MustCompile(`^(\x{FEFF}?\s*<\?xml\b[^>]*?\bencoding\s*=\s*)(["'])[^"']*["']`)

// FeedParserOptions tunes how a fetched feed document is interpreted.
type FeedParserOptions struct {
	// FeedURL is reported as the feed's own URL when the document has no self link.
	FeedURL string `json:"feedUrl,omitempty" yaml:"feedUrl"`
}

// atomTranslator keeps the Atom <icon> element, which the default translator discards
type atomTranslator struct {
	gofeed.DefaultAtomTranslator
}

func (t *atomTranslator) Translate(feed interface{}) (*gofeed.Feed, error) {
	result, err := t.DefaultAtomTranslator.Translate(feed)
	if err != nil {
		return nil, err
	}

	if atomFeed, ok := feed.(*atom.Feed); ok && atomFeed.Icon != "" {
		if result.Custom == nil {
			result.Custom = make(map[string]string)
		}
		result.Custom[faviconKey] = atomFeed.Icon
	}

	return result, nil
}

// resolveSelfFeed parses text as a feed. On success the feed describes the
// site and is the only feed reference; a parse failure is NotAFeed.
func resolveSelfFeed(text string, opts FeedParserOptions) (domain.Site, []domain.FeedReference, error) {
	parser := gofeed.NewParser()
	parser.AtomTranslator = &atomTranslator{}

	feed, err := parser.ParseString(declareUTF8(text))
	if err != nil {
		return domain.Site{}, nil, errors.NewNotAFeed(err)
	}

	xmlURL := feed.FeedLink
	if xmlURL == "" {
		xmlURL = opts.FeedURL
	}

	site := domain.Site{
		Title:       feed.Title,
		Favicon:     feed.Custom[faviconKey],
		URL:         feed.Link,
		Description: feed.Description,
	}

	return site, []domain.FeedReference{{Title: feed.Title, URL: xmlURL}}, nil
}

// declareUTF8 rewrites the XML declaration of already decoded text so the
// parser does not decode it again from the original charset.
func declareUTF8(text string) string {
	return xmlEncodingPattern.ReplaceAllString(text, "${1}${2}UTF-8${2}")
}
