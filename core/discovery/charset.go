// ABOUTME: Charset normalization for fetched documents
// ABOUTME: Decodes raw bytes into UTF-8 text from the declared charset and never fails

package discovery

import (
	"regexp"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

var (
	headerCharsetPattern = regexp.MustCompile(`(?i)\bcharset=["']?([\w\-]+)`)
	metaCharsetPattern   = regexp.MustCompile(`(?i)<meta\b[^>]*charset=["']?([\w\-]+)`)
	xmlEncodingDecl      = regexp.MustCompile(`^\x{FEFF}?\s*<\?xml\b[^>]*?\bencoding\s*=\s*["']([\w\-]+)["']`)
)

const defaultCharset = "utf-8"

// DecodeDocument converts a fetched body to UTF-8 text. The charset comes from
// the Content-Type header, then from a <meta charset> declaration, then from
// the XML declaration, and defaults to UTF-8. Unknown charsets and unmappable
// bytes degrade the text instead of returning an error.
func DecodeDocument(body []byte, contentType string) string {
	label := detectCharset(body, contentType)

	switch strings.ToLower(label) {
	case "ascii", "utf-8":
		return decodeUTF8(body)
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return decodeUTF8(body)
	}

	decoded, _, err := transform.Bytes(enc.NewDecoder(), body)
	if err != nil {
		return decodeUTF8(body)
	}

	// unmappable sequences come back as U+FFFD
	return strings.ToValidUTF8(string(decoded), "\uFFFD")
}

// detectCharset returns the charset label declared by the header or the document.
func detectCharset(body []byte, contentType string) string {
	if m := headerCharsetPattern.FindStringSubmatch(contentType); m != nil {
		return m[1]
	}

	if m := metaCharsetPattern.FindSubmatch(body); m != nil {
		return string(m[1])
	}

	if m := xmlEncodingDecl.FindSubmatch(body); m != nil {
		return string(m[1])
	}

	return defaultCharset
}

func decodeUTF8(body []byte) string {
	return strings.ToValidUTF8(string(body), "\uFFFD")
}
