// Package discovery finds the RSS, Atom and RDF feeds advertised by a web page.
//
// A discovery call fetches the page, decodes it to UTF-8, scans it once for
// <link>, <a>, <meta> and <title> elements, and then either treats the document
// as a feed in its own right or normalizes the link candidates it found. Feed
// URLs are made absolute, deduplicated and verified concurrently; only those
// answering with an XML content type are returned.
//
//	service := discovery.NewService(deps, discovery.DefaultConfig())
//	result, err := service.DiscoverURL(ctx, "https://example.com")
//	if errors.IsTransportFailure(err) {
//		// the page could not be fetched
//	}
//	for _, feed := range result.FeedURLs {
//		fmt.Println(feed.Title, feed.URL)
//	}
package discovery
