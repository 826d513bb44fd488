// Package rssfinder finds the RSS, Atom and RDF feeds a web page advertises.
//
// Basic usage:
//
//	client, err := rssfinder.NewClient(rssfinder.WithTimeout(10 * time.Second))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := client.DiscoverURL(ctx, "https://blog.example.com")
//	if err != nil {
//		if rssfinder.IsTransportFailure(err) {
//			// the page could not be fetched
//		}
//		return err
//	}
//
//	for _, feed := range result.FeedURLs {
//		fmt.Println(feed.Title, feed.URL)
//	}
//
// Only feeds that answer with an XML content type are returned. When the page
// is itself a feed, the feed's own metadata describes the site.
package rssfinder
