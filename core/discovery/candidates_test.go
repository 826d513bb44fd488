package discovery

import (
	"reflect"
	"testing"

	"github.com/oisu/rss-finder-for-smartfeed/core/domain"
)

func TestNormalizeCandidates_TitleFallback(t *testing.T) {
	candidates := []domain.FeedReference{
		{Title: "RSS", URL: "/rss.xml"},
		{Title: "", URL: "/comments/feed"},
		{Title: "Podcast & Shows", URL: "/podcast.xml"},
	}

	got := normalizeCandidates(candidates, "Example")

	want := []domain.FeedReference{
		{Title: "Example", URL: "/rss.xml"},
		{Title: "Podcast & Shows", URL: "/podcast.xml"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("normalizeCandidates() = %+v, want %+v", got, want)
	}
}

func TestNormalizeCandidates_FirstSeenWins(t *testing.T) {
	candidates := []domain.FeedReference{
		{Title: "Main", URL: "/rss.xml"},
		{Title: "Other", URL: "/rss.xml"},
		{Title: "Main", URL: "/atom.xml"},
		{Title: "Comments", URL: "/comments.xml"},
	}

	got := normalizeCandidates(candidates, "")

	want := []domain.FeedReference{
		{Title: "Main", URL: "/rss.xml"},
		{Title: "Comments", URL: "/comments.xml"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("normalizeCandidates() = %+v, want %+v", got, want)
	}
}

func TestNormalizeCandidates_EmptyTitlesDoNotCollide(t *testing.T) {
	candidates := []domain.FeedReference{
		{URL: "/feed"},
		{URL: "/comments/feed"},
	}

	got := normalizeCandidates(candidates, "")

	if len(got) != 2 {
		t.Errorf("normalizeCandidates() kept %d entries, want 2", len(got))
	}
}

func TestNormalizeCandidates_DropsAggregatorLinks(t *testing.T) {
	candidates := []domain.FeedReference{
		{Title: "Follow", URL: "http://cloud.feedly.com/#subscription/feed/http://ex.test/rss"},
		{Title: "Main", URL: "/rss"},
	}

	got := normalizeCandidates(candidates, "")

	want := []domain.FeedReference{{Title: "Main", URL: "/rss"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("normalizeCandidates() = %+v, want %+v", got, want)
	}
}

func TestNormalizeCandidates_Idempotent(t *testing.T) {
	candidates := []domain.FeedReference{
		{Title: "atom", URL: "feed://ex.test/atom.xml"},
		{Title: "Main", URL: "/rss.xml"},
		{Title: "Main", URL: "/rss2.xml"},
		{URL: "/rss.xml"},
		{URL: "/feeds/"},
	}

	once := normalizeCandidates(candidates, "Site")
	twice := normalizeCandidates(once, "Site")

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second pass changed the list:\n once  %+v\n twice %+v", once, twice)
	}
}

func TestRewriteFeedScheme(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"feed://ex.test/rss", "http://ex.test/rss"},
		{"FEED://ex.test/rss", "http://ex.test/rss"},
		{"feed:https://ex.test/rss", "https://ex.test/rss"},
		{"feed:http://ex.test/rss", "http://ex.test/rss"},
		{"https://ex.test/feed:1", "https://ex.test/feed:1"},
		{"/rss.xml", "/rss.xml"},
	}

	for _, tt := range tests {
		if got := rewriteFeedScheme(tt.in); got != tt.want {
			t.Errorf("rewriteFeedScheme(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeCandidates_DecodesAttributeEntitiesOnce(t *testing.T) {
	scan := ScanDocument(`<title>Site</title>
		<link type="application/rss+xml" title="a &amp;lt; b" href="/lt.xml">
		<link type="application/rss+xml" title="Q&amp;A" href="/qa.xml">`)

	got := normalizeCandidates(scan.Candidates, scan.Site.Title)

	want := []domain.FeedReference{
		{Title: "a &lt; b", URL: "/lt.xml"},
		{Title: "Q&A", URL: "/qa.xml"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("normalizeCandidates() = %+v, want %+v", got, want)
	}
}
