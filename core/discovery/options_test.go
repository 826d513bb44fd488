package discovery

import (
	"testing"
	"time"

	"github.com/oisu/rss-finder-for-smartfeed/core/errors"
	"github.com/oisu/rss-finder-for-smartfeed/core/interfaces"
)

func newTestServiceWithDefaults(defaults Request) *Service {
	config := DefaultConfig()
	config.Defaults = defaults
	return NewService(interfaces.Dependencies{HTTPClient: &mockHTTPClient{}}, config)
}

func TestParseInput_String(t *testing.T) {
	service := newTestServiceWithDefaults(Request{TransportOptions: interfaces.FetchOptions{Retries: 1}})

	req, err := service.parseInput("http://ex.test")
	if err != nil {
		t.Fatalf("parseInput() error = %v", err)
	}
	if req.URL != "http://ex.test" || req.TransportOptions.Retries != 1 {
		t.Errorf("parseInput() = %+v", req)
	}
}

func TestParseInput_RequestMergesOverDefaults(t *testing.T) {
	service := newTestServiceWithDefaults(Request{
		TransportOptions: interfaces.FetchOptions{
			Retries: 1,
			Timeout: 5 * time.Second,
			Headers: map[string]string{"Accept": "text/html"},
		},
	})

	req, err := service.parseInput(&Request{
		URL: "http://ex.test",
		TransportOptions: interfaces.FetchOptions{
			Retries: 3,
			Headers: map[string]string{"X-Trace": "1"},
		},
		FeedParserOptions: FeedParserOptions{FeedURL: "http://ex.test/rss"},
	})
	if err != nil {
		t.Fatalf("parseInput() error = %v", err)
	}

	if req.TransportOptions.Retries != 3 {
		t.Errorf("Retries = %d, want 3", req.TransportOptions.Retries)
	}
	if req.TransportOptions.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want default 5s", req.TransportOptions.Timeout)
	}
	if req.TransportOptions.Headers["Accept"] != "text/html" || req.TransportOptions.Headers["X-Trace"] != "1" {
		t.Errorf("Headers = %v", req.TransportOptions.Headers)
	}
	if req.FeedParserOptions.FeedURL != "http://ex.test/rss" {
		t.Errorf("FeedURL = %q", req.FeedParserOptions.FeedURL)
	}
	if _, leaked := service.config.Defaults.TransportOptions.Headers["X-Trace"]; leaked {
		t.Error("merging a request must not modify the defaults")
	}
}

func TestParseInput_PlainObject(t *testing.T) {
	service := newTestServiceWithDefaults(Request{TransportOptions: interfaces.FetchOptions{UserAgent: "default-agent"}})

	req, err := service.parseInput(map[string]interface{}{
		"url": "https://ex.test/page",
		"transportOptions": map[string]interface{}{
			"retries": 2,
		},
		"feedParserOptions": map[string]interface{}{
			"feedUrl": "https://ex.test/feed",
		},
	})
	if err != nil {
		t.Fatalf("parseInput() error = %v", err)
	}

	if req.URL != "https://ex.test/page" {
		t.Errorf("URL = %q", req.URL)
	}
	if req.TransportOptions.Retries != 2 {
		t.Errorf("Retries = %d, want 2", req.TransportOptions.Retries)
	}
	if req.TransportOptions.UserAgent != "default-agent" {
		t.Errorf("UserAgent = %q, want default to survive", req.TransportOptions.UserAgent)
	}
	if req.FeedParserOptions.FeedURL != "https://ex.test/feed" {
		t.Errorf("FeedURL = %q", req.FeedParserOptions.FeedURL)
	}
}

func TestParseInput_RejectsOtherTypes(t *testing.T) {
	service := newTestServiceWithDefaults(Request{})

	inputs := map[string]interface{}{
		"array":       []interface{}{},
		"int":         42,
		"nil":         nil,
		"nil request": (*Request)(nil),
		"bad object":  map[string]interface{}{"url": 12},
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			if _, err := service.parseInput(input); !errors.IsInvalidParameter(err) {
				t.Errorf("parseInput(%v) error = %v, want InvalidParameter", input, err)
			}
		})
	}
}
