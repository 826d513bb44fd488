// ABOUTME: Command line entry point for one-off feed discovery
// ABOUTME: Discovers feeds for each URL argument and prints the results as JSON

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/jessevdk/go-flags"
	loggerInfra "github.com/oisu/rss-finder-for-smartfeed/infrastructure/logger/logrus"
	"github.com/oisu/rss-finder-for-smartfeed/rssfinder"
)

type options struct {
	Timeout     time.Duration `long:"timeout" short:"t" default:"30s" description:"Timeout for the page fetch"`
	Retries     int           `long:"retries" short:"r" default:"0" description:"Extra attempts for the page fetch"`
	UserAgent   string        `long:"user-agent" env:"RSSFINDER_USER_AGENT" description:"User-Agent header for every request"`
	FeedURL     string        `long:"feed-url" description:"Feed URL to report when a page is itself a feed without a self link"`
	Concurrency int           `long:"concurrency" short:"c" default:"0" description:"Max parallel feed verifications per URL (0 is unbounded)"`
	CacheFile   string        `long:"cache-file" env:"RSSFINDER_CACHE_FILE" description:"SQLite file that keeps results between runs"`
	CacheTTL    time.Duration `long:"cache-ttl" default:"24h" description:"How long cached results are reused"`
	Verbose     bool          `long:"verbose" short:"v" description:"Log pipeline progress to stderr"`

	Args struct {
		URLs []string `positional-arg-name:"url" required:"1"`
	} `positional-args:"yes"`
}

// outcome is one line of the JSON report
type outcome struct {
	URL    string            `json:"url"`
	Result *rssfinder.Result `json:"result,omitempty"`
	Error  string            `json:"error,omitempty"`
	Kind   string            `json:"kind,omitempty"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = "[OPTIONS] url..."

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	os.Exit(run(context.Background(), opts, os.Stdout))
}

// run returns the process exit code: 1 when every URL failed
func run(ctx context.Context, opts options, out io.Writer) int {
	clientOpts := []rssfinder.Option{
		rssfinder.WithTimeout(opts.Timeout),
		rssfinder.WithRetries(opts.Retries),
		rssfinder.WithUserAgent(opts.UserAgent),
		rssfinder.WithVerifyConcurrency(opts.Concurrency),
	}
	if opts.CacheFile != "" {
		clientOpts = append(clientOpts, rssfinder.WithSQLiteCache(opts.CacheFile, opts.CacheTTL))
	}
	if opts.Verbose {
		logger, err := loggerInfra.NewLogrusLogger(loggerInfra.Options{Level: "debug"})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		clientOpts = append(clientOpts, rssfinder.WithLogger(logger))
	}

	client, err := rssfinder.NewClient(clientOpts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer client.Close()

	outcomes := make([]outcome, len(opts.Args.URLs))
	var wg sync.WaitGroup
	for i, url := range opts.Args.URLs {
		wg.Add(1)
		go func(idx int, url string) {
			defer wg.Done()
			outcomes[idx] = discoverOne(ctx, client, url, opts.FeedURL)
		}(i, url)
	}
	wg.Wait()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(outcomes); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	for _, o := range outcomes {
		if o.Error == "" {
			return 0
		}
	}
	return 1
}

func discoverOne(ctx context.Context, client *rssfinder.Client, url, feedURL string) outcome {
	var input interface{} = url
	if feedURL != "" {
		input = rssfinder.Request{
			URL:               url,
			FeedParserOptions: rssfinder.FeedParserOptions{FeedURL: feedURL},
		}
	}

	result, err := client.Discover(ctx, input)
	if err != nil {
		return outcome{URL: url, Error: err.Error(), Kind: string(rssfinder.KindOf(err))}
	}
	return outcome{URL: url, Result: result}
}
