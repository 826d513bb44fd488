// Package core contains the feed discovery logic.
// It is framework-agnostic and can be used without the HTTP API.
//
// The core package is organized into several sub-packages:
//
// - domain: Site, FeedReference and DiscoveryResult with their invariants
// - discovery: the discovery pipeline and its caching decorator
// - errors: the discovery error taxonomy
// - interfaces: Contracts for external dependencies (cache, HTTP, logger)
//
// # Usage Example
//
//	import (
//	    "github.com/oisu/rss-finder-for-smartfeed/core/discovery"
//	    "github.com/oisu/rss-finder-for-smartfeed/core/interfaces"
//	)
//
//	deps := interfaces.Dependencies{
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	service := discovery.NewService(deps, discovery.DefaultConfig())
//
//	result, err := service.Discover(ctx, "https://blog.example.com")
package core
