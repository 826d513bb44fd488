// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the contract for dependencies required by the discovery pipeline

package interfaces

// Dependencies holds all external dependencies required by the core business logic
type Dependencies struct {
	// Cache stores discovery results; optional
	Cache Cache

	// HTTPClient fetches documents and verification probes
	HTTPClient HTTPClient

	// Logger provides structured logging
	Logger Logger
}
