// ABOUTME: Huma API server configuration and setup
// ABOUTME: Wires CORS, request logging and rate limiting in front of the discovery routes

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/oisu/rss-finder-for-smartfeed/api/middleware"
	"github.com/oisu/rss-finder-for-smartfeed/core/interfaces"
	"github.com/rs/cors"
)

const (
	apiTitle   = "RSS Finder API"
	apiVersion = "1.0.0"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger interfaces.Logger

	// RateLimit is requests per second per client; zero disables limiting
	RateLimit float64
	RateBurst int

	// AllowedOrigins lists CORS origins; empty allows all
	AllowedOrigins []string

	// Limiter is set by NewAPIWithMiddleware when rate limiting is on so the
	// caller can stop it on shutdown.
	Limiter *middleware.RateLimiter
}

func corsMiddleware(origins []string) *cors.Cors {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Retry-After"},
		MaxAge:         300, // Maximum value not ignored by any of major browsers
	})
}

func humaConfig() huma.Config {
	config := huma.DefaultConfig(apiTitle, apiVersion)
	config.Info.Description = "Finds the RSS, Atom and RDF feeds a website advertises"
	return config
}

// NewAPI creates and configures a new Huma API instance
func NewAPI() (huma.API, chi.Router) {
	router := chi.NewRouter()
	router.Use(corsMiddleware(nil).Handler)

	// The OpenAPI spec is automatically available at /openapi.json
	// The Swagger UI is automatically available at /docs
	api := humachi.New(router, humaConfig())

	return api, router
}

// NewAPIWithMiddleware creates a new API with middleware configured
func NewAPIWithMiddleware(cfg *APIConfig) (huma.API, chi.Router) {
	router := chi.NewRouter()

	// CORS first so preflight requests are answered before anything else
	router.Use(corsMiddleware(cfg.AllowedOrigins).Handler)

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	if cfg.RateLimit > 0 {
		cfg.Limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
		router.Use(middleware.RateLimitMiddleware(cfg.Limiter))
	}

	api := humachi.New(router, humaConfig())

	return api, router
}
