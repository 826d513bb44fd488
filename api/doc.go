// Package api provides the HTTP API layer for the feed finder.
// It uses the Huma framework to provide automatic OpenAPI documentation,
// request/response validation, and a clean handler interface.
//
// # Architecture
//
// - server.go: Huma API configuration and setup
// - handlers/: HTTP request handlers
// - middleware/: request logging, request IDs and rate limiting
//
// The OpenAPI spec is served at /openapi.json and the Swagger UI at /docs.
//
// # Endpoints
//
//	GET  /discover?url=https://blog.example.com
//	POST /discover {"urls": ["https://a.example", "https://b.example"]}
//
// The batch endpoint always answers 200 with one entry per URL, in request
// order, each carrying either a result or an error and its kind.
//
// # Usage Example
//
//	cfg := &api.APIConfig{
//	    Logger:    logger,
//	    RateLimit: 10,
//	    RateBurst: 20,
//	}
//	humaAPI, router := api.NewAPIWithMiddleware(cfg)
//	handlers.NewDiscoverHandler(service).RegisterRoutes(humaAPI)
//
//	http.ListenAndServe(":8000", router)
//
// # Error Handling
//
// Errors use the RFC 7807 format. Discovery error kinds map to statuses:
// invalid_parameter and invalid_url give 400, not_a_feed gives 422 and
// transport gives 502.
package api
