// ABOUTME: Request logging middleware for API endpoints and outbound discovery fetches
// ABOUTME: Tags each request with an ID carried in the context and logs status and timing

package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/oisu/rss-finder-for-smartfeed/core/interfaces"
)

const slowRequestThreshold = 5 * time.Second

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.ResponseWriter.WriteHeader(code)
		rw.written = true
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// RequestIDKey is the context key for request ID
type RequestIDKey struct{}

// WithRequestID returns a copy of ctx carrying the request ID
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey{}, requestID)
}

// RequestIDFromContext returns the request ID stored in ctx, if any
func RequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(RequestIDKey{}).(string)
	return requestID
}

// RequestLoggingMiddleware creates a middleware that logs all requests. An
// incoming X-Request-ID header is reused; otherwise a new UUID is issued.
func RequestLoggingMiddleware(logger interfaces.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.New().String()
			}

			w.Header().Set("X-Request-ID", requestID)
			r = r.WithContext(WithRequestID(r.Context(), requestID))

			start := time.Now()
			wrapped := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			logger.Info("Request started", RequestLogFields(r))

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)

			completed := ResponseLogFields(wrapped.statusCode, duration)
			completed["request_id"] = requestID
			completed["method"] = r.Method
			completed["path"] = r.URL.Path
			logger.Info("Request completed", completed)

			if duration > slowRequestThreshold {
				logger.Warn("Slow request detected", map[string]interface{}{
					"request_id": requestID,
					"method":     r.Method,
					"path":       r.URL.Path,
					"duration":   duration.String(),
				})
			}

			if wrapped.statusCode >= 500 {
				logger.Error("Request failed with server error", map[string]interface{}{
					"request_id": requestID,
					"method":     r.Method,
					"path":       r.URL.Path,
					"status":     wrapped.statusCode,
				})
			}
		})
	}
}

// GetRequestID retrieves the request ID from the request context, falling
// back to the X-Request-ID header
func GetRequestID(r *http.Request) string {
	if requestID := RequestIDFromContext(r.Context()); requestID != "" {
		return requestID
	}
	return r.Header.Get("X-Request-ID")
}

// LoggingRoundTripper implements http.RoundTripper with logging. Outbound
// fetches made while serving an API request carry that request's ID.
type LoggingRoundTripper struct {
	Transport http.RoundTripper
	Logger    interfaces.Logger
}

// NewLoggingRoundTripper wraps transport, defaulting to http.DefaultTransport
func NewLoggingRoundTripper(transport http.RoundTripper, logger interfaces.Logger) *LoggingRoundTripper {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &LoggingRoundTripper{Transport: transport, Logger: logger}
}

// RoundTrip logs outgoing HTTP requests
func (t *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	requestID := GetRequestID(req)

	t.Logger.Debug("Outgoing HTTP request", map[string]interface{}{
		"request_id": requestID,
		"method":     req.Method,
		"url":        req.URL.String(),
		"host":       req.URL.Host,
	})

	resp, err := t.Transport.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		// Probe failures are routine during discovery
		t.Logger.Debug("Outgoing HTTP request failed", map[string]interface{}{
			"request_id": requestID,
			"method":     req.Method,
			"url":        req.URL.String(),
			"duration":   duration.String(),
			"error":      err.Error(),
		})
		return nil, err
	}

	t.Logger.Debug("Outgoing HTTP response", map[string]interface{}{
		"request_id":   requestID,
		"method":       req.Method,
		"url":          req.URL.String(),
		"status":       resp.StatusCode,
		"content_type": resp.Header.Get("Content-Type"),
		"duration":     duration.String(),
	})

	return resp, nil
}

// RequestLogFields extracts common log fields from a request
func RequestLogFields(r *http.Request) map[string]interface{} {
	return map[string]interface{}{
		"method":       r.Method,
		"path":         r.URL.Path,
		"query":        r.URL.RawQuery,
		"remote_ip":    extractIP(r),
		"user_agent":   r.UserAgent(),
		"request_id":   GetRequestID(r),
		"host":         r.Host,
		"proto":        r.Proto,
		"content_type": r.Header.Get("Content-Type"),
	}
}

// ResponseLogFields creates log fields for a response
func ResponseLogFields(statusCode int, duration time.Duration) map[string]interface{} {
	return map[string]interface{}{
		"status":      statusCode,
		"duration":    duration.String(),
		"duration_ms": duration.Milliseconds(),
		"status_text": fmt.Sprintf("%d %s", statusCode, http.StatusText(statusCode)),
	}
}
