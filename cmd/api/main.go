// ABOUTME: Main entry point for the RSS Finder API server
// ABOUTME: Wires configuration, logging, cache and discovery together and starts the HTTP server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/oisu/rss-finder-for-smartfeed/api"
	"github.com/oisu/rss-finder-for-smartfeed/api/handlers"
	"github.com/oisu/rss-finder-for-smartfeed/api/middleware"
	"github.com/oisu/rss-finder-for-smartfeed/core/discovery"
	"github.com/oisu/rss-finder-for-smartfeed/core/interfaces"
	"github.com/oisu/rss-finder-for-smartfeed/infrastructure/cache/memory"
	"github.com/oisu/rss-finder-for-smartfeed/infrastructure/cache/redis"
	"github.com/oisu/rss-finder-for-smartfeed/infrastructure/cache/sqlite"
	stdhttp "github.com/oisu/rss-finder-for-smartfeed/infrastructure/http/standard"
	logruslogger "github.com/oisu/rss-finder-for-smartfeed/infrastructure/logger/logrus"
	"github.com/oisu/rss-finder-for-smartfeed/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := logruslogger.NewLogrusLogger(logruslogger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	logger.Info("Starting RSS Finder API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
	})

	cache, closeCache := newCache(cfg, logger)
	defer closeCache()

	httpClient := stdhttp.NewStandardHTTPClient(cfg.Discovery.Timeout).
		WithUserAgent(cfg.Discovery.UserAgent)
	if strings.EqualFold(cfg.Log.Level, "debug") {
		httpClient.WithTransport(middleware.NewLoggingRoundTripper(nil, logger))
	}

	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	discoveryConfig := discovery.DefaultConfig()
	discoveryConfig.UserAgent = cfg.Discovery.UserAgent
	discoveryConfig.ProbeTimeout = cfg.Discovery.ProbeTimeout
	discoveryConfig.VerifyConcurrency = cfg.Discovery.VerifyConcurrency
	discoveryConfig.Defaults.TransportOptions = interfaces.FetchOptions{
		Retries: cfg.Discovery.Retries,
		Timeout: cfg.Discovery.Timeout,
	}

	var service interfaces.DiscoveryService = discovery.NewService(deps, discoveryConfig)
	if cache != nil {
		service = discovery.NewCachingService(service, cache, logger, cfg.Cache.TTL)
	}

	apiConfig := &api.APIConfig{
		Logger:         logger,
		RateLimit:      cfg.Server.RateLimit,
		RateBurst:      cfg.Server.RateBurst,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}
	humaAPI, router := api.NewAPIWithMiddleware(apiConfig)
	if apiConfig.Limiter != nil {
		defer apiConfig.Limiter.Stop()
	}

	handlers.NewDiscoverHandler(service).RegisterRoutes(humaAPI)

	// Discovery makes several outbound requests, so the write timeout
	// leaves room for the primary fetch plus verification.
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Discovery.Timeout + 2*cfg.Discovery.ProbeTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	logger.Info("Server stopped", nil)
}

// newCache builds the configured result cache. A nil cache disables caching.
func newCache(cfg *config.Config, logger interfaces.Logger) (interfaces.Cache, func()) {
	switch cfg.Cache.Type {
	case "none":
		logger.Info("Result cache disabled", nil)
		return nil, func() {}
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			break
		}
		logger.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Cache.Redis.Address,
		})
		return redisCache, func() { redisCache.Close() }
	case "sqlite":
		sqliteCache, err := sqlite.NewSQLiteCache(cfg.Cache.SQLite.Path)
		if err != nil {
			logger.Error("Failed to open SQLite cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
				"path":  cfg.Cache.SQLite.Path,
			})
			break
		}
		logger.Info("Using SQLite cache", map[string]interface{}{
			"path": cfg.Cache.SQLite.Path,
		})
		return sqliteCache, func() { sqliteCache.Close() }
	}

	logger.Info("Using memory cache", map[string]interface{}{
		"cleanup_interval": cfg.Cache.Memory.CleanupInterval.String(),
	})
	return memory.NewMemoryCacheWithCleanup(cfg.Cache.Memory.CleanupInterval), func() {}
}
