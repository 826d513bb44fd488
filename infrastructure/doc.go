// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package.
//
// - cache/memory: in-process cache backed by go-cache
// - cache/redis: Redis cache backed by go-redis
// - http/standard: net/http client with per-call retries, timeout and headers
// - logger/logrus: structured logger backed by logrus
//
// # Cache Implementations
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "key", []byte("value"), time.Hour)
//	value, err := cache.Get(ctx, "key") // interfaces.ErrCacheMiss when absent
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{Address: "localhost:6379"})
//
// # HTTP Client
//
//	client := standard.NewStandardHTTPClient(30 * time.Second)
//	resp, err := client.Get(ctx, url, interfaces.FetchOptions{Retries: 2})
//
// Network errors and 5xx responses are retried with exponential backoff.
// The final response is returned whatever its status.
package infrastructure
