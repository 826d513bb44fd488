// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines server, cache, discovery and logging settings with an optional YAML file overlay

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig `yaml:"server"`

	// Cache contains cache configuration
	Cache CacheConfig `yaml:"cache"`

	// Discovery contains feed discovery settings
	Discovery DiscoveryConfig `yaml:"discovery"`

	// Log contains logging configuration
	Log LogConfig `yaml:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string `yaml:"port"`

	// RateLimit is the sustained number of requests per second allowed per client IP.
	// Zero disables rate limiting.
	RateLimit float64 `yaml:"rateLimit"`

	// RateBurst is the number of requests a client may make at once
	RateBurst int `yaml:"rateBurst"`

	// AllowedOrigins lists CORS origins; empty allows all
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory/sqlite/none)
	Type string `yaml:"type"`

	// TTL is how long discovery results are kept
	TTL time.Duration `yaml:"ttl"`

	// Redis contains Redis-specific configuration
	Redis RedisConfig `yaml:"redis"`

	// Memory contains in-memory cache configuration
	Memory MemoryConfig `yaml:"memory"`

	// SQLite contains persistent file cache configuration
	SQLite SQLiteConfig `yaml:"sqlite"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string `yaml:"address"`

	// Password is the Redis authentication password
	Password string `yaml:"password"`

	// DB is the Redis database number
	DB int `yaml:"db"`

	// KeyPrefix namespaces every key written by this service
	KeyPrefix string `yaml:"keyPrefix"`
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// CleanupInterval is how often expired entries are purged
	CleanupInterval time.Duration `yaml:"cleanupInterval"`
}

// SQLiteConfig holds file cache configuration
type SQLiteConfig struct {
	// Path is the database file
	Path string `yaml:"path"`
}

// DiscoveryConfig holds settings for the discovery pipeline
type DiscoveryConfig struct {
	// Timeout bounds the primary document fetch
	Timeout time.Duration `yaml:"timeout"`

	// ProbeTimeout bounds each favicon and feed verification request
	ProbeTimeout time.Duration `yaml:"probeTimeout"`

	// Retries is the number of extra attempts for the primary document fetch
	Retries int `yaml:"retries"`

	// UserAgent is sent with every outbound request
	UserAgent string `yaml:"userAgent"`

	// VerifyConcurrency caps parallel verification requests per call; 0 is unbounded
	VerifyConcurrency int `yaml:"verifyConcurrency"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`

	// Format is text or json
	Format string `yaml:"format"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:      "8000",
			RateLimit: 10,
			RateBurst: 20,
		},
		Cache: CacheConfig{
			Type: "memory",
			TTL:  time.Hour,
			Redis: RedisConfig{
				Address:   "localhost:6379",
				KeyPrefix: "rssfinder:",
			},
			Memory: MemoryConfig{
				CleanupInterval: 10 * time.Minute,
			},
		},
		Discovery: DiscoveryConfig{
			Timeout:      30 * time.Second,
			ProbeTimeout: 10 * time.Second,
			UserAgent:    "rss-finder/1.0 (+https://github.com/oisu/rss-finder-for-smartfeed)",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadFromEnv loads configuration from environment variables over the defaults
func LoadFromEnv() (*Config, error) {
	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the defaults, then the YAML file named by CONFIG_FILE if set, then
// environment variables. Later sources win.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile overlays the YAML file at path onto c. Keys missing from the file
// keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	var errs []error

	c.Server.Port = getEnvOrDefault("PORT", c.Server.Port)
	c.Server.RateLimit = getEnvAsFloatOrDefault("RATE_LIMIT", c.Server.RateLimit, &errs)
	c.Server.RateBurst = getEnvAsIntOrDefault("RATE_BURST", c.Server.RateBurst, &errs)
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		c.Server.AllowedOrigins = splitList(origins)
	}

	c.Cache.Type = getEnvOrDefault("CACHE_TYPE", c.Cache.Type)
	c.Cache.TTL = getEnvAsDurationOrDefault("CACHE_TTL", c.Cache.TTL, &errs)
	c.Cache.Redis.Address = getEnvOrDefault("REDIS_ADDRESS", c.Cache.Redis.Address)
	c.Cache.Redis.Password = getEnvOrDefault("REDIS_PASSWORD", c.Cache.Redis.Password)
	c.Cache.Redis.DB = getEnvAsIntOrDefault("REDIS_DB", c.Cache.Redis.DB, &errs)
	c.Cache.SQLite.Path = getEnvOrDefault("SQLITE_PATH", c.Cache.SQLite.Path)

	c.Discovery.Timeout = getEnvAsDurationOrDefault("DISCOVERY_TIMEOUT", c.Discovery.Timeout, &errs)
	c.Discovery.ProbeTimeout = getEnvAsDurationOrDefault("DISCOVERY_PROBE_TIMEOUT", c.Discovery.ProbeTimeout, &errs)
	c.Discovery.Retries = getEnvAsIntOrDefault("DISCOVERY_RETRIES", c.Discovery.Retries, &errs)
	c.Discovery.UserAgent = getEnvOrDefault("DISCOVERY_USER_AGENT", c.Discovery.UserAgent)
	c.Discovery.VerifyConcurrency = getEnvAsIntOrDefault("DISCOVERY_VERIFY_CONCURRENCY", c.Discovery.VerifyConcurrency, &errs)

	c.Log.Level = getEnvOrDefault("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnvOrDefault("LOG_FORMAT", c.Log.Format)

	return errors.Join(errs...)
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int, errs *[]error) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	return intValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64, errs *[]error) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	return floatValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration, errs *[]error) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	return duration
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.RateLimit < 0 || c.Server.RateBurst < 0 {
		return errors.New("rate limit and burst cannot be negative")
	}

	switch c.Cache.Type {
	case "redis", "memory", "sqlite", "none":
	default:
		return errors.New("cache type must be 'redis', 'memory', 'sqlite' or 'none'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Cache.Type == "sqlite" && c.Cache.SQLite.Path == "" {
		return errors.New("sqlite path cannot be empty when using sqlite cache")
	}

	if c.Discovery.Retries < 0 {
		return errors.New("discovery retries cannot be negative")
	}

	if c.Discovery.VerifyConcurrency < 0 {
		return errors.New("verify concurrency cannot be negative")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}

	return nil
}
