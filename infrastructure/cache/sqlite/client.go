// ABOUTME: SQLite-based cache implementation for persistent discovery results
// ABOUTME: Provides a file-based cache that survives restarts of the server or CLI

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/oisu/rss-finder-for-smartfeed/core/interfaces"
)

const (
	defaultCleanupInterval = 5 * time.Minute

	// noExpiry marks entries stored without a TTL
	noExpiry int64 = 0
)

// Client implements the Cache interface using SQLite
type Client struct {
	db       *sql.DB
	filePath string
	stop     chan struct{}
	once     sync.Once
}

// NewSQLiteCache opens (or creates) the cache database at filePath
func NewSQLiteCache(filePath string) (*Client, error) {
	return NewSQLiteCacheWithCleanup(filePath, defaultCleanupInterval)
}

// NewSQLiteCacheWithCleanup is NewSQLiteCache with a custom purge interval
func NewSQLiteCacheWithCleanup(filePath string, interval time.Duration) (*Client, error) {
	if filePath == "" {
		filePath = "rssfinder-cache.db"
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	// SQLite allows one writer at a time
	db.SetMaxOpenConns(1)

	client := &Client{
		db:       db,
		filePath: filePath,
		stop:     make(chan struct{}),
	}

	if err := client.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	if interval > 0 {
		go client.cleanupRoutine(interval)
	}

	return client, nil
}

// initSchema creates the cache table if it doesn't exist
func (c *Client) initSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS cache (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			expiry INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_expiry ON cache(expiry);
	`

	_, err := c.db.Exec(query)
	return err
}

// Get retrieves a value from the cache
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.New("key cannot be empty")
	}

	var value []byte
	query := "SELECT value FROM cache WHERE key = ? AND (expiry = ? OR expiry > ?)"
	err := c.db.QueryRowContext(ctx, query, key, noExpiry, time.Now().UnixNano()).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, interfaces.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get value: %w", err)
	}

	if value == nil {
		value = []byte{}
	}
	return value, nil
}

// Set stores a value in the cache. A non-positive ttl never expires.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	expiry := noExpiry
	if ttl > 0 {
		expiry = time.Now().Add(ttl).UnixNano()
	}
	if value == nil {
		value = []byte{}
	}

	query := `
		INSERT OR REPLACE INTO cache (key, value, expiry)
		VALUES (?, ?, ?)
	`

	if _, err := c.db.ExecContext(ctx, query, key, value, expiry); err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}

	return nil
}

// Delete removes a value from the cache
func (c *Client) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	if _, err := c.db.ExecContext(ctx, "DELETE FROM cache WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete value: %w", err)
	}

	return nil
}

// cleanupRoutine periodically removes expired entries
func (c *Client) cleanupRoutine(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// cleanup removes expired entries and returns how many were dropped
func (c *Client) cleanup() int64 {
	res, err := c.db.Exec("DELETE FROM cache WHERE expiry != ? AND expiry <= ?", noExpiry, time.Now().UnixNano())
	if err != nil {
		return 0
	}
	n, _ := res.RowsAffected()
	return n
}

// Close stops the cleanup routine and closes the database connection
func (c *Client) Close() error {
	c.once.Do(func() { close(c.stop) })
	return c.db.Close()
}

// Len returns the number of stored entries, expired or not
func (c *Client) Len() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM cache").Scan(&count)
	return count, err
}
