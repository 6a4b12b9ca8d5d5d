// Package pagecache stores fetched listing pages between runs so repeated
// queries against the same subreddit and window don't hit the network.
package pagecache

import (
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/maypok86/otter/v2"
)

// Entry is one cached response body with its expiry.
type Entry struct {
	ExpiresAt time.Time
	Data      []byte
}

// Cache is a TTL-bounded in-memory cache of listing page bodies, keyed by
// request URL and persisted to disk as a gob file, periodically and on
// Close.
type Cache struct {
	cache      *otter.Cache[string, Entry]
	logger     *slog.Logger
	saveCancel context.CancelFunc
	dir        string
	saveWg     sync.WaitGroup
	ttl        time.Duration
	mu         sync.Mutex
}

// New opens a cache rooted at dir, loading any previously persisted entries
// that have not yet expired. The context bounds the background persistence
// goroutine.
func New(ctx context.Context, dir string, ttl time.Duration, logger *slog.Logger) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	cache := otter.Must(&otter.Options[string, Entry]{
		MaximumSize:      4_096,
		InitialCapacity:  64,
		ExpiryCalculator: otter.ExpiryWriting[string, Entry](ttl),
	})

	c := &Cache{
		cache:  cache,
		dir:    dir,
		ttl:    ttl,
		logger: logger,
	}

	if err := c.loadFromDisk(); err != nil {
		logger.Warn("failed to load page cache from disk", "error", err)
	}
	logger.Debug("page cache ready", "dir", dir, "entries", c.cache.EstimatedSize())

	c.startPeriodicSave(ctx)

	return c, nil
}

// startPeriodicSave persists the cache on a timer so entries survive even
// when the process never reaches Close.
func (c *Cache) startPeriodicSave(ctx context.Context) {
	saveCtx, cancel := context.WithCancel(ctx)
	c.saveCancel = cancel

	c.saveWg.Add(1)
	go func() {
		defer c.saveWg.Done()

		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-saveCtx.Done():
				return
			case <-ticker.C:
				if err := c.saveToDisk(); err != nil {
					c.logger.Error("periodic page cache save failed", "error", err)
				}
			}
		}
	}()
}

func key(url string) string {
	h := sha256.Sum256([]byte(url))
	return hex.EncodeToString(h[:])
}

// Get returns the cached body for url, if present and unexpired.
func (c *Cache) Get(url string) ([]byte, bool) {
	k := key(url)
	entry, found := c.cache.GetIfPresent(k)
	if !found {
		c.logger.Debug("page cache miss", "url", url)
		return nil, false
	}
	// Otter expires on its own; double-check against entries revived from disk.
	if time.Now().After(entry.ExpiresAt) {
		c.logger.Debug("page cache miss", "url", url, "reason", "expired")
		c.cache.Invalidate(k)
		return nil, false
	}
	c.logger.Debug("page cache hit", "url", url)
	return entry.Data, true
}

// Set stores a body for url with the cache's TTL.
func (c *Cache) Set(url string, data []byte) {
	c.cache.Set(key(url), Entry{
		Data:      data,
		ExpiresAt: time.Now().Add(c.ttl),
	})
}

// Len reports the approximate number of cached pages.
func (c *Cache) Len() int {
	return int(c.cache.EstimatedSize())
}

// Close stops the periodic persistence and writes a final snapshot.
func (c *Cache) Close() error {
	if c.saveCancel != nil {
		c.saveCancel()
	}
	c.saveWg.Wait()

	if err := c.saveToDisk(); err != nil {
		c.logger.Error("page cache save failed", "error", err)
		return err
	}
	return nil
}

func (c *Cache) cachePath() string {
	return filepath.Join(c.dir, "pages.gob")
}

func (c *Cache) loadFromDisk() error {
	file, err := os.Open(c.cachePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("opening cache file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			c.logger.Debug("failed to close cache file", "error", closeErr)
		}
	}()

	var entries map[string]Entry
	if err := gob.NewDecoder(file).Decode(&entries); err != nil {
		return fmt.Errorf("decoding cache file: %w", err)
	}

	now := time.Now()
	loaded := 0
	for k, entry := range entries {
		if now.Before(entry.ExpiresAt) {
			c.cache.Set(k, entry)
			loaded++
		}
	}
	c.logger.Debug("loaded page cache", "path", c.cachePath(),
		"total", len(entries), "valid", loaded)
	return nil
}

func (c *Cache) saveToDisk() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := make(map[string]Entry)
	now := time.Now()
	c.cache.All()(func(k string, entry Entry) bool {
		if now.Before(entry.ExpiresAt) {
			entries[k] = entry
		}
		return true
	})

	tempPath := c.cachePath() + ".tmp"
	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("creating temp cache file: %w", err)
	}
	defer func() {
		if removeErr := os.Remove(tempPath); removeErr != nil && !os.IsNotExist(removeErr) {
			c.logger.Debug("failed to remove temp cache file", "error", removeErr)
		}
	}()

	if err := gob.NewEncoder(file).Encode(entries); err != nil {
		_ = file.Close()
		return fmt.Errorf("encoding cache file: %w", err)
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		return fmt.Errorf("syncing cache file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing cache file: %w", err)
	}

	// Atomic swap so a crash mid-save never corrupts the previous cache.
	if err := os.Rename(tempPath, c.cachePath()); err != nil {
		return fmt.Errorf("replacing cache file: %w", err)
	}

	c.logger.Debug("page cache saved", "entries", len(entries), "path", c.cachePath())
	return nil
}
