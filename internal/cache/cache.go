// Package cache stores parsed, normalized record sets on disk so large
// datasets are not re-parsed on every invocation. Entries are
// content-addressed: the key hashes the raw CSV bytes, so any change to
// the data lands in a new entry and stale files are simply never read.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fabmetrics/oee/internal/records"
)

// keyVersion is folded into every key. Bump it when the cached Set shape
// changes so old entries miss instead of decoding into the wrong fields.
const keyVersion = "1"

// Cache is a directory of JSON-encoded record sets, one file per key.
type Cache struct {
	dir string
	mu  sync.Mutex
}

// New creates a cache instance backed by the specified directory. An empty
// dir disables the cache: Get always misses and Put is a no-op.
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// Key derives the cache key for a dataset's raw bytes.
func Key(data []byte) string {
	h := sha256.New()
	h.Write([]byte(keyVersion + "\x00")) //nolint:errcheck
	h.Write(data)                        //nolint:errcheck
	return hex.EncodeToString(h.Sum(nil))
}

// Get retrieves a cached record set if it exists.
func (c *Cache) Get(key string) (*records.Set, bool) {
	if c.dir == "" {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.cachePath(key))
	if err != nil {
		// Cache miss
		return nil, false
	}

	var set records.Set
	if err := json.Unmarshal(data, &set); err != nil {
		// Invalid cache entry, treat as miss
		return nil, false
	}

	return &set, true
}

// Put stores a record set in the cache.
func (c *Cache) Put(key string, set *records.Set) error {
	if c.dir == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling record set: %w", err)
	}

	if err := os.WriteFile(c.cachePath(key), data, 0644); err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}

	return nil
}

// Clear removes all cached entries.
func (c *Cache) Clear() error {
	if c.dir == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := os.Stat(c.dir); os.IsNotExist(err) {
		return nil
	}

	// Verify this really looks like a cache directory before removing it.
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("reading cache directory: %w", err)
	}

	if len(entries) > 0 {
		hasValidCache := false
		for _, entry := range entries {
			if entry.IsDir() {
				return fmt.Errorf("cache directory contains subdirectories - refusing to delete for safety")
			}
			if filepath.Ext(entry.Name()) == ".json" {
				hasValidCache = true
			} else {
				return fmt.Errorf("cache directory contains non-cache files - refusing to delete for safety")
			}
		}
		if !hasValidCache {
			return fmt.Errorf("no valid cache files found in directory - refusing to delete for safety")
		}
	}

	return os.RemoveAll(c.dir)
}

// cachePath returns the file path for a cache key.
func (c *Cache) cachePath(key string) string {
	return filepath.Join(c.dir, key+".json")
}
