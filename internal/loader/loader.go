// Package loader opens production datasets: read the CSV, parse it into
// records, normalize, with an optional content-addressed cache in front.
package loader

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"github.com/fabmetrics/oee/internal/cache"
	"github.com/fabmetrics/oee/internal/dataset"
	"github.com/fabmetrics/oee/internal/records"
)

// Open reads, parses and normalizes the dataset at path. A nil cache means
// no caching. File-not-found surfaces as an os.ErrNotExist so callers can
// give the "no dataset yet" hint instead of a raw error.
func Open(path string, c *cache.Cache) (*records.Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	return Parse(data, c)
}

// Parse parses and normalizes raw CSV bytes, consulting the cache when one
// is provided. Schema and row errors pass through untouched so callers can
// inspect them with errors.As.
func Parse(data []byte, c *cache.Cache) (*records.Set, error) {
	var key string
	if c != nil {
		key = cache.Key(data)
		if set, ok := c.Get(key); ok {
			slog.Debug("dataset cache hit", "key", key[:12])
			return set, nil
		}
	}

	table, err := dataset.ReadCSV(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}

	set, err := records.FromTable(table)
	if err != nil {
		return nil, err
	}
	set.Normalize()

	if c != nil {
		if err := c.Put(key, set); err != nil {
			slog.Warn("could not write dataset cache", "error", err)
		}
	}
	return set, nil
}
