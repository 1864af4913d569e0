package webapi

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fabmetrics/oee/internal/cache"
	"github.com/fabmetrics/oee/internal/loader"
	"github.com/fabmetrics/oee/internal/records"
)

// ErrNoDataset is returned before any dataset has been loaded or uploaded.
var ErrNoDataset = errors.New("no dataset loaded")

// Dataset is one loaded dataset plus where it came from. The record set is
// shared between requests and must be treated as read-only; analysis
// operations clone before deriving.
type Dataset struct {
	Set      *records.Set
	Origin   string
	LoadedAt time.Time
}

// DatasetStore provides access to the dataset being served.
type DatasetStore interface {
	// Snapshot returns the current dataset, or ErrNoDataset.
	Snapshot() (*Dataset, error)
	// Replace parses raw CSV data and swaps it in as the current dataset.
	Replace(data []byte, origin string) (*Dataset, error)
}

// Store holds the current dataset behind a mutex so uploads swap it
// atomically while readers keep the snapshot they started with.
type Store struct {
	cache *cache.Cache

	mu  sync.RWMutex
	cur *Dataset
}

// NewStore creates an empty store. The cache may be nil.
func NewStore(c *cache.Cache) *Store {
	return &Store{cache: c}
}

// LoadFile reads and parses a CSV file into the store.
func (s *Store) LoadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	return s.Replace(data, path)
}

// Snapshot returns the current dataset, or ErrNoDataset.
func (s *Store) Snapshot() (*Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cur == nil {
		return nil, ErrNoDataset
	}
	return s.cur, nil
}

// Replace parses raw CSV data and swaps it in as the current dataset.
// On a parse error the previous dataset stays in place.
func (s *Store) Replace(data []byte, origin string) (*Dataset, error) {
	set, err := loader.Parse(data, s.cache)
	if err != nil {
		return nil, err
	}

	d := &Dataset{Set: set, Origin: origin, LoadedAt: time.Now().UTC()}
	s.mu.Lock()
	s.cur = d
	s.mu.Unlock()
	return d, nil
}

var _ DatasetStore = (*Store)(nil)
