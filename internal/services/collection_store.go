package services

import (
	"fmt"
	"sync"

	"github.com/codyseavey/mymanabox/internal/csvio"
	"github.com/codyseavey/mymanabox/internal/models"
)

// CollectionStore owns the loaded collection on behalf of the API server.
// The background enrichment worker mutates records in place, so all access
// goes through the read/write lock.
type CollectionStore struct {
	mu      sync.RWMutex
	csvPath string
	col     *models.Collection
}

// NewCollectionStore creates a store bound to a collection CSV path
func NewCollectionStore(csvPath string) *CollectionStore {
	return &CollectionStore{
		csvPath: csvPath,
		col:     models.NewCollection(),
	}
}

// Load reads the collection from its CSV file, replacing the current one
func (s *CollectionStore) Load() error {
	col, err := csvio.LoadCollection(s.csvPath)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.col = col
	s.mu.Unlock()
	return nil
}

// SaveTo writes the current collection to path as plain CSV
func (s *CollectionStore) SaveTo(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return csvio.WriteCollection(path, s.col)
}

// SaveEnrichedTo writes the current collection to path with all enrichment
// columns
func (s *CollectionStore) SaveEnrichedTo(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return csvio.WriteEnrichedCollection(path, s.col)
}

// View runs fn under the read lock. fn must not mutate the collection.
func (s *CollectionStore) View(fn func(*models.Collection)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.col)
}

// Update runs fn under the write lock
func (s *CollectionStore) Update(fn func(*models.Collection) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.col)
}

// Stats returns collection totals under the valuation policy
func (s *CollectionStore) Stats() models.CollectionStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats(s.col)
}

// CSVPath returns the collection file path the store loads from
func (s *CollectionStore) CSVPath() string {
	return s.csvPath
}

// Empty reports whether the store holds no records
func (s *CollectionStore) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.col.UniqueCount() == 0
}

// RequireLoaded returns an error when the collection is empty, for commands
// that cannot do anything useful without one
func (s *CollectionStore) RequireLoaded() error {
	if s.Empty() {
		return fmt.Errorf("collection is empty, check %s", s.csvPath)
	}
	return nil
}
