// Package cache persists Scryfall lookup results in a flat JSON file so
// repeated runs over the same collection make zero network calls.
package cache

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/codyseavey/mymanabox/internal/models"
)

// anySet is the key suffix used when a lookup had no set constraint
const anySet = "any"

// Store is a key to raw-record mapping keyed by "{name}_{set}", loaded
// wholesale at startup and flushed after each write. Entries are never
// invalidated; staleness is an accepted limitation.
type Store struct {
	mu      sync.Mutex
	path    string
	entries map[string]*models.ScryfallCard
}

// Open loads the cache file at path. A missing file yields an empty store.
// A corrupt file is logged and discarded rather than aborting the run, the
// cache being reconstructible from the API.
func Open(path string) (*Store, error) {
	s := &Store{
		path:    path,
		entries: make(map[string]*models.ScryfallCard),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read card cache %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &s.entries); err != nil {
		log.Printf("Card cache %s is corrupt, starting empty: %v", path, err)
		s.entries = make(map[string]*models.ScryfallCard)
	}
	return s, nil
}

func cacheKey(name, setCode string) string {
	if setCode == "" {
		setCode = anySet
	}
	return name + "_" + setCode
}

// Get returns the cached record for a card, or nil. Lookup order: the exact
// name+set key, then the name+"any" fallback, then any key recorded under a
// set code this cache never saw. Absence does not distinguish "no data
// available" from "not yet looked up".
func (s *Store) Get(name, setCode string) *models.ScryfallCard {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.entries[cacheKey(name, setCode)]; ok {
		return rec
	}
	if rec, ok := s.entries[cacheKey(name, anySet)]; ok {
		return rec
	}

	// Tolerate cards recorded under another set code. Keys are scanned in
	// sorted order so the fallback is deterministic.
	prefix := name + "_"
	var keys []string
	for k := range s.entries {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil
	}
	sort.Strings(keys)
	return s.entries[keys[0]]
}

// Put stores a record and flushes the file so an interrupted run keeps its
// progress.
func (s *Store) Put(name, setCode string, rec *models.ScryfallCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[cacheKey(name, setCode)] = rec
	return s.save()
}

// Len returns the number of cached entries
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Save flushes the cache to disk
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes the file atomically: marshal to a temp file in the same
// directory, then rename over the target. Caller must hold s.mu.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode card cache: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(s.path)+".tmp-"+uuid.New().String())
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write card cache: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace card cache: %w", err)
	}
	return nil
}
