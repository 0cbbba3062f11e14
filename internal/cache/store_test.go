package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/codyseavey/mymanabox/internal/models"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "card_cache.json"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestStorePutGetExact(t *testing.T) {
	s := tempStore(t)

	if err := s.Put("Shock", "sta", &models.ScryfallCard{Name: "Shock", Set: "sta"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got := s.Get("Shock", "sta")
	if got == nil || got.Set != "sta" {
		t.Fatalf("expected exact hit for Shock/sta, got %+v", got)
	}
	if s.Get("Opt", "sta") != nil {
		t.Error("expected miss for a card never stored")
	}
}

func TestStoreGetAnyFallback(t *testing.T) {
	s := tempStore(t)

	if err := s.Put("Shock", "", &models.ScryfallCard{Name: "Shock", Set: "m21"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// A set-constrained lookup falls back to the unconstrained entry.
	got := s.Get("Shock", "sta")
	if got == nil || got.Set != "m21" {
		t.Fatalf("expected any-set fallback, got %+v", got)
	}
}

func TestStoreGetPrefixFallback(t *testing.T) {
	s := tempStore(t)

	if err := s.Put("Shock", "m21", &models.ScryfallCard{Name: "Shock", Set: "m21"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put("Shock", "dom", &models.ScryfallCard{Name: "Shock", Set: "dom"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Neither Shock_sta nor Shock_any exists; the sorted prefix scan picks
	// Shock_dom deterministically.
	got := s.Get("Shock", "sta")
	if got == nil || got.Set != "dom" {
		t.Fatalf("expected deterministic prefix fallback to dom, got %+v", got)
	}
}

func TestStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "card_cache.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Put("Opt", "dom", &models.ScryfallCard{Name: "Opt", Set: "dom", Rarity: "common"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Len() != 1 {
		t.Fatalf("expected 1 entry after reopen, got %d", reopened.Len())
	}
	got := reopened.Get("Opt", "dom")
	if got == nil || got.Rarity != "common" {
		t.Fatalf("entry did not survive the round trip: %+v", got)
	}
}

func TestOpenMissingFile(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "does_not_exist.json"))
	if err != nil {
		t.Fatalf("missing file should open empty, got %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d entries", s.Len())
	}
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "card_cache.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("corrupt file should be discarded, not fatal: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store after corrupt load, got %d entries", s.Len())
	}
}
