package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/codyseavey/mymanabox/internal/models"
)

// fastScryfall builds a client against a test server with an effectively
// disabled throttle so tests do not sleep.
func fastScryfall(url string) *ScryfallService {
	return NewScryfallServiceWithOptions(url, time.Nanosecond)
}

func writeCard(w http.ResponseWriter, card models.ScryfallCard) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(card)
}

func scryfallError(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
	w.Write([]byte(`{"object":"error"}`))
}

func TestFetchCardExactMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cards/named" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("exact") != "Shock" || r.URL.Query().Get("set") != "sta" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		writeCard(w, models.ScryfallCard{Name: "Shock", Set: "sta", Rarity: "common"})
	}))
	defer server.Close()

	card, err := fastScryfall(server.URL).FetchCard(context.Background(), "Shock", "sta")
	if err != nil {
		t.Fatalf("FetchCard: %v", err)
	}
	if card == nil || card.Name != "Shock" || card.Rarity != "common" {
		t.Fatalf("unexpected card: %+v", card)
	}
}

func TestFetchCardFallsBackToFuzzy(t *testing.T) {
	var exactCalls, fuzzyCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("exact") != "" {
			atomic.AddInt32(&exactCalls, 1)
			scryfallError(w, http.StatusNotFound)
			return
		}
		if q.Get("fuzzy") != "Lightning Blot" {
			t.Errorf("unexpected fuzzy query %q", q.Get("fuzzy"))
		}
		if q.Get("set") != "" {
			t.Error("fuzzy retry must drop the set constraint")
		}
		atomic.AddInt32(&fuzzyCalls, 1)
		writeCard(w, models.ScryfallCard{Name: "Lightning Bolt", Set: "m11"})
	}))
	defer server.Close()

	card, err := fastScryfall(server.URL).FetchCard(context.Background(), "Lightning Blot", "m11")
	if err != nil {
		t.Fatalf("FetchCard: %v", err)
	}
	if card == nil || card.Name != "Lightning Bolt" {
		t.Fatalf("expected fuzzy hit, got %+v", card)
	}
	if exactCalls != 1 || fuzzyCalls != 1 {
		t.Errorf("expected 1 exact and 1 fuzzy call, got %d and %d", exactCalls, fuzzyCalls)
	}
}

func TestFetchCardNotFound(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		scryfallError(w, http.StatusNotFound)
	}))
	defer server.Close()

	svc := fastScryfall(server.URL)
	card, err := svc.FetchCard(context.Background(), "Not A Real Card", "")
	if err != nil {
		t.Fatalf("not-found must not be an error: %v", err)
	}
	if card != nil {
		t.Fatalf("expected nil card, got %+v", card)
	}
	if calls != 2 {
		t.Errorf("expected exact then fuzzy, got %d calls", calls)
	}

	// The miss is memoized: repeating the lookup makes no requests.
	card, err = svc.FetchCard(context.Background(), "Not A Real Card", "")
	if err != nil || card != nil {
		t.Fatalf("memoized miss changed result: %v, %v", card, err)
	}
	if calls != 2 {
		t.Errorf("memoized miss should not hit the API again, got %d calls", calls)
	}
}

func TestFetchCardRetriesAfterRateLimit(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			scryfallError(w, http.StatusTooManyRequests)
			return
		}
		writeCard(w, models.ScryfallCard{Name: "Shock", Set: "sta"})
	}))
	defer server.Close()

	card, err := fastScryfall(server.URL).FetchCard(context.Background(), "Shock", "sta")
	if err != nil {
		t.Fatalf("FetchCard: %v", err)
	}
	if card == nil || card.Name != "Shock" {
		t.Fatalf("expected card after retry, got %+v", card)
	}
	if calls != 2 {
		t.Errorf("expected exactly one retry, got %d calls", calls)
	}
}

func TestFetchCardServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scryfallError(w, http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := fastScryfall(server.URL).FetchCard(context.Background(), "Shock", "sta")
	if err == nil {
		t.Fatal("expected an error for a 500 response")
	}
}

func TestFetchCardContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeCard(w, models.ScryfallCard{Name: "Shock"})
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := fastScryfall(server.URL).FetchCard(ctx, "Shock", "sta")
	if err == nil {
		t.Fatal("expected an error from a cancelled context")
	}
}
