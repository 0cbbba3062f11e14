package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/codyseavey/mymanabox/internal/metrics"
	"github.com/codyseavey/mymanabox/internal/models"
)

const (
	scryfallBaseURL        = "https://api.scryfall.com"
	scryfallDefaultTimeout = 10 * time.Second

	// Scryfall asks for 50-100ms between requests
	scryfallMinInterval = 100 * time.Millisecond

	// Backoff before the single retry after a 429
	scryfallRetryDelay = 500 * time.Millisecond

	// Size of the in-process memo of names Scryfall could not find.
	// Only hits go to the persistent cache, so without this a batch
	// re-queries every unknown name.
	notFoundCacheSize = 512
)

// ScryfallService looks up card data from the Scryfall API. It self-throttles
// to a fixed minimum inter-request interval regardless of caller behavior.
type ScryfallService struct {
	client   *http.Client
	baseURL  string
	limiter  *rate.Limiter
	notFound *lru.Cache[string, struct{}]
}

// NewScryfallService creates a Scryfall client with the default throttle
func NewScryfallService() *ScryfallService {
	return NewScryfallServiceWithOptions(scryfallBaseURL, scryfallMinInterval)
}

// NewScryfallServiceWithOptions creates a Scryfall client against a custom
// base URL and throttle interval
func NewScryfallServiceWithOptions(baseURL string, minInterval time.Duration) *ScryfallService {
	notFound, err := lru.New[string, struct{}](notFoundCacheSize)
	if err != nil {
		// Only reachable with a non-positive size
		panic(err)
	}
	return &ScryfallService{
		client: &http.Client{
			Timeout: scryfallDefaultTimeout,
		},
		baseURL:  baseURL,
		limiter:  rate.NewLimiter(rate.Every(minInterval), 1),
		notFound: notFound,
	}
}

// FetchCard retrieves a card by exact name, scoped to setCode when given.
// On a not-found response it retries with a fuzzy name match and no set
// constraint. Returns (nil, nil) when Scryfall has no such card; any other
// failure returns an error the caller may treat as a per-record miss.
func (s *ScryfallService) FetchCard(ctx context.Context, name, setCode string) (*models.ScryfallCard, error) {
	memoKey := name + "|" + setCode
	if _, ok := s.notFound.Get(memoKey); ok {
		return nil, nil
	}

	params := url.Values{}
	params.Set("exact", name)
	if setCode != "" {
		params.Set("set", setCode)
	}

	card, found, err := s.getCard(ctx, "/cards/named?"+params.Encode())
	if err != nil {
		return nil, err
	}
	if found {
		metrics.ScryfallRequestsTotal.WithLabelValues("hit").Inc()
		return card, nil
	}

	// Exact match missed; try a fuzzy match with no set constraint
	fuzzy := url.Values{}
	fuzzy.Set("fuzzy", name)
	card, found, err = s.getCard(ctx, "/cards/named?"+fuzzy.Encode())
	if err != nil {
		return nil, err
	}
	if !found {
		metrics.ScryfallRequestsTotal.WithLabelValues("not_found").Inc()
		s.notFound.Add(memoKey, struct{}{})
		return nil, nil
	}
	metrics.ScryfallRequestsTotal.WithLabelValues("hit").Inc()
	return card, nil
}

// getCard performs one throttled GET against the API, retrying once after a
// 429. The found result distinguishes a 404 from a decoded card.
func (s *ScryfallService) getCard(ctx context.Context, path string) (*models.ScryfallCard, bool, error) {
	card, status, err := s.doGet(ctx, path)
	if err == nil && status == http.StatusTooManyRequests {
		metrics.ScryfallRequestsTotal.WithLabelValues("rate_limited").Inc()
		select {
		case <-ctx.Done():
			return nil, false, ctx.Err()
		case <-time.After(scryfallRetryDelay):
		}
		card, status, err = s.doGet(ctx, path)
	}
	if err != nil {
		metrics.ScryfallRequestsTotal.WithLabelValues("error").Inc()
		return nil, false, err
	}

	switch {
	case status == http.StatusOK:
		return card, true, nil
	case status == http.StatusNotFound:
		return nil, false, nil
	default:
		metrics.ScryfallRequestsTotal.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("scryfall API returned status %d", status)
	}
}

func (s *ScryfallService) doGet(ctx context.Context, path string) (*models.ScryfallCard, int, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, 0, err
	}

	reqCtx, cancel := context.WithTimeout(ctx, scryfallDefaultTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(reqCtx, "GET", s.baseURL+path, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "MyManaBox/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query scryfall: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, nil
	}

	var card models.ScryfallCard
	if err := json.NewDecoder(resp.Body).Decode(&card); err != nil {
		return nil, 0, fmt.Errorf("failed to decode scryfall response: %w", err)
	}
	return &card, resp.StatusCode, nil
}
