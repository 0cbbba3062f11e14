package services

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/codyseavey/mymanabox/internal/cache"
	"github.com/codyseavey/mymanabox/internal/metrics"
	"github.com/codyseavey/mymanabox/internal/models"
)

// EnrichmentService merges Scryfall data into collection records, consulting
// the persistent cache before the network.
type EnrichmentService struct {
	cache    *cache.Store
	scryfall *ScryfallService
}

// NewEnrichmentService creates an enrichment service
func NewEnrichmentService(store *cache.Store, scryfall *ScryfallService) *EnrichmentService {
	return &EnrichmentService{
		cache:    store,
		scryfall: scryfall,
	}
}

// EnrichResult reports how a batch went
type EnrichResult struct {
	Enriched  int `json:"enriched"`
	FromCache int `json:"from_cache"`
	Fetched   int `json:"fetched"`
	Failed    int `json:"failed"`
}

// EnrichCollection fills in enrichment fields for every record. Each record
// resolves against the cache first; on a miss the Scryfall client is called
// and a hit is written back through the cache before merging, so a re-run
// makes zero network calls. A single record's failure never stops the batch;
// the returned result counts successes and failures. The only error returned
// is context cancellation, with the partial result alongside it.
func (s *EnrichmentService) EnrichCollection(ctx context.Context, col *models.Collection) (EnrichResult, error) {
	start := time.Now()
	var result EnrichResult

	for _, rec := range col.Records() {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		data := s.cache.Get(rec.Name, rec.SetCode)
		if data != nil {
			result.FromCache++
			metrics.EnrichedCardsTotal.WithLabelValues("cache").Inc()
		} else {
			fetched, err := s.scryfall.FetchCard(ctx, rec.Name, rec.SetCode)
			if err != nil {
				if ctx.Err() != nil {
					return result, ctx.Err()
				}
				log.Printf("Enrichment: lookup failed for %q (%s): %v", rec.Name, rec.SetCode, err)
				result.Failed++
				metrics.EnrichmentFailuresTotal.Inc()
				continue
			}
			if fetched == nil {
				result.Failed++
				metrics.EnrichmentFailuresTotal.Inc()
				continue
			}
			if err := s.cache.Put(rec.Name, rec.SetCode, fetched); err != nil {
				log.Printf("Enrichment: failed to cache %q: %v", rec.Name, err)
			}
			data = fetched
			result.Fetched++
			metrics.EnrichedCardsTotal.WithLabelValues("api").Inc()
		}

		ApplyEnrichment(rec, data)
		result.Enriched++
	}

	metrics.EnrichmentBatchDuration.Observe(time.Since(start).Seconds())
	metrics.CacheEntries.Set(float64(s.cache.Len()))
	return result, nil
}

// EnrichFromCache merges cached records into the collection without any
// network lookups. Records the cache has not seen stay unenriched. Returns
// the number of records enriched.
func EnrichFromCache(store *cache.Store, col *models.Collection) int {
	enriched := 0
	for _, rec := range col.Records() {
		if data := store.Get(rec.Name, rec.SetCode); data != nil {
			ApplyEnrichment(rec, data)
			enriched++
			metrics.EnrichedCardsTotal.WithLabelValues("cache").Inc()
		}
	}
	return enriched
}

// ApplyEnrichment copies every enrichment field from a raw Scryfall record
// into a card record. User-owned fields (quantity, condition, finish,
// purchase price) are never touched; enrichment fields are always overwritten
// with the latest fetched values, which makes repeated enrichment idempotent
// for an unchanged source record.
func ApplyEnrichment(rec *models.CardRecord, sc *models.ScryfallCard) {
	rec.Colors = sc.Colors
	rec.ColorIdentity = sc.ColorIdentity
	rec.Rarity = models.Rarity(sc.Rarity)
	rec.TypeLine = sc.TypeLine
	rec.ManaCost = sc.ManaCost
	cmc := int(sc.CMC)
	rec.CMC = &cmc
	rec.OracleText = sc.OracleText
	rec.Power = sc.Power
	rec.Toughness = sc.Toughness
	rec.Loyalty = sc.Loyalty
	rec.Defense = sc.Defense
	rec.Artist = sc.Artist
	rec.FlavorText = sc.FlavorText
	rec.SetName = sc.SetName
	rec.CollectorNumber = sc.CollectorNumber
	rec.ReleasedAt = sc.ReleasedAt
	rec.Keywords = sc.Keywords
	rec.Prices = parsePrices(sc.Prices)
	rec.Legalities = sc.Legalities

	if imgs := sc.Images(); imgs != nil {
		rec.Images = &models.CardImages{
			Small:      imgs.Small,
			Normal:     imgs.Normal,
			Large:      imgs.Large,
			PNG:        imgs.PNG,
			ArtCrop:    imgs.ArtCrop,
			BorderCrop: imgs.BorderCrop,
		}
	} else {
		rec.Images = nil
	}

	rec.ScryfallID = sc.ID
	rec.OracleID = sc.OracleID
	rec.ArenaID = sc.ArenaID
	rec.MTGOID = sc.MTGOID
	rec.TCGPlayerID = sc.TCGPlayerID
	rec.CardmarketID = sc.CardmarketID
	rec.ScryfallURI = sc.ScryfallURI

	rec.Reserved = sc.Reserved
	rec.Digital = sc.Digital
	rec.Reprint = sc.Reprint
	rec.Promo = sc.Promo
	rec.FullArt = sc.FullArt
	rec.Textless = sc.Textless
	rec.Oversized = sc.Oversized
	rec.StorySpotlight = sc.StorySpotlight

	rec.EDHRECRank = sc.EDHRECRank
	rec.PennyRank = sc.PennyRank
}

// parsePrices converts Scryfall's decimal strings to floats. Empty strings
// (null prices on the wire) stay absent.
func parsePrices(p models.ScryfallPrices) *models.CardPrices {
	return &models.CardPrices{
		USD:       parsePrice(p.USD),
		USDFoil:   parsePrice(p.USDFoil),
		USDEtched: parsePrice(p.USDEtched),
		EUR:       parsePrice(p.EUR),
		EURFoil:   parsePrice(p.EURFoil),
		EUREtched: parsePrice(p.EUREtched),
		Tix:       parsePrice(p.Tix),
	}
}

func parsePrice(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}
