package services

import (
	"sort"

	"github.com/codyseavey/mymanabox/internal/metrics"
	"github.com/codyseavey/mymanabox/internal/models"
)

// ResolveUnitPrice computes the authoritative per-copy value of a record.
// Precedence, first hit wins:
//  1. the user's purchase price, when present and positive
//  2. the USD foil market price, when the copy is a foil finish
//  3. the plain USD market price
//  4. zero
//
// Every place that reports a value must go through this function.
func ResolveUnitPrice(rec *models.CardRecord) float64 {
	if rec.PurchasePrice != nil && *rec.PurchasePrice > 0 {
		return *rec.PurchasePrice
	}
	if rec.Prices != nil {
		if rec.Finish.IsFoil() && rec.Prices.USDFoil != nil {
			return *rec.Prices.USDFoil
		}
		if rec.Prices.USD != nil {
			return *rec.Prices.USD
		}
	}
	return 0
}

// TotalValue sums resolved unit price times quantity over the collection
func TotalValue(col *models.Collection) float64 {
	total := 0.0
	for _, rec := range col.Records() {
		total += ResolveUnitPrice(rec) * float64(rec.Quantity)
	}
	return total
}

// Stats summarizes the collection for reporting and snapshots
func Stats(col *models.Collection) models.CollectionStats {
	stats := models.CollectionStats{
		TotalCards:  col.TotalQuantity(),
		UniqueCards: col.UniqueCount(),
		TotalValue:  TotalValue(col),
	}
	for _, rec := range col.Records() {
		if rec.IsEnriched() {
			stats.Enriched++
		}
	}
	metrics.CollectionValue.Set(stats.TotalValue)
	metrics.CollectionCards.Set(float64(stats.TotalCards))
	return stats
}

// TopValuable returns the n records with the highest resolved unit price,
// most valuable first
func TopValuable(col *models.Collection, n int) []*models.CardRecord {
	records := append([]*models.CardRecord(nil), col.Records()...)
	sort.SliceStable(records, func(i, j int) bool {
		return ResolveUnitPrice(records[i]) > ResolveUnitPrice(records[j])
	})
	if n > len(records) {
		n = len(records)
	}
	return records[:n]
}

// ExpensiveCards returns records whose resolved unit price meets the
// threshold, most valuable first
func ExpensiveCards(col *models.Collection, minPrice float64) []*models.CardRecord {
	var expensive []*models.CardRecord
	for _, rec := range col.Records() {
		if ResolveUnitPrice(rec) >= minPrice {
			expensive = append(expensive, rec)
		}
	}
	sort.SliceStable(expensive, func(i, j int) bool {
		return ResolveUnitPrice(expensive[i]) > ResolveUnitPrice(expensive[j])
	})
	return expensive
}

// ManaCurve returns a histogram of converted mana cost over enriched records,
// counting copies. Records without enrichment are skipped.
func ManaCurve(col *models.Collection) map[int]int {
	curve := make(map[int]int)
	for _, rec := range col.Records() {
		if rec.CMC == nil {
			continue
		}
		curve[*rec.CMC] += rec.Quantity
	}
	return curve
}

// ValueAdjustment is an explicit, named post-processing step for market
// heuristics like "assume retail runs 15% over Scryfall". It only scales a
// reported total; it never participates in per-record price resolution.
type ValueAdjustment struct {
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
}

// Apply scales a total by the adjustment's multiplier
func (a ValueAdjustment) Apply(total float64) float64 {
	if a.Multiplier <= 0 {
		return total
	}
	return total * a.Multiplier
}
