package services

import (
	"sort"
	"strings"

	"github.com/codyseavey/mymanabox/internal/models"
)

// Color bucket labels. Every record lands in exactly one bucket.
const (
	GroupWhite      = "White"
	GroupBlue       = "Blue"
	GroupBlack      = "Black"
	GroupRed        = "Red"
	GroupGreen      = "Green"
	GroupColorless  = "Colorless"
	GroupMulticolor = "Multicolor"
)

var colorNames = map[string]string{
	"W": GroupWhite,
	"U": GroupBlue,
	"B": GroupBlack,
	"R": GroupRed,
	"G": GroupGreen,
}

// ColorGroupNames returns the color bucket labels in display order
func ColorGroupNames() []string {
	return []string{GroupWhite, GroupBlue, GroupBlack, GroupRed, GroupGreen, GroupColorless, GroupMulticolor}
}

// GroupByColor partitions records into the seven color buckets. Enriched
// records classify by color identity; unenriched records fall back to a name
// heuristic, which is approximate by nature.
func GroupByColor(col *models.Collection) map[string][]*models.CardRecord {
	groups := make(map[string][]*models.CardRecord)
	for _, rec := range col.Records() {
		label := colorLabel(rec)
		groups[label] = append(groups[label], rec)
	}
	return groups
}

func colorLabel(rec *models.CardRecord) string {
	if rec.ColorIdentity != nil {
		switch len(rec.ColorIdentity) {
		case 0:
			return GroupColorless
		case 1:
			if name, ok := colorNames[strings.ToUpper(rec.ColorIdentity[0])]; ok {
				return name
			}
			return GroupColorless
		default:
			return GroupMulticolor
		}
	}
	return colorByNameHeuristic(rec.Name)
}

// colorByNameHeuristic guesses a color bucket from card-name keywords.
// Only used when enrichment has not supplied a color identity.
func colorByNameHeuristic(name string) string {
	name = strings.ToLower(name)
	contains := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(name, w) {
				return true
			}
		}
		return false
	}
	switch {
	case contains("swamp", "black", "dark", "death", "shadow"):
		return GroupBlack
	case contains("island", "blue", "water", "counter", "draw"):
		return GroupBlue
	case contains("plains", "white", "angel", "heal", "life"):
		return GroupWhite
	case contains("mountain", "red", "fire", "lightning", "burn"):
		return GroupRed
	case contains("forest", "green", "elf", "growth", "nature"):
		return GroupGreen
	case contains("artifact", "colorless"):
		return GroupColorless
	default:
		return GroupMulticolor
	}
}

// GroupBySet partitions records by set code
func GroupBySet(col *models.Collection) map[string][]*models.CardRecord {
	groups := make(map[string][]*models.CardRecord)
	for _, rec := range col.Records() {
		groups[rec.SetCode] = append(groups[rec.SetCode], rec)
	}
	return groups
}

// Rarity tier thresholds for the price fallback, in USD
const (
	rarityTierUncommon = 0.50
	rarityTierRare     = 2.00
	rarityTierMythic   = 10.00
)

// GroupByRarity partitions records by rarity. Unenriched records fall back
// to price tiers: under $0.50 common, under $2 uncommon, under $10 rare,
// anything above mythic.
func GroupByRarity(col *models.Collection) map[string][]*models.CardRecord {
	groups := make(map[string][]*models.CardRecord)
	for _, rec := range col.Records() {
		label := rarityLabel(rec)
		groups[label] = append(groups[label], rec)
	}
	return groups
}

func rarityLabel(rec *models.CardRecord) string {
	if rec.Rarity != "" {
		return string(rec.Rarity)
	}
	price := ResolveUnitPrice(rec)
	switch {
	case price < rarityTierUncommon:
		return string(models.RarityCommon)
	case price < rarityTierRare:
		return string(models.RarityUncommon)
	case price < rarityTierMythic:
		return string(models.RarityRare)
	default:
		return string(models.RarityMythic)
	}
}

// primaryTypes is the classification order for type grouping. A type line
// like "Legendary Artifact Creature" buckets under the first entry it
// mentions.
var primaryTypes = []string{
	"Creature",
	"Planeswalker",
	"Battle",
	"Instant",
	"Sorcery",
	"Artifact",
	"Enchantment",
	"Land",
}

// GroupByType partitions records by the primary card type from the type
// line. Unenriched records fall back to a name heuristic.
func GroupByType(col *models.Collection) map[string][]*models.CardRecord {
	groups := make(map[string][]*models.CardRecord)
	for _, rec := range col.Records() {
		label := typeLabel(rec)
		groups[label] = append(groups[label], rec)
	}
	return groups
}

func typeLabel(rec *models.CardRecord) string {
	if rec.TypeLine != "" {
		// Only the part before the em dash holds card types
		line := rec.TypeLine
		if idx := strings.Index(line, "—"); idx >= 0 {
			line = line[:idx]
		}
		for _, t := range primaryTypes {
			if strings.Contains(line, t) {
				return t
			}
		}
		return "Other"
	}
	return typeByNameHeuristic(rec.Name)
}

func typeByNameHeuristic(name string) string {
	name = strings.ToLower(name)
	switch {
	case strings.Contains(name, "swamp"), strings.Contains(name, "island"),
		strings.Contains(name, "plains"), strings.Contains(name, "mountain"),
		strings.Contains(name, "forest"):
		return "Land"
	case strings.Contains(name, "bolt"), strings.Contains(name, "counterspell"):
		return "Instant"
	default:
		return "Other"
	}
}

// SearchByName returns records whose name contains the substring, preserving
// collection order
func SearchByName(col *models.Collection, substring string, caseSensitive bool) []*models.CardRecord {
	if !caseSensitive {
		substring = strings.ToLower(substring)
	}
	var matches []*models.CardRecord
	for _, rec := range col.Records() {
		name := rec.Name
		if !caseSensitive {
			name = strings.ToLower(name)
		}
		if strings.Contains(name, substring) {
			matches = append(matches, rec)
		}
	}
	return matches
}

// SortedGroupNames returns a grouping's bucket labels in a stable order:
// the fixed color order for color groups, lexical otherwise.
func SortedGroupNames(groups map[string][]*models.CardRecord) []string {
	if isColorGrouping(groups) {
		var names []string
		for _, name := range ColorGroupNames() {
			if _, ok := groups[name]; ok {
				names = append(names, name)
			}
		}
		return names
	}
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isColorGrouping(groups map[string][]*models.CardRecord) bool {
	for name := range groups {
		found := false
		for _, label := range ColorGroupNames() {
			if name == label {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return len(groups) > 0
}
