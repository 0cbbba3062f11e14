package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/codyseavey/mymanabox/internal/models"
)

// WriteCollection serializes a collection back to the plain CSV layout.
// The file is written atomically so a failure leaves no partial output.
func WriteCollection(path string, col *models.Collection) error {
	return writeAtomic(path, func(w *csv.Writer) error {
		if err := w.Write(plainHeader()); err != nil {
			return err
		}
		for _, rec := range col.Records() {
			if err := w.Write(plainRow(rec)); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteEnrichedCollection serializes a collection with every populated
// enrichment field flattened into columns. Multi-valued fields join with
// "|"; monetary fields format as "$12.34" or stay empty; flags write "Yes"
// or stay empty.
func WriteEnrichedCollection(path string, col *models.Collection) error {
	formats := legalityFormats(col)
	return writeAtomic(path, func(w *csv.Writer) error {
		if err := w.Write(enrichedHeader(formats)); err != nil {
			return err
		}
		for _, rec := range col.Records() {
			if err := w.Write(enrichedRow(rec, formats)); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteGroups writes one plain CSV per bucket into outputDir, named after
// the bucket label
func WriteGroups(outputDir string, groups map[string][]*models.CardRecord) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	for label, records := range groups {
		if len(records) == 0 {
			continue
		}
		bucket := models.NewCollection()
		for _, rec := range records {
			bucket.Add(rec)
		}
		path := filepath.Join(outputDir, slug(label)+".csv")
		if err := WriteCollection(path, bucket); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	sort.Strings(written)
	return written, nil
}

func slug(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	label = strings.ReplaceAll(label, " ", "_")
	label = strings.ReplaceAll(label, "/", "_")
	if label == "" {
		return "unknown"
	}
	return label
}

// writeAtomic writes through a temp file in the target directory and renames
// it into place on success.
func writeAtomic(path string, fill func(*csv.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(path)+".tmp-"+uuid.New().String())
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := fill(w); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close output file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace output file: %w", err)
	}
	return nil
}

func plainHeader() []string {
	return []string{ColName, ColEdition, ColCount, ColPurchasePrice, ColCondition, ColFoil}
}

func plainRow(rec *models.CardRecord) []string {
	return []string{
		rec.Name,
		rec.SetCode,
		strconv.Itoa(rec.Quantity),
		FormatPrice(rec.PurchasePrice),
		string(rec.Condition),
		string(rec.Finish),
	}
}

// FormatPrice renders a money cell as "$12.34", or empty when absent
func FormatPrice(v *float64) string {
	if v == nil {
		return ""
	}
	return "$" + strconv.FormatFloat(*v, 'f', 2, 64)
}

func formatFlag(b bool) string {
	if b {
		return "Yes"
	}
	return ""
}

func formatIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func joinList(items []string) string {
	return strings.Join(items, "|")
}

// legalityFormats collects the union of legality formats across the
// collection, sorted for a stable column order
func legalityFormats(col *models.Collection) []string {
	seen := make(map[string]bool)
	for _, rec := range col.Records() {
		for format := range rec.Legalities {
			seen[format] = true
		}
	}
	formats := make([]string, 0, len(seen))
	for format := range seen {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	return formats
}

func enrichedHeader(formats []string) []string {
	header := []string{
		ColName, ColEdition, ColCount, ColPurchasePrice, ColCondition, ColFoil,
		"Mana Cost", "CMC", "Colors", "Color Identity", "Type Line", "Rarity",
		"Set Name", "Collector Number", "Released At", "Oracle Text",
		"Power", "Toughness", "Loyalty", "Defense", "Artist", "Flavor Text", "Keywords",
		"USD Price", "USD Foil Price", "USD Etched Price",
		"EUR Price", "EUR Foil Price", "EUR Etched Price", "TIX Price",
		"Reserved", "Digital", "Reprint", "Promo",
		"Full Art", "Textless", "Oversized", "Story Spotlight",
		"Scryfall ID", "Oracle ID", "Arena ID", "MTGO ID", "TCGPlayer ID", "Cardmarket ID",
		"EDHREC Rank", "Penny Rank", "Scryfall URI",
		"Image Small", "Image Normal", "Image Large",
		"Image PNG", "Image Art Crop", "Image Border Crop",
	}
	for _, format := range formats {
		header = append(header, "Legal: "+format)
	}
	return header
}

func enrichedRow(rec *models.CardRecord, formats []string) []string {
	var prices models.CardPrices
	if rec.Prices != nil {
		prices = *rec.Prices
	}
	var images models.CardImages
	if rec.Images != nil {
		images = *rec.Images
	}

	row := []string{
		rec.Name,
		rec.SetCode,
		strconv.Itoa(rec.Quantity),
		FormatPrice(rec.PurchasePrice),
		string(rec.Condition),
		string(rec.Finish),
		rec.ManaCost,
		formatIntPtr(rec.CMC),
		joinList(rec.Colors),
		joinList(rec.ColorIdentity),
		rec.TypeLine,
		string(rec.Rarity),
		rec.SetName,
		rec.CollectorNumber,
		rec.ReleasedAt,
		rec.OracleText,
		rec.Power,
		rec.Toughness,
		rec.Loyalty,
		rec.Defense,
		rec.Artist,
		rec.FlavorText,
		joinList(rec.Keywords),
		FormatPrice(prices.USD),
		FormatPrice(prices.USDFoil),
		FormatPrice(prices.USDEtched),
		FormatPrice(prices.EUR),
		FormatPrice(prices.EURFoil),
		FormatPrice(prices.EUREtched),
		FormatPrice(prices.Tix),
		formatFlag(rec.Reserved),
		formatFlag(rec.Digital),
		formatFlag(rec.Reprint),
		formatFlag(rec.Promo),
		formatFlag(rec.FullArt),
		formatFlag(rec.Textless),
		formatFlag(rec.Oversized),
		formatFlag(rec.StorySpotlight),
		rec.ScryfallID,
		rec.OracleID,
		formatIntPtr(rec.ArenaID),
		formatIntPtr(rec.MTGOID),
		formatIntPtr(rec.TCGPlayerID),
		formatIntPtr(rec.CardmarketID),
		formatIntPtr(rec.EDHRECRank),
		formatIntPtr(rec.PennyRank),
		rec.ScryfallURI,
		images.Small,
		images.Normal,
		images.Large,
		images.PNG,
		images.ArtCrop,
		images.BorderCrop,
	}
	for _, format := range formats {
		row = append(row, rec.Legalities[format])
	}
	return row
}
