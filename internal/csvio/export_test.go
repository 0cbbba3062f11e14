package csvio

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/codyseavey/mymanabox/internal/models"
)

func sampleCollection() *models.Collection {
	price := 0.25
	col := models.NewCollection()
	col.Add(&models.CardRecord{
		Name: "Shock", SetCode: "STA", Quantity: 2,
		Condition: models.ConditionNearMint, PurchasePrice: &price,
	})
	col.Add(&models.CardRecord{
		Name: "Shock", SetCode: "STA", Quantity: 1,
		Condition: models.ConditionNearMint, Finish: models.FinishFoil,
	})
	return col
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	return rows
}

func TestWriteCollectionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	original := sampleCollection()

	if err := WriteCollection(path, original); err != nil {
		t.Fatalf("WriteCollection: %v", err)
	}
	reloaded, err := LoadCollection(path)
	if err != nil {
		t.Fatalf("LoadCollection: %v", err)
	}

	if reloaded.UniqueCount() != original.UniqueCount() {
		t.Fatalf("round trip lost records: %d != %d", reloaded.UniqueCount(), original.UniqueCount())
	}
	if reloaded.TotalQuantity() != original.TotalQuantity() {
		t.Errorf("round trip changed quantities: %d != %d", reloaded.TotalQuantity(), original.TotalQuantity())
	}
	for _, want := range original.Records() {
		got := reloaded.Get(want.Key())
		if got == nil {
			t.Fatalf("record %v missing after round trip", want.Key())
		}
		if got.Quantity != want.Quantity || got.Condition != want.Condition || got.Finish != want.Finish {
			t.Errorf("record %v changed: got %+v", want.Key(), got)
		}
		switch {
		case want.PurchasePrice == nil && got.PurchasePrice != nil:
			t.Errorf("record %v gained a price", want.Key())
		case want.PurchasePrice != nil && (got.PurchasePrice == nil || *got.PurchasePrice != *want.PurchasePrice):
			t.Errorf("record %v price changed", want.Key())
		}
	}
}

func TestWriteEnrichedCollection(t *testing.T) {
	usd := 0.50
	usdFoil := 20.00
	cmc := 1
	col := models.NewCollection()
	col.Add(&models.CardRecord{
		Name: "Shock", SetCode: "STA", Quantity: 1, Finish: models.FinishFoil,
		ManaCost: "{R}", CMC: &cmc,
		Colors: []string{"R"}, ColorIdentity: []string{"R"},
		TypeLine: "Instant", Rarity: models.RarityCommon,
		Keywords:   []string{"Flash", "Haste"},
		Prices:     &models.CardPrices{USD: &usd, USDFoil: &usdFoil},
		Legalities: map[string]string{"modern": "legal", "commander": "legal"},
		ScryfallID: "shock-id",
		Reprint:    true,
	})

	path := filepath.Join(t.TempDir(), "enriched.csv")
	if err := WriteEnrichedCollection(path, col); err != nil {
		t.Fatalf("WriteEnrichedCollection: %v", err)
	}

	rows := readCSV(t, path)
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d rows", len(rows))
	}
	header, row := rows[0], rows[1]
	if len(header) != len(row) {
		t.Fatalf("header has %d cells, row has %d", len(header), len(row))
	}

	cell := func(name string) string {
		for i, h := range header {
			if h == name {
				return row[i]
			}
		}
		t.Fatalf("column %q not found in header", name)
		return ""
	}

	if got := cell("USD Foil Price"); got != "$20.00" {
		t.Errorf("USD Foil Price = %q, want $20.00", got)
	}
	if got := cell("Keywords"); got != "Flash|Haste" {
		t.Errorf("Keywords = %q, want pipe-joined list", got)
	}
	if got := cell("Reprint"); got != "Yes" {
		t.Errorf("Reprint = %q, want Yes", got)
	}
	if got := cell("Reserved"); got != "" {
		t.Errorf("Reserved = %q, want empty for a false flag", got)
	}
	if got := cell("Legal: modern"); got != "legal" {
		t.Errorf("Legal: modern = %q", got)
	}
	// Legality columns come sorted by format name.
	var legalCols []string
	for _, h := range header {
		if strings.HasPrefix(h, "Legal: ") {
			legalCols = append(legalCols, h)
		}
	}
	if len(legalCols) != 2 || legalCols[0] != "Legal: commander" || legalCols[1] != "Legal: modern" {
		t.Errorf("legality columns out of order: %v", legalCols)
	}
}

func TestWriteGroups(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sorted")
	groups := map[string][]*models.CardRecord{
		"Red":  {{Name: "Shock", SetCode: "STA", Quantity: 2}},
		"Blue": {{Name: "Opt", SetCode: "DOM", Quantity: 1}},
		"Empty": nil,
	}

	written, err := WriteGroups(dir, groups)
	if err != nil {
		t.Fatalf("WriteGroups: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("expected 2 files (empty bucket skipped), got %v", written)
	}

	red, err := LoadCollection(filepath.Join(dir, "red.csv"))
	if err != nil {
		t.Fatalf("LoadCollection: %v", err)
	}
	if red.UniqueCount() != 1 || red.TotalQuantity() != 2 {
		t.Errorf("red bucket wrong: %d records, %d copies", red.UniqueCount(), red.TotalQuantity())
	}
}

func TestWriteCollectionLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	if err := WriteCollection(path, sampleCollection()); err != nil {
		t.Fatalf("WriteCollection: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.csv" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only out.csv, found %v", names)
	}
}

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice(nil); got != "" {
		t.Errorf("FormatPrice(nil) = %q, want empty", got)
	}
	v := 12.3
	if got := FormatPrice(&v); got != "$12.30" {
		t.Errorf("FormatPrice(12.3) = %q, want $12.30", got)
	}
}
