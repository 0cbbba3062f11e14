package handlers

import (
	"testing"

	"github.com/codyseavey/mymanabox/internal/models"
)

func TestCopyRecordsDetachesFromSource(t *testing.T) {
	rec := &models.CardRecord{Name: "Shock", SetCode: "STA", Quantity: 2}
	copies := copyRecords([]*models.CardRecord{rec})
	if len(copies) != 1 {
		t.Fatalf("expected 1 copy, got %d", len(copies))
	}

	// Mutating the source afterwards, as the enrichment worker does, must
	// not show through the copy.
	rec.OracleText = "Shock deals 2 damage to any target."
	rec.Quantity = 99
	if copies[0].OracleText != "" || copies[0].Quantity != 2 {
		t.Errorf("copy aliases the source record: %+v", copies[0])
	}
}

func TestCopyRecordsEmptyInput(t *testing.T) {
	copies := copyRecords(nil)
	if copies == nil {
		t.Fatal("expected an empty slice, not nil, so JSON encodes []")
	}
	if len(copies) != 0 {
		t.Errorf("expected no copies, got %d", len(copies))
	}
}
