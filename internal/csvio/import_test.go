package csvio

import (
	"strings"
	"testing"

	"github.com/codyseavey/mymanabox/internal/models"
)

func TestReadCollection(t *testing.T) {
	input := `Name,Edition,Count,Purchase Price,Condition,Foil
Shock,STA,2,$0.25,Near Mint,
Shock,STA,1,,Near Mint,foil
Opt,DOM,4,$0.10,Lightly Played,
`
	col, err := ReadCollection(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCollection: %v", err)
	}

	// The two Shock rows differ only in finish, so they stay separate.
	if col.UniqueCount() != 3 {
		t.Fatalf("expected 3 records, got %d", col.UniqueCount())
	}
	if col.TotalQuantity() != 7 {
		t.Errorf("expected 7 total copies, got %d", col.TotalQuantity())
	}

	plain := col.Get(models.CardKey{Name: "Shock", SetCode: "STA"})
	if plain == nil {
		t.Fatal("nonfoil Shock missing")
	}
	if plain.Quantity != 2 || plain.PurchasePrice == nil || *plain.PurchasePrice != 0.25 {
		t.Errorf("nonfoil Shock parsed wrong: qty=%d price=%v", plain.Quantity, plain.PurchasePrice)
	}

	foil := col.Get(models.CardKey{Name: "Shock", SetCode: "STA", Foil: true})
	if foil == nil {
		t.Fatal("foil Shock missing")
	}
	if foil.Finish != models.FinishFoil || foil.PurchasePrice != nil {
		t.Errorf("foil Shock parsed wrong: finish=%q price=%v", foil.Finish, foil.PurchasePrice)
	}

	opt := col.Get(models.CardKey{Name: "Opt", SetCode: "DOM"})
	if opt == nil || opt.Condition != models.ConditionLightlyPlayed {
		t.Errorf("Opt condition parsed wrong: %+v", opt)
	}
}

func TestReadCollectionMergesDuplicateRows(t *testing.T) {
	input := `Name,Edition,Count,Purchase Price,Condition,Foil
Shock,STA,2,$0.25,Near Mint,
Shock,STA,3,$9.99,Near Mint,
`
	col, err := ReadCollection(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCollection: %v", err)
	}
	if col.UniqueCount() != 1 {
		t.Fatalf("expected rows to merge, got %d records", col.UniqueCount())
	}
	rec := col.Get(models.CardKey{Name: "Shock", SetCode: "STA"})
	if rec.Quantity != 5 {
		t.Errorf("merged quantity = %d, want 5", rec.Quantity)
	}
	if rec.PurchasePrice == nil || *rec.PurchasePrice != 0.25 {
		t.Errorf("merge must keep the first price, got %v", rec.PurchasePrice)
	}
}

func TestReadCollectionHeaderHandling(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:  "case insensitive headers",
			input: "name,EDITION,count\nShock,STA,1\n",
		},
		{
			name:  "extra columns ignored",
			input: "Name,Edition,Count,Tradelist Count,Tags\nShock,STA,1,0,burn\n",
		},
		{
			name:    "missing count column",
			input:   "Name,Edition\nShock,STA\n",
			wantErr: true,
		},
		{
			name:    "empty file",
			input:   "",
			wantErr: true,
		},
		{
			name:  "blank name rows skipped",
			input: "Name,Edition,Count\n,STA,1\nShock,STA,1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, err := ReadCollection(strings.NewReader(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadCollection: %v", err)
			}
			if col.UniqueCount() != 1 {
				t.Errorf("expected 1 record, got %d", col.UniqueCount())
			}
		})
	}
}

func TestReadCollectionInvalidCells(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"non-numeric count", "Name,Edition,Count\nShock,STA,two\n"},
		{"zero count", "Name,Edition,Count\nShock,STA,0\n"},
		{"bad price", "Name,Edition,Count,Purchase Price\nShock,STA,1,$abc\n"},
		{"negative price", "Name,Edition,Count,Purchase Price\nShock,STA,1,-0.25\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadCollection(strings.NewReader(tt.input)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParsePriceCell(t *testing.T) {
	tests := []struct {
		input    string
		expected *float64
		wantErr  bool
	}{
		{input: "", expected: nil},
		{input: "$12.34", expected: ptr(12.34)},
		{input: "12.34", expected: ptr(12.34)},
		{input: " $0.25 ", expected: ptr(0.25)},
		{input: "$", expected: nil},
		{input: "$-1.00", wantErr: true},
		{input: "free", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParsePrice(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParsePrice(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePrice(%q): %v", tt.input, err)
			continue
		}
		switch {
		case tt.expected == nil && got != nil:
			t.Errorf("ParsePrice(%q) = %v, want nil", tt.input, *got)
		case tt.expected != nil && (got == nil || *got != *tt.expected):
			t.Errorf("ParsePrice(%q) = %v, want %v", tt.input, got, *tt.expected)
		}
	}
}

func ptr(v float64) *float64 { return &v }
