// Package csvio loads and serializes collections in the Moxfield CSV layout.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/codyseavey/mymanabox/internal/models"
)

// Column names in the collection CSV. Matching is case-insensitive and
// unrecognized columns are ignored.
const (
	ColName          = "Name"
	ColEdition       = "Edition"
	ColCount         = "Count"
	ColPurchasePrice = "Purchase Price"
	ColCondition     = "Condition"
	ColFoil          = "Foil"
)

// LoadCollection reads a collection CSV from path. Rows sharing an identity
// key merge by quantity. Missing required columns or malformed rows abort
// the load; this is an input error, not a per-record one.
func LoadCollection(path string) (*models.Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open collection file: %w", err)
	}
	defer f.Close()

	col, err := ReadCollection(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return col, nil
}

// ReadCollection parses collection CSV content
func ReadCollection(r io.Reader) (*models.Collection, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty CSV file")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := make(map[string]int)
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{ColName, ColEdition, ColCount} {
		if _, ok := cols[strings.ToLower(required)]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	field := func(row []string, name string) string {
		idx, ok := cols[strings.ToLower(name)]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	col := models.NewCollection()
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", line, err)
		}

		name := field(row, ColName)
		if name == "" {
			continue
		}

		count := 1
		if countStr := field(row, ColCount); countStr != "" {
			count, err = strconv.Atoi(countStr)
			if err != nil || count < 1 {
				return nil, fmt.Errorf("row %d: invalid count %q", line, countStr)
			}
		}

		price, err := ParsePrice(field(row, ColPurchasePrice))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		col.Add(&models.CardRecord{
			Name:          name,
			SetCode:       field(row, ColEdition),
			Quantity:      count,
			Condition:     models.ParseCondition(field(row, ColCondition)),
			Finish:        models.ParseFinish(field(row, ColFoil)),
			PurchasePrice: price,
		})
	}
	return col, nil
}

// ParsePrice parses a money cell like "$12.34". Empty cells mean no price.
func ParsePrice(s string) (*float64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q", s)
	}
	if v < 0 {
		return nil, fmt.Errorf("negative price %q", s)
	}
	return &v, nil
}
