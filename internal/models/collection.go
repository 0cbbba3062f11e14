package models

// Collection is an ordered set of card records with at most one record per
// (name, set, foil) key. Adding a record whose key already exists merges
// quantities instead of appending a duplicate entry.
type Collection struct {
	records []*CardRecord
	index   map[CardKey]*CardRecord
}

// NewCollection creates an empty collection
func NewCollection() *Collection {
	return &Collection{
		index: make(map[CardKey]*CardRecord),
	}
}

// Add inserts a record or, if its key is already present, folds its quantity
// into the existing record. Returns the record that now owns the key.
func (c *Collection) Add(rec *CardRecord) *CardRecord {
	if rec.Quantity <= 0 {
		rec.Quantity = 1
	}
	key := rec.Key()
	if existing, ok := c.index[key]; ok {
		existing.Quantity += rec.Quantity
		// Keep the first purchase price seen; a later row's price applies
		// only if the merged record had none.
		if existing.PurchasePrice == nil && rec.PurchasePrice != nil {
			existing.PurchasePrice = rec.PurchasePrice
		}
		return existing
	}
	c.records = append(c.records, rec)
	c.index[key] = rec
	return rec
}

// Get returns the record for a key, or nil
func (c *Collection) Get(key CardKey) *CardRecord {
	return c.index[key]
}

// Remove deletes the record for a key, preserving the order of the rest
func (c *Collection) Remove(key CardKey) bool {
	rec, ok := c.index[key]
	if !ok {
		return false
	}
	delete(c.index, key)
	for i, r := range c.records {
		if r == rec {
			c.records = append(c.records[:i], c.records[i+1:]...)
			break
		}
	}
	return true
}

// Records returns the records in insertion order. The slice is shared;
// callers must not reorder it.
func (c *Collection) Records() []*CardRecord {
	return c.records
}

// UniqueCount returns the number of distinct card records
func (c *Collection) UniqueCount() int {
	return len(c.records)
}

// TotalQuantity returns the sum of quantities across all records
func (c *Collection) TotalQuantity() int {
	total := 0
	for _, r := range c.records {
		total += r.Quantity
	}
	return total
}

// Duplicates returns records with more than one copy
func (c *Collection) Duplicates() []*CardRecord {
	var dupes []*CardRecord
	for _, r := range c.records {
		if r.Quantity > 1 {
			dupes = append(dupes, r)
		}
	}
	return dupes
}

// CollectionStats summarizes a collection for reporting and snapshots
type CollectionStats struct {
	TotalCards  int     `json:"total_cards"`
	UniqueCards int     `json:"unique_cards"`
	TotalValue  float64 `json:"total_value"`
	Enriched    int     `json:"enriched"`
}
