package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/mymanabox/internal/models"
	"github.com/codyseavey/mymanabox/internal/services"
)

// CollectionHandler serves collection views: listing, stats, grouping,
// search, duplicates, curve and exports
type CollectionHandler struct {
	store *services.CollectionStore
}

func NewCollectionHandler(store *services.CollectionStore) *CollectionHandler {
	return &CollectionHandler{store: store}
}

// copyRecords takes value copies of records. Handlers must call it inside a
// View callback: serialization happens after the read lock is released, and
// the enrichment worker mutates records in place under the write lock, so
// record pointers must never leave the lock.
func copyRecords(recs []*models.CardRecord) []models.CardRecord {
	out := make([]models.CardRecord, 0, len(recs))
	for _, rec := range recs {
		out = append(out, *rec)
	}
	return out
}

func (h *CollectionHandler) GetCollection(c *gin.Context) {
	var records []models.CardRecord
	h.store.View(func(col *models.Collection) {
		records = copyRecords(col.Records())
	})
	c.JSON(http.StatusOK, records)
}

func (h *CollectionHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Stats())
}

func (h *CollectionHandler) GetGroups(c *gin.Context) {
	kind := c.Param("kind")

	var groups map[string][]models.CardRecord
	h.store.View(func(col *models.Collection) {
		var raw map[string][]*models.CardRecord
		switch kind {
		case "color":
			raw = services.GroupByColor(col)
		case "set":
			raw = services.GroupBySet(col)
		case "rarity":
			raw = services.GroupByRarity(col)
		case "type":
			raw = services.GroupByType(col)
		default:
			return
		}
		groups = make(map[string][]models.CardRecord, len(raw))
		for label, recs := range raw {
			groups[label] = copyRecords(recs)
		}
	})
	if groups == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown grouping: " + kind})
		return
	}
	c.JSON(http.StatusOK, groups)
}

func (h *CollectionHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}
	caseSensitive := c.Query("case_sensitive") == "true"

	var matches []models.CardRecord
	h.store.View(func(col *models.Collection) {
		matches = copyRecords(services.SearchByName(col, query, caseSensitive))
	})
	c.JSON(http.StatusOK, matches)
}

func (h *CollectionHandler) GetDuplicates(c *gin.Context) {
	var dupes []models.CardRecord
	h.store.View(func(col *models.Collection) {
		dupes = copyRecords(col.Duplicates())
	})
	c.JSON(http.StatusOK, dupes)
}

func (h *CollectionHandler) GetManaCurve(c *gin.Context) {
	var curve map[int]int
	h.store.View(func(col *models.Collection) {
		curve = services.ManaCurve(col)
	})
	c.JSON(http.StatusOK, curve)
}

func (h *CollectionHandler) GetExpensive(c *gin.Context) {
	minPrice := 10.0
	if s := c.Query("min"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min price"})
			return
		}
		minPrice = v
	}

	var expensive []models.CardRecord
	h.store.View(func(col *models.Collection) {
		expensive = copyRecords(services.ExpensiveCards(col, minPrice))
	})
	c.JSON(http.StatusOK, expensive)
}

// ExportRequest selects the export flavor and destination
type ExportRequest struct {
	Path     string `json:"path" binding:"required"`
	Enriched bool   `json:"enriched"`
}

func (h *CollectionHandler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var err error
	if req.Enriched {
		err = h.store.SaveEnrichedTo(req.Path)
	} else {
		err = h.store.SaveTo(req.Path)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": req.Path})
}

func (h *CollectionHandler) Reload(c *gin.Context) {
	if err := h.store.Load(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.store.Stats())
}
