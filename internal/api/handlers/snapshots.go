package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/mymanabox/internal/models"
	"github.com/codyseavey/mymanabox/internal/services"
)

// SnapshotHandler serves collection value history
type SnapshotHandler struct {
	snapshots *services.SnapshotService
}

func NewSnapshotHandler(snapshots *services.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{snapshots: snapshots}
}

func (h *SnapshotHandler) GetHistory(c *gin.Context) {
	period := c.DefaultQuery("period", "all")

	snapshots, err := h.snapshots.History(period)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if snapshots == nil {
		snapshots = []models.CollectionValueSnapshot{}
	}
	c.JSON(http.StatusOK, models.ValueHistoryResponse{
		Snapshots: snapshots,
		Period:    period,
	})
}

func (h *SnapshotHandler) TakeSnapshot(c *gin.Context) {
	if err := h.snapshots.TakeSnapshot(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}
