package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/mymanabox/internal/services"
)

// EnrichHandler exposes the background enrichment worker
type EnrichHandler struct {
	worker *services.EnrichWorker
}

func NewEnrichHandler(worker *services.EnrichWorker) *EnrichHandler {
	return &EnrichHandler{worker: worker}
}

// StartEnrich queues an enrichment pass. 202 on queue, 409 when one is
// already pending.
func (h *EnrichHandler) StartEnrich(c *gin.Context) {
	if !h.worker.Queue() {
		c.JSON(http.StatusConflict, gin.H{"error": "enrichment already queued"})
		return
	}
	c.JSON(http.StatusAccepted, h.worker.Status())
}

func (h *EnrichHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.worker.Status())
}
