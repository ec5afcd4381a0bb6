package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"voicebook/services/summary"
	"voicebook/utils"
)

// SummaryHandler serves the persisted session summary snapshot.
type SummaryHandler struct {
	Publisher *summary.Publisher
}

func NewSummaryHandler(p *summary.Publisher) *SummaryHandler {
	return &SummaryHandler{Publisher: p}
}

// GetSummary returns the latest published snapshot, or 404 if no
// conversation has published one yet.
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	snap, err := h.Publisher.ReadLatest()
	if err != nil {
		if errors.Is(err, summary.ErrNoSummary) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No summary found"})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to read summary", err.Error())
		return
	}
	c.JSON(http.StatusOK, snap)
}

// HealthCheck is the plain readiness probe at the server root.
func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
