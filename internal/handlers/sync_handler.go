package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hamarpea/voicenter-crm-backend/internal/services"
	"github.com/hamarpea/voicenter-crm-backend/internal/voicenter"
)

// Lookback window for an operator-triggered sync
const manualSyncLookbackHours = 24

type SyncHandler struct {
	syncService *services.SyncService
}

func NewSyncHandler(syncService *services.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// SyncNow runs a sync cycle with a fixed 24-hour lookback and reports the
// outcome as a transient notification payload.
func (h *SyncHandler) SyncNow(c *gin.Context) {
	result, err := h.syncService.Run(c.Request.Context(), manualSyncLookbackHours)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSyncInProgress):
			c.JSON(http.StatusConflict, gin.H{"error": "A sync cycle is already running"})
		case errors.Is(err, voicenter.ErrNoAPIToken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Voicenter API token not configured"})
		default:
			var transportErr *voicenter.TransportError
			if errors.As(err, &transportErr) {
				c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to sync from Voicenter", "details": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Sync failed", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notification": gin.H{
			"title":   "Voicenter Sync",
			"message": "Call logs sync completed",
			"type":    "success",
			"sticky":  false,
		},
		"result": result,
	})
}

// Status reports when the last sync cycle completed
func (h *SyncHandler) Status(c *gin.Context) {
	lastSync, err := h.syncService.LastSyncedAt()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sync status", "details": err.Error()})
		return
	}

	var lastSyncStr *string
	if lastSync != nil {
		s := lastSync.Format(time.RFC3339)
		lastSyncStr = &s
	}
	c.JSON(http.StatusOK, gin.H{"last_synced_at": lastSyncStr})
}
