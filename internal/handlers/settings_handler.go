package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hamarpea/voicenter-crm-backend/internal/models"
	"github.com/hamarpea/voicenter-crm-backend/internal/services"
)

type SettingsHandler struct {
	settingsService *services.SettingsService
}

func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings returns the current sync settings. The API token is masked.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings", "details": err.Error()})
		return
	}

	if settings.APIToken != "" {
		settings.APIToken = "********"
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings validates and persists new sync settings. Out-of-range
// values are rejected and nothing is saved.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var settings models.SyncSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	if err := h.settingsService.Save(settings); err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings saved"})
}
