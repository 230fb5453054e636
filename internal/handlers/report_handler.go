package handlers

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hamarpea/voicenter-crm-backend/internal/services/excel"
)

type ReportHandler struct {
	exportService *excel.Service
}

func NewReportHandler(exportService *excel.Service) *ReportHandler {
	return &ReportHandler{exportService: exportService}
}

// ExportCallLogs writes an .xlsx call-log report for the requested date
// range (default: the last 7 days) and serves it as a download.
func (h *ReportHandler) ExportCallLogs(c *gin.Context) {
	to := time.Now()
	from := to.AddDate(0, 0, -7)

	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' date, expected YYYY-MM-DD"})
			return
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' date, expected YYYY-MM-DD"})
			return
		}
		// Include the whole end day
		to = t.AddDate(0, 0, 1).Add(-time.Second)
	}

	if from.After(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'from' must not be after 'to'"})
		return
	}

	path, err := h.exportService.ExportCallLogs(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export call logs", "details": err.Error()})
		return
	}

	c.FileAttachment(path, filepath.Base(path))
}
