package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hamarpea/voicenter-crm-backend/internal/database/repository"
	"github.com/hamarpea/voicenter-crm-backend/internal/models"
)

type CallLogHandler struct {
	callLogRepo *repository.CallLogRepository
}

func NewCallLogHandler(db *gorm.DB) *CallLogHandler {
	return &CallLogHandler{
		callLogRepo: repository.NewCallLogRepository(db),
	}
}

// ListCalls returns call logs, newest first, narrowed by query filters
func (h *CallLogHandler) ListCalls(c *gin.Context) {
	filter := repository.CallLogFilter{
		ContactID:     c.Query("contact_id"),
		LeadID:        c.Query("lead_id"),
		Direction:     c.Query("direction"),
		MissedOnly:    c.Query("missed") == "true",
		NeedsFollowup: c.Query("needs_followup") == "true",
		Limit:         100,
	}

	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 1000 {
			filter.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			filter.Offset = n
		}
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' date, expected RFC3339"})
			return
		}
		filter.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' date, expected RFC3339"})
			return
		}
		filter.To = &t
	}

	calls, err := h.callLogRepo.List(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list calls", "details": err.Error()})
		return
	}

	responses := make([]*models.CallLogResponse, 0, len(calls))
	for _, call := range calls {
		responses = append(responses, call.ToResponse())
	}
	c.JSON(http.StatusOK, responses)
}

// GetCall returns one call log by id
func (h *CallLogHandler) GetCall(c *gin.Context) {
	call, err := h.callLogRepo.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Call not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get call", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, call.ToResponse())
}

// GetRecording returns the call's recording URL
func (h *CallLogHandler) GetRecording(c *gin.Context) {
	call, err := h.callLogRepo.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Call not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get call", "details": err.Error()})
		return
	}

	if call.RecordURL == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "No recording URL available for this call"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"record_url": call.RecordURL})
}

// MarkFollowupDone marks a call's follow-up as completed
func (h *CallLogHandler) MarkFollowupDone(c *gin.Context) {
	call, err := h.callLogRepo.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Call not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get call", "details": err.Error()})
		return
	}

	call.FollowupDone = true
	call.NeedsFollowup = false
	if err := h.callLogRepo.Update(call); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update call", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, call.ToResponse())
}

// ContactCallStats returns aggregated call figures for a contact
func (h *CallLogHandler) ContactCallStats(c *gin.Context) {
	h.entityStats(c, models.LinkContact)
}

// LeadCallStats returns aggregated call figures for a lead
func (h *CallLogHandler) LeadCallStats(c *gin.Context) {
	h.entityStats(c, models.LinkLead)
}

func (h *CallLogHandler) entityStats(c *gin.Context, kind models.LinkKind) {
	stats, err := h.callLogRepo.StatsForEntity(kind, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute call stats", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}
