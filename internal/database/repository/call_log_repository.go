package repository

import (
	"errors"
	"time"

	"github.com/hamarpea/voicenter-crm-backend/internal/models"

	"gorm.io/gorm"
)

type CallLogRepository struct {
	db *gorm.DB
}

func NewCallLogRepository(db *gorm.DB) *CallLogRepository {
	return &CallLogRepository{db: db}
}

// Create creates a new call log
func (r *CallLogRepository) Create(call *models.CallLog) error {
	return r.db.Create(call).Error
}

// Update updates a call log
func (r *CallLogRepository) Update(call *models.CallLog) error {
	return r.db.Save(call).Error
}

// GetByID retrieves a call log by ID
func (r *CallLogRepository) GetByID(id string) (*models.CallLog, error) {
	var call models.CallLog
	err := r.db.First(&call, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &call, nil
}

// GetByCallID retrieves a call log by the vendor-assigned call identifier.
// Returns (nil, nil) when no record exists.
func (r *CallLogRepository) GetByCallID(callID string) (*models.CallLog, error) {
	var call models.CallLog
	err := r.db.First(&call, "call_id = ?", callID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &call, nil
}

// CallLogFilter narrows List results
type CallLogFilter struct {
	ContactID     string
	LeadID        string
	Direction     string // "incoming" or "outgoing"
	MissedOnly    bool
	NeedsFollowup bool
	From          *time.Time
	To            *time.Time
	Limit         int
	Offset        int
}

// List retrieves call logs matching the filter, newest first
func (r *CallLogRepository) List(filter CallLogFilter) ([]*models.CallLog, error) {
	q := r.db.Model(&models.CallLog{})
	if filter.ContactID != "" {
		q = q.Where("contact_id = ?", filter.ContactID)
	}
	if filter.LeadID != "" {
		q = q.Where("lead_id = ?", filter.LeadID)
	}
	switch filter.Direction {
	case "incoming":
		q = q.Where("is_incoming = ?", true)
	case "outgoing":
		q = q.Where("is_outgoing = ?", true)
	}
	if filter.MissedOnly {
		q = q.Where("is_missed = ?", true)
	}
	if filter.NeedsFollowup {
		q = q.Where("needs_followup = ?", true)
	}
	if filter.From != nil {
		q = q.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("date <= ?", *filter.To)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var calls []*models.CallLog
	err := q.Order("date desc").Find(&calls).Error
	return calls, err
}

// GetLinkedSince retrieves all calls after the given time that are linked
// to a contact or a lead
func (r *CallLogRepository) GetLinkedSince(since time.Time) ([]*models.CallLog, error) {
	var calls []*models.CallLog
	err := r.db.
		Where("date >= ?", since).
		Where("contact_id IS NOT NULL OR lead_id IS NOT NULL").
		Find(&calls).Error
	return calls, err
}

// GetLatestAnsweredForEntity retrieves the most recent answered call
// linked to the given contact or lead. Returns (nil, nil) when none exists.
func (r *CallLogRepository) GetLatestAnsweredForEntity(kind models.LinkKind, entityID string) (*models.CallLog, error) {
	q := r.db.Where("is_answered = ?", true)
	switch kind {
	case models.LinkContact:
		q = q.Where("contact_id = ?", entityID)
	case models.LinkLead:
		q = q.Where("lead_id = ?", entityID)
	default:
		return nil, nil
	}

	var call models.CallLog
	err := q.Order("date desc").First(&call).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &call, nil
}

// StatsForEntity aggregates call figures for a contact or a lead
func (r *CallLogRepository) StatsForEntity(kind models.LinkKind, entityID string) (*models.CallStats, error) {
	column := "contact_id"
	if kind == models.LinkLead {
		column = "lead_id"
	}

	var row struct {
		CallCount     int64
		TotalDuration int64
		MissedCount   int64
		LastCallDate  *time.Time
	}
	err := r.db.Model(&models.CallLog{}).
		Select("COUNT(*) AS call_count, COALESCE(SUM(duration), 0) AS total_duration, COUNT(*) FILTER (WHERE is_missed) AS missed_count, MAX(date) AS last_call_date").
		Where(column+" = ?", entityID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &models.CallStats{
		CallCount:            row.CallCount,
		LastCallDate:         row.LastCallDate,
		TotalDurationMinutes: row.TotalDuration / 60,
		MissedCallCount:      row.MissedCount,
	}, nil
}
