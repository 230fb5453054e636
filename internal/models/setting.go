package models

import (
	"fmt"
	"time"
)

// Setting is a named configuration parameter persisted as a key/value row
type Setting struct {
	Key       string    `json:"key" gorm:"primaryKey;type:varchar(128)"`
	Value     string    `json:"value" gorm:"type:text"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Setting model
func (Setting) TableName() string {
	return "settings"
}

// Setting keys for the Voicenter integration
const (
	SettingAPIToken            = "voicenter.api_token"
	SettingSyncEnabled         = "voicenter.sync_enabled"
	SettingBusinessHoursStart  = "voicenter.business_hours_start"
	SettingBusinessHoursEnd    = "voicenter.business_hours_end"
	SettingPeakSyncInterval    = "voicenter.peak_sync_interval"
	SettingOffPeakSyncInterval = "voicenter.off_peak_sync_interval"
	SettingAutoCreateLeads     = "voicenter.auto_create_leads"
	SettingCreateActivities    = "voicenter.create_activities"
)

// SyncSettings is the typed view over the Voicenter setting rows
type SyncSettings struct {
	APIToken            string `json:"api_token"`
	SyncEnabled         bool   `json:"sync_enabled"`
	BusinessHoursStart  int    `json:"business_hours_start"`
	BusinessHoursEnd    int    `json:"business_hours_end"`
	PeakSyncInterval    int    `json:"peak_sync_interval"`     // minutes
	OffPeakSyncInterval int    `json:"off_peak_sync_interval"` // minutes
	AutoCreateLeads     bool   `json:"auto_create_leads"`
	CreateActivities    bool   `json:"create_activities"`
}

// DefaultSyncSettings returns the settings used before anything is saved
func DefaultSyncSettings() SyncSettings {
	return SyncSettings{
		SyncEnabled:         true,
		BusinessHoursStart:  8,
		BusinessHoursEnd:    18,
		PeakSyncInterval:    5,
		OffPeakSyncInterval: 30,
		AutoCreateLeads:     true,
		CreateActivities:    true,
	}
}

// ValidationError reports an out-of-range setting value at save time
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid setting %s: %s", e.Field, e.Reason)
}

// Validate enforces the configuration invariants. Invalid values must be
// rejected before they are persisted.
func (s SyncSettings) Validate() error {
	if s.BusinessHoursStart < 0 || s.BusinessHoursStart > 23 {
		return &ValidationError{Field: "business_hours_start", Reason: "must be between 0 and 23"}
	}
	if s.BusinessHoursEnd < 0 || s.BusinessHoursEnd > 23 {
		return &ValidationError{Field: "business_hours_end", Reason: "must be between 0 and 23"}
	}
	if s.BusinessHoursStart >= s.BusinessHoursEnd {
		return &ValidationError{Field: "business_hours_start", Reason: "must be strictly before business_hours_end"}
	}
	if s.PeakSyncInterval < 1 || s.PeakSyncInterval > 60 {
		return &ValidationError{Field: "peak_sync_interval", Reason: "must be between 1 and 60 minutes"}
	}
	if s.OffPeakSyncInterval < 1 || s.OffPeakSyncInterval > 60 {
		return &ValidationError{Field: "off_peak_sync_interval", Reason: "must be between 1 and 60 minutes"}
	}
	return nil
}
