package models

import (
	"time"
)

// Name of the single cursor row used by the Voicenter CDR sync
const VoicenterCursorName = "voicenter_cdr"

// SyncState is the persisted sync cursor. It is advanced only after a
// batch has been fully committed, so a crash mid-batch makes the next
// cycle re-fetch and re-upsert the remainder.
type SyncState struct {
	Name string `json:"name" gorm:"primaryKey;type:varchar(64)"`

	// Timestamp of the most recent call stored by a completed batch
	LastCallAt *time.Time `json:"last_call_at"`

	// When the last sync cycle ran, used by the scheduler policy
	LastSyncedAt *time.Time `json:"last_synced_at"`

	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the SyncState model
func (SyncState) TableName() string {
	return "sync_states"
}
