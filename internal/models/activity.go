package models

import (
	"time"
)

// Summary used for all missed-call follow-up activities. The duplicate
// guard in the follow-up service relies on this exact value.
const MissedCallActivitySummary = "Missed Phone Call"

// Activity represents a follow-up task attached to a contact or a lead
type Activity struct {
	ID string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`

	// Target entity: "contact" or "lead" plus its id
	ResKind string `json:"res_kind" gorm:"type:varchar(16);not null;index:idx_activities_target"`
	ResID   string `json:"res_id" gorm:"type:uuid;not null;index:idx_activities_target"`

	Summary string `json:"summary" gorm:"type:varchar(255);not null;index"`
	Note    string `json:"note" gorm:"type:text"`

	// Assigned user, nil when no assignee could be determined
	AssignedUserID *string `json:"assigned_user_id" gorm:"type:uuid;index"`

	DueDate   time.Time `json:"due_date"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	AssignedUser *User `json:"assigned_user,omitempty" gorm:"foreignKey:AssignedUserID;references:ID;constraint:OnDelete:SET NULL"`
}

// TableName specifies the table name for the Activity model
func (Activity) TableName() string {
	return "activities"
}
