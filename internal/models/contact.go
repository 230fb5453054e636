package models

import (
	"time"
)

// Contact represents a CRM contact this module reads for phone matching
type Contact struct {
	ID     string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name   string `json:"name" gorm:"type:varchar(255);not null"`
	Phone  string `json:"phone" gorm:"type:varchar(32);index"`
	Mobile string `json:"mobile" gorm:"type:varchar(32);index"`
	Email  string `json:"email" gorm:"type:varchar(255)"`

	// Assigned owner, fallback assignee for follow-up activities
	OwnerID *string `json:"owner_id" gorm:"type:uuid;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:SET NULL"`
}

// TableName specifies the table name for the Contact model
func (Contact) TableName() string {
	return "contacts"
}
