package models

import (
	"time"
)

// User represents a CRM user that follow-up activities can be assigned to.
// Voicenter representatives are matched to users by exact name.
type User struct {
	ID    string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name  string `json:"name" gorm:"type:varchar(255);not null;index"`
	Email string `json:"email" gorm:"type:varchar(255);uniqueIndex"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
