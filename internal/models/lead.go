package models

import (
	"time"
)

// Lead represents a CRM sales lead. The sync creates one for unmatched
// incoming callers; everything else is read-only from this module.
type Lead struct {
	ID          string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name        string `json:"name" gorm:"type:varchar(255);not null"`
	Phone       string `json:"phone" gorm:"type:varchar(32);index"`
	Mobile      string `json:"mobile" gorm:"type:varchar(32);index"`
	Description string `json:"description" gorm:"type:text"`

	OwnerID *string `json:"owner_id" gorm:"type:uuid;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:SET NULL"`
}

// TableName specifies the table name for the Lead model
func (Lead) TableName() string {
	return "leads"
}
