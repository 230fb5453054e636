package repository

import (
	"github.com/hamarpea/voicenter-crm-backend/internal/models"

	"gorm.io/gorm"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create creates a new activity
func (r *ActivityRepository) Create(activity *models.Activity) error {
	return r.db.Create(activity).Error
}

// ExistsForTarget reports whether an activity with the given summary
// already targets the entity. The follow-up service uses this to avoid
// creating duplicate tasks across repeated sync cycles.
func (r *ActivityRepository) ExistsForTarget(kind models.LinkKind, entityID, summary string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Activity{}).
		Where("res_kind = ? AND res_id = ? AND summary = ?", string(kind), entityID, summary).
		Count(&count).Error
	return count > 0, err
}
