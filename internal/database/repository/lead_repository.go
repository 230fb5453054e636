package repository

import (
	"errors"

	"github.com/hamarpea/voicenter-crm-backend/internal/models"

	"gorm.io/gorm"
)

type LeadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// Create creates a new lead
func (r *LeadRepository) Create(lead *models.Lead) error {
	return r.db.Create(lead).Error
}

// GetByID retrieves a lead by ID
func (r *LeadRepository) GetByID(id string) (*models.Lead, error) {
	var lead models.Lead
	err := r.db.First(&lead, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// FindByPhone finds the first lead whose phone or mobile matches the
// number exactly. Returns (nil, nil) when no lead matches.
func (r *LeadRepository) FindByPhone(number string) (*models.Lead, error) {
	var lead models.Lead
	err := r.db.
		Where("phone = ? OR mobile = ?", number, number).
		First(&lead).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lead, nil
}
