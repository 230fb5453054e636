package repository

import (
	"errors"
	"strings"

	"github.com/hamarpea/voicenter-crm-backend/internal/models"

	"gorm.io/gorm"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// GetByID retrieves a contact by ID
func (r *ContactRepository) GetByID(id string) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.First(&contact, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// FindByPhone finds the first contact whose phone or mobile matches the
// number exactly, or whose phone field contains the number with spaces and
// hyphens stripped. Returns (nil, nil) when no contact matches.
func (r *ContactRepository) FindByPhone(number string) (*models.Contact, error) {
	stripped := strings.NewReplacer(" ", "", "-", "").Replace(number)

	var contact models.Contact
	err := r.db.
		Where("phone = ? OR mobile = ? OR phone ILIKE ?", number, number, "%"+stripped+"%").
		First(&contact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &contact, nil
}
