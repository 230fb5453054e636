package repository

import (
	"errors"

	"github.com/hamarpea/voicenter-crm-backend/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByName finds a user by exact name. Returns (nil, nil) when no user
// carries that name; if several do, the first row wins.
func (r *UserRepository) FindByName(name string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
