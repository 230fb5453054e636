package repository

import (
	"errors"

	"github.com/hamarpea/voicenter-crm-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SyncStateRepository struct {
	db *gorm.DB
}

func NewSyncStateRepository(db *gorm.DB) *SyncStateRepository {
	return &SyncStateRepository{db: db}
}

// Get retrieves the cursor row by name. Returns (nil, nil) when no sync
// has completed yet.
func (r *SyncStateRepository) Get(name string) (*models.SyncState, error) {
	var state models.SyncState
	err := r.db.First(&state, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// Save upserts the cursor row
func (r *SyncStateRepository) Save(state *models.SyncState) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_call_at", "last_synced_at", "updated_at"}),
	}).Create(state).Error
}
