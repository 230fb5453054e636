package services

import (
	"fmt"
	"strconv"

	"github.com/hamarpea/voicenter-crm-backend/internal/models"
)

// SettingStore persists named key/value configuration parameters
type SettingStore interface {
	GetAll() (map[string]string, error)
	SetAll(values map[string]string) error
}

// SettingsService reads and writes the Voicenter sync settings. Values
// are validated before they are persisted.
type SettingsService struct {
	store SettingStore
}

func NewSettingsService(store SettingStore) *SettingsService {
	return &SettingsService{store: store}
}

// Load returns the current settings, with defaults for anything unset
func (s *SettingsService) Load() (models.SyncSettings, error) {
	settings := models.DefaultSyncSettings()

	values, err := s.store.GetAll()
	if err != nil {
		return settings, fmt.Errorf("failed to load settings: %w", err)
	}

	if v, ok := values[models.SettingAPIToken]; ok {
		settings.APIToken = v
	}
	if v, ok := values[models.SettingSyncEnabled]; ok {
		settings.SyncEnabled = v == "true"
	}
	if v, ok := values[models.SettingBusinessHoursStart]; ok {
		settings.BusinessHoursStart = atoiOr(v, settings.BusinessHoursStart)
	}
	if v, ok := values[models.SettingBusinessHoursEnd]; ok {
		settings.BusinessHoursEnd = atoiOr(v, settings.BusinessHoursEnd)
	}
	if v, ok := values[models.SettingPeakSyncInterval]; ok {
		settings.PeakSyncInterval = atoiOr(v, settings.PeakSyncInterval)
	}
	if v, ok := values[models.SettingOffPeakSyncInterval]; ok {
		settings.OffPeakSyncInterval = atoiOr(v, settings.OffPeakSyncInterval)
	}
	if v, ok := values[models.SettingAutoCreateLeads]; ok {
		settings.AutoCreateLeads = v == "true"
	}
	if v, ok := values[models.SettingCreateActivities]; ok {
		settings.CreateActivities = v == "true"
	}

	return settings, nil
}

// Save validates and persists the settings. A *models.ValidationError
// blocks the save.
func (s *SettingsService) Save(settings models.SyncSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := map[string]string{
		models.SettingAPIToken:            settings.APIToken,
		models.SettingSyncEnabled:         strconv.FormatBool(settings.SyncEnabled),
		models.SettingBusinessHoursStart:  strconv.Itoa(settings.BusinessHoursStart),
		models.SettingBusinessHoursEnd:    strconv.Itoa(settings.BusinessHoursEnd),
		models.SettingPeakSyncInterval:    strconv.Itoa(settings.PeakSyncInterval),
		models.SettingOffPeakSyncInterval: strconv.Itoa(settings.OffPeakSyncInterval),
		models.SettingAutoCreateLeads:     strconv.FormatBool(settings.AutoCreateLeads),
		models.SettingCreateActivities:    strconv.FormatBool(settings.CreateActivities),
	}
	if err := s.store.SetAll(values); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func atoiOr(value string, fallback int) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
