package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hamarpea/voicenter-crm-backend/internal/models"
	"github.com/hamarpea/voicenter-crm-backend/internal/voicenter"
)

// SyncDecision is the outcome of one scheduler tick
type SyncDecision struct {
	Run           bool
	LookbackHours float64
	BusinessHours bool
}

// DecideSync applies the smart-interval policy: within business hours
// ([start, end) on the current hour) a sync runs once the peak interval
// has elapsed since the last one, outside them once the off-peak interval
// has elapsed. The lookback window is the interval converted to hours
// plus a half-hour buffer. A nil lastSync counts as 24 hours ago.
func DecideSync(now time.Time, lastSync *time.Time, settings models.SyncSettings) SyncDecision {
	last := now.Add(-24 * time.Hour)
	if lastSync != nil {
		last = *lastSync
	}
	minutesSince := now.Sub(last).Minutes()

	hour := now.Hour()
	businessHours := hour >= settings.BusinessHoursStart && hour < settings.BusinessHoursEnd

	interval := settings.OffPeakSyncInterval
	if businessHours {
		interval = settings.PeakSyncInterval
	}

	if minutesSince < float64(interval) {
		return SyncDecision{BusinessHours: businessHours}
	}

	return SyncDecision{
		Run:           true,
		LookbackHours: float64(interval)/60 + 0.5,
		BusinessHours: businessHours,
	}
}

// SyncRunner runs one sync cycle with the given lookback window
type SyncRunner interface {
	Run(ctx context.Context, lookbackHours float64) (*SyncResult, error)
	LastSyncedAt() (*time.Time, error)
}

// SettingsLoader loads the current sync settings
type SettingsLoader interface {
	Load() (models.SyncSettings, error)
}

// SchedulerService periodically evaluates the sync policy and triggers
// sync cycles. It checks once a minute; the policy decides whether a
// cycle actually runs.
type SchedulerService struct {
	syncer   SyncRunner
	settings SettingsLoader
	interval time.Duration
	stopChan chan bool
}

func NewSchedulerService(syncer SyncRunner, settings SettingsLoader) *SchedulerService {
	return &SchedulerService{
		syncer:   syncer,
		settings: settings,
		interval: time.Minute,
		stopChan: make(chan bool),
	}
}

// Start starts the scheduler loop
func (s *SchedulerService) Start() {
	go s.run()
	logrus.Info("Voicenter sync scheduler started")
}

// Stop stops the scheduler loop
func (s *SchedulerService) Stop() {
	s.stopChan <- true
	logrus.Info("Voicenter sync scheduler stopped")
}

func (s *SchedulerService) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick(time.Now())
		case <-s.stopChan:
			return
		}
	}
}

func (s *SchedulerService) tick(now time.Time) {
	settings, err := s.settings.Load()
	if err != nil {
		logrus.Errorf("Failed to load sync settings: %v", err)
		return
	}
	if !settings.SyncEnabled {
		logrus.Debug("Voicenter sync disabled, skipping")
		return
	}

	lastSync, err := s.syncer.LastSyncedAt()
	if err != nil {
		logrus.Errorf("Failed to load last sync time: %v", err)
		return
	}

	decision := DecideSync(now, lastSync, settings)
	if !decision.Run {
		logrus.Debugf("Skipping sync - interval not elapsed since last sync")
		return
	}

	if decision.BusinessHours {
		logrus.Info("Running business hours sync")
	} else {
		logrus.Info("Running off-peak sync")
	}

	result, err := s.syncer.Run(context.Background(), decision.LookbackHours)
	switch {
	case errors.Is(err, voicenter.ErrNoAPIToken):
		logrus.Warn("Voicenter API token not configured")
	case errors.Is(err, ErrSyncInProgress):
		logrus.Debug("Sync already in progress, skipping")
	case err != nil:
		logrus.Errorf("Voicenter sync failed: %v", err)
	default:
		logrus.Infof("Voicenter sync completed: %d created, %d updated", result.Created, result.Updated)
	}
}
