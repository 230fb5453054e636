package services

import (
	"math"
	"testing"
	"time"

	"github.com/hamarpea/voicenter-crm-backend/internal/models"
)

func testSettings() models.SyncSettings {
	s := models.DefaultSyncSettings()
	s.BusinessHoursStart = 8
	s.BusinessHoursEnd = 18
	s.PeakSyncInterval = 5
	s.OffPeakSyncInterval = 30
	return s
}

func TestDecideSync(t *testing.T) {
	settings := testSettings()

	tests := []struct {
		name         string
		now          time.Time
		lastSyncAgo  time.Duration
		noLastSync   bool
		wantRun      bool
		wantLookback float64
		wantBusiness bool
	}{
		{
			name:         "business hours interval elapsed",
			now:          time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
			lastSyncAgo:  6 * time.Minute,
			wantRun:      true,
			wantLookback: 5.0/60 + 0.5,
			wantBusiness: true,
		},
		{
			name:         "business hours interval not elapsed",
			now:          time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
			lastSyncAgo:  3 * time.Minute,
			wantRun:      false,
			wantBusiness: true,
		},
		{
			name:         "off peak interval not elapsed",
			now:          time.Date(2025, 6, 2, 22, 0, 0, 0, time.UTC),
			lastSyncAgo:  10 * time.Minute,
			wantRun:      false,
			wantBusiness: false,
		},
		{
			name:         "off peak interval elapsed",
			now:          time.Date(2025, 6, 2, 22, 0, 0, 0, time.UTC),
			lastSyncAgo:  31 * time.Minute,
			wantRun:      true,
			wantLookback: 30.0/60 + 0.5,
			wantBusiness: false,
		},
		{
			name:         "start hour is inside business hours",
			now:          time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC),
			lastSyncAgo:  6 * time.Minute,
			wantRun:      true,
			wantLookback: 5.0/60 + 0.5,
			wantBusiness: true,
		},
		{
			name:         "end hour is outside business hours",
			now:          time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC),
			lastSyncAgo:  6 * time.Minute,
			wantRun:      false,
			wantBusiness: false,
		},
		{
			name:         "never synced counts as a day ago",
			now:          time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
			noLastSync:   true,
			wantRun:      true,
			wantLookback: 5.0/60 + 0.5,
			wantBusiness: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lastSync *time.Time
			if !tt.noLastSync {
				ts := tt.now.Add(-tt.lastSyncAgo)
				lastSync = &ts
			}

			got := DecideSync(tt.now, lastSync, settings)
			if got.Run != tt.wantRun {
				t.Errorf("Run = %v, want %v", got.Run, tt.wantRun)
			}
			if got.BusinessHours != tt.wantBusiness {
				t.Errorf("BusinessHours = %v, want %v", got.BusinessHours, tt.wantBusiness)
			}
			if tt.wantRun && math.Abs(got.LookbackHours-tt.wantLookback) > 1e-9 {
				t.Errorf("LookbackHours = %v, want %v", got.LookbackHours, tt.wantLookback)
			}
		})
	}
}

func TestDecideSync_ExactIntervalRuns(t *testing.T) {
	settings := testSettings()
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	last := now.Add(-5 * time.Minute)

	got := DecideSync(now, &last, settings)
	if !got.Run {
		t.Error("sync should run when exactly the interval has elapsed")
	}
}
