package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"

	"github.com/hamarpea/voicenter-crm-backend/internal/models"
	"github.com/hamarpea/voicenter-crm-backend/internal/voicenter"
)

// ErrSyncInProgress is returned when a cycle is requested while another
// one is still running. Cycles never run concurrently.
var ErrSyncInProgress = errors.New("a Voicenter sync cycle is already running")

// SyncCallStore is the slice of the call-log store the upsert loop needs
type SyncCallStore interface {
	GetByCallID(callID string) (*models.CallLog, error)
	Create(call *models.CallLog) error
	Update(call *models.CallLog) error
}

// CursorStore persists the sync cursor
type CursorStore interface {
	Get(name string) (*models.SyncState, error)
	Save(state *models.SyncState) error
}

// CDRFetcher fetches raw CDRs from the vendor
type CDRFetcher interface {
	FetchCDRs(ctx context.Context, apiToken string, from, to time.Time) ([]voicenter.CDR, error)
}

// CallLinker routes a new call through contact/lead matching
type CallLinker interface {
	Link(call *models.CallLog, autoCreateLeads bool) error
}

// FollowupScanner flags unclosed call series after a batch
type FollowupScanner interface {
	Scan(now time.Time, lookback time.Duration) error
}

// SyncResult summarizes one completed sync cycle
type SyncResult struct {
	Created int       `json:"created"`
	Updated int       `json:"updated"`
	From    time.Time `json:"from"`
	To      time.Time `json:"to"`
}

// SyncService runs one fetch → upsert → match → follow-up cycle against
// the Voicenter CDR API.
type SyncService struct {
	fetcher  CDRFetcher
	calls    SyncCallStore
	cursor   CursorStore
	matcher  CallLinker
	followup FollowupScanner
	settings SettingsLoader

	running atomic.Bool
	now     func() time.Time
}

func NewSyncService(fetcher CDRFetcher, calls SyncCallStore, cursor CursorStore, matcher CallLinker, followup FollowupScanner, settings SettingsLoader) *SyncService {
	return &SyncService{
		fetcher:  fetcher,
		calls:    calls,
		cursor:   cursor,
		matcher:  matcher,
		followup: followup,
		settings: settings,
		now:      time.Now,
	}
}

// LastSyncedAt returns when the last cycle completed, nil before the first
func (s *SyncService) LastSyncedAt() (*time.Time, error) {
	state, err := s.cursor.Get(models.VoicenterCursorName)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, nil
	}
	return state.LastSyncedAt, nil
}

// Run executes one sync cycle looking back the given number of hours.
// The fetch window start is clamped forward to one minute past the last
// stored call so overlapping windows stay cheap; the idempotent upsert
// makes any remaining overlap harmless. A vendor-reported error aborts
// the cycle quietly; transport failures are returned to the caller.
func (s *SyncService) Run(ctx context.Context, lookbackHours float64) (*SyncResult, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrSyncInProgress
	}
	defer s.running.Store(false)

	settings, err := s.settings.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load sync settings: %w", err)
	}
	if settings.APIToken == "" {
		return nil, voicenter.ErrNoAPIToken
	}

	now := s.now()
	to := now
	from := now.Add(-time.Duration(lookbackHours * float64(time.Hour)))

	state, err := s.cursor.Get(models.VoicenterCursorName)
	if err != nil {
		return nil, fmt.Errorf("failed to load sync cursor: %w", err)
	}
	if state != nil && state.LastCallAt != nil {
		resume := state.LastCallAt.Add(time.Minute)
		if resume.After(from) {
			from = resume
		}
	}

	logrus.Infof("Syncing Voicenter calls from %s to %s",
		from.Format("2006-01-02T15:04:05"), to.Format("2006-01-02T15:04:05"))

	cdrs, err := s.fetcher.FetchCDRs(ctx, settings.APIToken, from, to)
	if err != nil {
		var vendorErr *voicenter.VendorError
		if errors.As(err, &vendorErr) {
			// Vendor-reported errors abort the cycle without propagating;
			// the next scheduled cycle is the retry.
			logrus.Errorf("Voicenter API error: %s", vendorErr.Description)
			return &SyncResult{From: from, To: to}, nil
		}
		sentry.CaptureException(err)
		return nil, err
	}

	result := &SyncResult{From: from, To: to}
	var maxDate time.Time

	for _, cdr := range cdrs {
		if cdr.CallID == "" {
			logrus.Warn("Skipping CDR without CallID")
			continue
		}

		created, callDate, err := s.upsert(cdr, settings, now)
		if err != nil {
			// One bad record must not block the rest of the batch
			logrus.Errorf("Failed to store call %s: %v", cdr.CallID, err)
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}

		if callDate.After(maxDate) {
			maxDate = callDate
		}
	}

	logrus.Infof("Voicenter sync completed: %d created, %d updated", result.Created, result.Updated)

	if settings.CreateActivities {
		if err := s.followup.Scan(now, FollowupLookback); err != nil {
			logrus.Errorf("Follow-up scan failed: %v", err)
		}
	}

	if err := s.advanceCursor(state, maxDate, now); err != nil {
		logrus.Errorf("Failed to advance sync cursor: %v", err)
	}

	return result, nil
}

// upsert inserts or overwrites one call record. New records are routed
// through the matcher; existing records keep their linkage and follow-up
// state and only have the mapped fields replaced.
func (s *SyncService) upsert(cdr voicenter.CDR, settings models.SyncSettings, now time.Time) (created bool, callDate time.Time, err error) {
	mapped := voicenter.MapCDR(cdr, now)

	existing, err := s.calls.GetByCallID(cdr.CallID)
	if err != nil {
		return false, mapped.Date, err
	}

	if existing != nil {
		mapped.ID = existing.ID
		mapped.ContactID = existing.ContactID
		mapped.LeadID = existing.LeadID
		mapped.NeedsFollowup = existing.NeedsFollowup
		mapped.FollowupDone = existing.FollowupDone
		mapped.CreatedAt = existing.CreatedAt
		return false, mapped.Date, s.calls.Update(&mapped)
	}

	if err := s.matcher.Link(&mapped, settings.AutoCreateLeads); err != nil {
		logrus.Errorf("Failed to link call %s: %v", cdr.CallID, err)
	}
	return true, mapped.Date, s.calls.Create(&mapped)
}

// advanceCursor persists the cursor after the whole batch committed
func (s *SyncService) advanceCursor(state *models.SyncState, maxDate, now time.Time) error {
	if state == nil {
		state = &models.SyncState{Name: models.VoicenterCursorName}
	}
	if !maxDate.IsZero() && (state.LastCallAt == nil || maxDate.After(*state.LastCallAt)) {
		state.LastCallAt = &maxDate
	}
	state.LastSyncedAt = &now
	return s.cursor.Save(state)
}
