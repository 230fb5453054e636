package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hamarpea/voicenter-crm-backend/internal/models"
)

// Lookback window for the follow-up scan
const FollowupLookback = 7 * 24 * time.Hour

// FollowupCallStore is the slice of the call-log store the scan needs
type FollowupCallStore interface {
	GetLinkedSince(since time.Time) ([]*models.CallLog, error)
	GetLatestAnsweredForEntity(kind models.LinkKind, entityID string) (*models.CallLog, error)
	Update(call *models.CallLog) error
}

// ActivityStore creates and deduplicates follow-up activities
type ActivityStore interface {
	Create(activity *models.Activity) error
	ExistsForTarget(kind models.LinkKind, entityID, summary string) (bool, error)
}

// UserFinder resolves a representative name to a CRM user
type UserFinder interface {
	FindByName(name string) (*models.User, error)
}

// OwnerResolver returns the assigned owner of a contact or lead, or nil
type OwnerResolver interface {
	OwnerOf(kind models.LinkKind, entityID string) (*string, error)
}

// FollowupNotifier publishes an event when a follow-up task is created
type FollowupNotifier interface {
	PublishFollowupCreated(event FollowupCreatedEvent) error
}

// FollowupCreatedEvent is emitted to the host CRM's notification queue
type FollowupCreatedEvent struct {
	CallID         string    `json:"call_id"`
	EntityKind     string    `json:"entity_kind"`
	EntityID       string    `json:"entity_id"`
	CallerNumber   string    `json:"caller_number"`
	AssignedUserID *string   `json:"assigned_user_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// FollowupService flags unclosed call series and creates follow-up tasks
// for missed calls.
type FollowupService struct {
	calls      FollowupCallStore
	activities ActivityStore
	users      UserFinder
	owners     OwnerResolver
	notifier   FollowupNotifier // optional
}

func NewFollowupService(calls FollowupCallStore, activities ActivityStore, users UserFinder, owners OwnerResolver, notifier FollowupNotifier) *FollowupService {
	return &FollowupService{
		calls:      calls,
		activities: activities,
		users:      users,
		owners:     owners,
		notifier:   notifier,
	}
}

// Scan inspects all linked calls inside the lookback window, grouped by
// linked entity. When a group's most recent call is missed and its
// follow-up is not marked done, that call is flagged and exactly one
// follow-up activity is created for the entity.
func (s *FollowupService) Scan(now time.Time, lookback time.Duration) error {
	since := now.Add(-lookback)
	recent, err := s.calls.GetLinkedSince(since)
	if err != nil {
		return fmt.Errorf("failed to load recent linked calls: %w", err)
	}

	groups := make(map[models.CallLink][]*models.CallLog)
	for _, call := range recent {
		link := call.Link()
		if link.Kind == models.LinkNone {
			continue
		}
		groups[link] = append(groups[link], call)
	}

	for link, calls := range groups {
		sort.Slice(calls, func(i, j int) bool {
			return calls[i].Date.After(calls[j].Date)
		})

		latest := calls[0]
		if !latest.IsMissed || latest.FollowupDone {
			continue
		}

		latest.NeedsFollowup = true
		if err := s.calls.Update(latest); err != nil {
			logrus.Errorf("Failed to flag call %s for follow-up: %v", latest.CallID, err)
			continue
		}
		logrus.Infof("Marked call %s as needing follow-up", latest.CallID)

		if err := s.createFollowupActivity(latest, link, now); err != nil {
			logrus.Errorf("Failed to create follow-up activity for call %s: %v", latest.CallID, err)
		}
	}

	return nil
}

// createFollowupActivity creates one "Missed Phone Call" task for the
// linked entity unless one already exists.
func (s *FollowupService) createFollowupActivity(call *models.CallLog, link models.CallLink, now time.Time) error {
	exists, err := s.activities.ExistsForTarget(link.Kind, link.ID, models.MissedCallActivitySummary)
	if err != nil {
		return fmt.Errorf("failed to check existing activities: %w", err)
	}
	if exists {
		return nil
	}

	assignedUserID, err := s.findAssignee(link)
	if err != nil {
		return err
	}

	activity := &models.Activity{
		ID:             uuid.NewString(),
		ResKind:        string(link.Kind),
		ResID:          link.ID,
		Summary:        models.MissedCallActivitySummary,
		Note:           fmt.Sprintf(`From: <a href="tel:%s">%s</a>`, call.CallerNumber, call.CallerNumber),
		AssignedUserID: assignedUserID,
		DueDate:        now.Truncate(24 * time.Hour),
	}
	if err := s.activities.Create(activity); err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}

	if s.notifier != nil {
		event := FollowupCreatedEvent{
			CallID:         call.CallID,
			EntityKind:     string(link.Kind),
			EntityID:       link.ID,
			CallerNumber:   call.CallerNumber,
			AssignedUserID: assignedUserID,
			CreatedAt:      now,
		}
		if err := s.notifier.PublishFollowupCreated(event); err != nil {
			logrus.Warnf("Failed to publish follow-up event for call %s: %v", call.CallID, err)
		}
	}

	return nil
}

// findAssignee picks the task assignee: the representative from the most
// recent answered call with the entity, matched to a user by exact name,
// falling back to the entity's own assigned owner. Name matching is
// best-effort and silently yields no match on any discrepancy.
func (s *FollowupService) findAssignee(link models.CallLink) (*string, error) {
	answered, err := s.calls.GetLatestAnsweredForEntity(link.Kind, link.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answered calls: %w", err)
	}

	if answered != nil && answered.RepresentativeCode != "" {
		user, err := s.users.FindByName(answered.RepresentativeName)
		if err != nil {
			return nil, fmt.Errorf("failed to search users: %w", err)
		}
		if user != nil {
			return &user.ID, nil
		}
	}

	owner, err := s.owners.OwnerOf(link.Kind, link.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve entity owner: %w", err)
	}
	return owner, nil
}
