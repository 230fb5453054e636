package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hamarpea/voicenter-crm-backend/internal/models"
)

// ContactFinder looks up CRM contacts by phone number
type ContactFinder interface {
	FindByPhone(number string) (*models.Contact, error)
}

// LeadStore looks up and creates CRM leads
type LeadStore interface {
	FindByPhone(number string) (*models.Lead, error)
	Create(lead *models.Lead) error
}

// MatcherService links a freshly synced call to an existing contact or
// lead by phone-number matching, or creates a new lead for unmatched
// incoming calls.
type MatcherService struct {
	contacts ContactFinder
	leads    LeadStore
}

func NewMatcherService(contacts ContactFinder, leads LeadStore) *MatcherService {
	return &MatcherService{
		contacts: contacts,
		leads:    leads,
	}
}

// CandidateNumbers derives the phone numbers to match against, in fixed
// priority order: caller, caller with the 972 country prefix replaced by
// a leading 0, target (only when entirely numeric, to skip internal
// extensions), the same 972 variant of the target, then the inbound DID.
// Duplicates are removed, keeping the first occurrence.
func CandidateNumbers(call *models.CallLog) []string {
	var numbers []string

	if call.CallerNumber != "" {
		numbers = append(numbers, call.CallerNumber)
		if variant := localVariant(call.CallerNumber); variant != "" {
			numbers = append(numbers, variant)
		}
	}

	if call.TargetNumber != "" && isAllDigits(call.TargetNumber) {
		numbers = append(numbers, call.TargetNumber)
		if variant := localVariant(call.TargetNumber); variant != "" {
			numbers = append(numbers, variant)
		}
	}

	if call.DID != "" {
		numbers = append(numbers, call.DID)
	}

	seen := make(map[string]bool, len(numbers))
	deduped := numbers[:0]
	for _, n := range numbers {
		if seen[n] {
			continue
		}
		seen[n] = true
		deduped = append(deduped, n)
	}
	return deduped
}

// localVariant rewrites an Israeli international number to its local form
func localVariant(number string) string {
	if strings.HasPrefix(number, "972") {
		return "0" + number[3:]
	}
	return ""
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Link sets the call's contact or lead reference. Matching tries each
// candidate number in priority order: contacts first (exact phone/mobile
// or loose phone match), then leads (exact phone/mobile). An unmatched
// incoming call gets a new "Missed Call" lead when autoCreateLeads is
// set; an unmatched outgoing call stays unlinked. The caller persists the
// mutated record.
func (s *MatcherService) Link(call *models.CallLog, autoCreateLeads bool) error {
	numbers := CandidateNumbers(call)
	if len(numbers) == 0 {
		logrus.Warnf("No phone numbers found in call %s", call.CallID)
		return nil
	}

	for _, number := range numbers {
		contact, err := s.contacts.FindByPhone(number)
		if err != nil {
			return fmt.Errorf("failed to search contacts: %w", err)
		}
		if contact != nil {
			call.ContactID = &contact.ID
			logrus.Infof("Call %s linked to contact %s", call.CallID, contact.Name)
			return nil
		}
	}

	for _, number := range numbers {
		lead, err := s.leads.FindByPhone(number)
		if err != nil {
			return fmt.Errorf("failed to search leads: %w", err)
		}
		if lead != nil {
			call.LeadID = &lead.ID
			logrus.Infof("Call %s linked to lead %s", call.CallID, lead.Name)
			return nil
		}
	}

	if !call.IsIncoming || !autoCreateLeads {
		return nil
	}

	caller := call.CallerNumber
	if caller == "" {
		caller = "Unknown"
	}

	lead := &models.Lead{
		ID:          uuid.NewString(),
		Name:        "Missed Call - " + caller,
		Phone:       call.CallerNumber,
		Description: "Missed phone call on " + call.Date.Format("2006-01-02 15:04"),
	}
	if err := s.leads.Create(lead); err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}

	call.LeadID = &lead.ID
	logrus.Infof("Created new lead %s for call %s", lead.ID, call.CallID)
	return nil
}
