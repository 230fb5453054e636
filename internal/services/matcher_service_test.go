package services

import (
	"reflect"
	"testing"
	"time"

	"github.com/hamarpea/voicenter-crm-backend/internal/models"
)

type fakeContactFinder struct {
	byNumber map[string]*models.Contact
	searched []string
}

func (f *fakeContactFinder) FindByPhone(number string) (*models.Contact, error) {
	f.searched = append(f.searched, number)
	return f.byNumber[number], nil
}

type fakeLeadStore struct {
	byNumber map[string]*models.Lead
	created  []*models.Lead
}

func (f *fakeLeadStore) FindByPhone(number string) (*models.Lead, error) {
	return f.byNumber[number], nil
}

func (f *fakeLeadStore) Create(lead *models.Lead) error {
	if lead.ID == "" {
		lead.ID = "lead-generated"
	}
	f.created = append(f.created, lead)
	return nil
}

func TestCandidateNumbers(t *testing.T) {
	tests := []struct {
		name string
		call models.CallLog
		want []string
	}{
		{
			name: "israeli caller gets local variant",
			call: models.CallLog{CallerNumber: "972501234567"},
			want: []string{"972501234567", "0501234567"},
		},
		{
			name: "all-digit target is a candidate",
			call: models.CallLog{CallerNumber: "0501234567", TargetNumber: "102"},
			want: []string{"0501234567", "102"},
		},
		{
			name: "non-numeric target is skipped",
			call: models.CallLog{CallerNumber: "0501234567", TargetNumber: "sip:200@pbx"},
			want: []string{"0501234567"},
		},
		{
			name: "did included last",
			call: models.CallLog{CallerNumber: "0501234567", DID: "039111111"},
			want: []string{"0501234567", "039111111"},
		},
		{
			name: "duplicates removed keeping priority order",
			call: models.CallLog{CallerNumber: "0501234567", TargetNumber: "0501234567", DID: "0501234567"},
			want: []string{"0501234567"},
		},
		{
			name: "no numbers",
			call: models.CallLog{},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CandidateNumbers(&tt.call)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CandidateNumbers() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLink_ContactWinsOverLead(t *testing.T) {
	contact := &models.Contact{ID: "contact-1", Name: "Dana", Mobile: "0501234567"}
	contacts := &fakeContactFinder{byNumber: map[string]*models.Contact{"0501234567": contact}}
	leads := &fakeLeadStore{byNumber: map[string]*models.Lead{"0501234567": {ID: "lead-1"}}}
	matcher := NewMatcherService(contacts, leads)

	call := &models.CallLog{CallID: "c1", CallerNumber: "972501234567", CdrType: 1}
	call.Reclassify()

	if err := matcher.Link(call, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if call.ContactID == nil || *call.ContactID != "contact-1" {
		t.Fatalf("ContactID = %v, want contact-1", call.ContactID)
	}
	if call.LeadID != nil {
		t.Errorf("LeadID should stay nil when a contact matched")
	}
	if len(leads.created) != 0 {
		t.Errorf("no lead should be created, got %d", len(leads.created))
	}
}

func TestLink_LeadMatch(t *testing.T) {
	contacts := &fakeContactFinder{byNumber: map[string]*models.Contact{}}
	leads := &fakeLeadStore{byNumber: map[string]*models.Lead{"0501234567": {ID: "lead-1", Name: "Old lead"}}}
	matcher := NewMatcherService(contacts, leads)

	call := &models.CallLog{CallID: "c2", CallerNumber: "972501234567", CdrType: 1}
	call.Reclassify()

	if err := matcher.Link(call, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if call.LeadID == nil || *call.LeadID != "lead-1" {
		t.Fatalf("LeadID = %v, want lead-1", call.LeadID)
	}
	if len(leads.created) != 0 {
		t.Errorf("no new lead should be created, got %d", len(leads.created))
	}
}

func TestLink_UnmatchedIncomingCreatesLead(t *testing.T) {
	contacts := &fakeContactFinder{byNumber: map[string]*models.Contact{}}
	leads := &fakeLeadStore{byNumber: map[string]*models.Lead{}}
	matcher := NewMatcherService(contacts, leads)

	call := &models.CallLog{
		CallID:       "c3",
		CallerNumber: "0529999999",
		CdrType:      1,
		Date:         time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
	}
	call.Reclassify()

	if err := matcher.Link(call, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(leads.created) != 1 {
		t.Fatalf("got %d created leads, want 1", len(leads.created))
	}
	lead := leads.created[0]
	if lead.Name != "Missed Call - 0529999999" {
		t.Errorf("lead name = %q", lead.Name)
	}
	if lead.Phone != "0529999999" {
		t.Errorf("lead phone = %q", lead.Phone)
	}
	if call.LeadID == nil || *call.LeadID != lead.ID {
		t.Errorf("call should link to the new lead")
	}
}

func TestLink_UnmatchedOutgoingStaysUnlinked(t *testing.T) {
	contacts := &fakeContactFinder{byNumber: map[string]*models.Contact{}}
	leads := &fakeLeadStore{byNumber: map[string]*models.Lead{}}
	matcher := NewMatcherService(contacts, leads)

	call := &models.CallLog{CallID: "c4", CallerNumber: "0529999999", CdrType: 4}
	call.Reclassify()

	if err := matcher.Link(call, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if call.ContactID != nil || call.LeadID != nil {
		t.Error("outgoing unmatched call must stay unlinked")
	}
	if len(leads.created) != 0 {
		t.Errorf("no lead should be created for outgoing calls, got %d", len(leads.created))
	}
}

func TestLink_AutoCreateDisabled(t *testing.T) {
	contacts := &fakeContactFinder{byNumber: map[string]*models.Contact{}}
	leads := &fakeLeadStore{byNumber: map[string]*models.Lead{}}
	matcher := NewMatcherService(contacts, leads)

	call := &models.CallLog{CallID: "c5", CallerNumber: "0529999999", CdrType: 1}
	call.Reclassify()

	if err := matcher.Link(call, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(leads.created) != 0 {
		t.Errorf("auto-create disabled, got %d leads", len(leads.created))
	}
}

func TestLink_UnknownCallerName(t *testing.T) {
	contacts := &fakeContactFinder{byNumber: map[string]*models.Contact{}}
	leads := &fakeLeadStore{byNumber: map[string]*models.Lead{}}
	matcher := NewMatcherService(contacts, leads)

	// Incoming call with only a DID candidate
	call := &models.CallLog{CallID: "c6", DID: "039111111", CdrType: 1}
	call.Reclassify()

	if err := matcher.Link(call, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(leads.created) != 1 {
		t.Fatalf("got %d created leads, want 1", len(leads.created))
	}
	if leads.created[0].Name != "Missed Call - Unknown" {
		t.Errorf("lead name = %q, want Missed Call - Unknown", leads.created[0].Name)
	}
}
