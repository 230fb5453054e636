package models

import (
	"time"

	"gorm.io/gorm"
)

// CDR type codes reported by Voicenter that identify the call direction.
var (
	IncomingCdrTypes = []int{1, 8, 11, 18, 19}
	OutgoingCdrTypes = []int{4, 9, 10, 14, 15}
)

// Dial statuses reported by Voicenter that identify the call outcome.
var (
	AnsweredDialStatuses = []string{"ANSWER", "VOICEMAIL"}
	MissedDialStatuses   = []string{
		"NOANSWER", "CANCEL", "ABANDONE", "TIMEOUT", "BUSY", "FULL",
		"EXIT", "VOEND", "NOTDIALED", "NOTCALLED", "CONGESTION", "CHANUNAVAIL",
	}
)

// CallLog represents a single call detail record synced from Voicenter
type CallLog struct {
	ID     string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CallID string    `json:"call_id" gorm:"type:varchar(64);not null;uniqueIndex"`
	Date   time.Time `json:"date" gorm:"index"`

	// Call participants
	CallerNumber    string `json:"caller_number" gorm:"type:varchar(32);index"`
	TargetNumber    string `json:"target_number" gorm:"type:varchar(32);index"`
	CallerExtension string `json:"caller_extension" gorm:"type:varchar(32)"`
	TargetExtension string `json:"target_extension" gorm:"type:varchar(32)"`
	DID             string `json:"did" gorm:"type:varchar(32)"`

	// Call details
	Duration   int    `json:"duration"`  // seconds of actual conversation
	RingTime   int    `json:"ring_time"` // seconds of ringing before answer
	CallType   string `json:"call_type" gorm:"type:varchar(64)"`
	CdrType    int    `json:"cdr_type" gorm:"index"`
	DialStatus string `json:"dial_status" gorm:"type:varchar(32)"`

	// Recording
	RecordURL    string `json:"record_url" gorm:"type:text"`
	RecordExpect bool   `json:"record_expect"`

	// Representative / department / queue
	RepresentativeName string `json:"representative_name" gorm:"type:varchar(255)"`
	RepresentativeCode string `json:"representative_code" gorm:"type:varchar(64)"`
	UserName           string `json:"user_name" gorm:"type:varchar(255)"`
	DepartmentName     string `json:"department_name" gorm:"type:varchar(255)"`
	DepartmentIDExt    int    `json:"department_id_ext"`
	QueueName          string `json:"queue_name" gorm:"type:varchar(255)"`

	// Price in Israeli Agorot
	Price float64 `json:"price"`

	// Destination country label
	TargetPrefixName string `json:"target_prefix_name" gorm:"type:varchar(255)"`

	// IVR and custom data, serialized JSON; nil means the vendor sent nothing
	DTMFData   *string `json:"dtmf_data" gorm:"type:text"`
	CustomData *string `json:"custom_data" gorm:"type:text"`

	// Classification, recomputed from CdrType / DialStatus on every save
	IsIncoming bool `json:"is_incoming" gorm:"index"`
	IsOutgoing bool `json:"is_outgoing"`
	IsAnswered bool `json:"is_answered"`
	IsMissed   bool `json:"is_missed" gorm:"index"`

	// CRM linkage, set once by the matcher when the record is first created
	ContactID *string `json:"contact_id" gorm:"type:uuid;index"`
	LeadID    *string `json:"lead_id" gorm:"type:uuid;index"`

	// Follow-up tracking
	NeedsFollowup bool `json:"needs_followup" gorm:"index"`
	FollowupDone  bool `json:"followup_done"`

	SyncedAt  time.Time `json:"synced_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Contact *Contact `json:"contact,omitempty" gorm:"foreignKey:ContactID;references:ID;constraint:OnDelete:SET NULL"`
	Lead    *Lead    `json:"lead,omitempty" gorm:"foreignKey:LeadID;references:ID;constraint:OnDelete:SET NULL"`
}

// TableName specifies the table name for the CallLog model
func (CallLog) TableName() string {
	return "call_logs"
}

// BeforeSave recomputes the direction and outcome flags so they can never
// drift from the stored CdrType / DialStatus values.
func (c *CallLog) BeforeSave(tx *gorm.DB) error {
	c.Reclassify()
	return nil
}

// Reclassify derives IsIncoming/IsOutgoing from the CDR type and
// IsAnswered/IsMissed from the dial status. Codes outside the known sets
// leave both flags of the pair false.
func (c *CallLog) Reclassify() {
	c.IsIncoming = containsInt(IncomingCdrTypes, c.CdrType)
	c.IsOutgoing = containsInt(OutgoingCdrTypes, c.CdrType)
	c.IsAnswered = containsString(AnsweredDialStatuses, c.DialStatus)
	c.IsMissed = containsString(MissedDialStatuses, c.DialStatus)
}

// LinkKind identifies which CRM entity a call is linked to.
type LinkKind string

const (
	LinkNone    LinkKind = ""
	LinkContact LinkKind = "contact"
	LinkLead    LinkKind = "lead"
)

// CallLink is the tagged view over the two nullable linkage columns.
// A contact link takes precedence if both columns were ever populated.
type CallLink struct {
	Kind LinkKind
	ID   string
}

// Link returns the call's CRM linkage as a tagged value.
func (c *CallLog) Link() CallLink {
	if c.ContactID != nil && *c.ContactID != "" {
		return CallLink{Kind: LinkContact, ID: *c.ContactID}
	}
	if c.LeadID != nil && *c.LeadID != "" {
		return CallLink{Kind: LinkLead, ID: *c.LeadID}
	}
	return CallLink{Kind: LinkNone}
}

func containsInt(set []int, v int) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// CallLogResponse represents the response for call log endpoints
type CallLogResponse struct {
	ID            string  `json:"id"`
	CallID        string  `json:"call_id"`
	Date          string  `json:"date"`
	CallerNumber  string  `json:"caller_number"`
	TargetNumber  string  `json:"target_number"`
	DID           string  `json:"did"`
	Duration      int     `json:"duration"`
	RingTime      int     `json:"ring_time"`
	DialStatus    string  `json:"dial_status"`
	IsIncoming    bool    `json:"is_incoming"`
	IsOutgoing    bool    `json:"is_outgoing"`
	IsAnswered    bool    `json:"is_answered"`
	IsMissed      bool    `json:"is_missed"`
	RecordURL     string  `json:"record_url,omitempty"`
	ContactID     *string `json:"contact_id,omitempty"`
	LeadID        *string `json:"lead_id,omitempty"`
	NeedsFollowup bool    `json:"needs_followup"`
	FollowupDone  bool    `json:"followup_done"`
}

// ToResponse converts a CallLog to its API representation
func (c *CallLog) ToResponse() *CallLogResponse {
	return &CallLogResponse{
		ID:            c.ID,
		CallID:        c.CallID,
		Date:          c.Date.Format(time.RFC3339),
		CallerNumber:  c.CallerNumber,
		TargetNumber:  c.TargetNumber,
		DID:           c.DID,
		Duration:      c.Duration,
		RingTime:      c.RingTime,
		DialStatus:    c.DialStatus,
		IsIncoming:    c.IsIncoming,
		IsOutgoing:    c.IsOutgoing,
		IsAnswered:    c.IsAnswered,
		IsMissed:      c.IsMissed,
		RecordURL:     c.RecordURL,
		ContactID:     c.ContactID,
		LeadID:        c.LeadID,
		NeedsFollowup: c.NeedsFollowup,
		FollowupDone:  c.FollowupDone,
	}
}

// CallStats aggregates per-contact or per-lead call figures
type CallStats struct {
	CallCount            int64      `json:"call_count"`
	LastCallDate         *time.Time `json:"last_call_date"`
	TotalDurationMinutes int64      `json:"total_duration_minutes"`
	MissedCallCount      int64      `json:"missed_call_count"`
}
