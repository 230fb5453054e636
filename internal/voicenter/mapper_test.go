package voicenter

import (
	"encoding/json"
	"testing"
	"time"
)

func TestMapCDR_DateFormats(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date string
		want time.Time
	}{
		{"iso with zone suffix", "2025-05-30T14:22:10Z", time.Date(2025, 5, 30, 14, 22, 10, 0, time.UTC)},
		{"space separated", "2025-05-30 14:22:10", time.Date(2025, 5, 30, 14, 22, 10, 0, time.UTC)},
		{"unparseable", "30/05/2025", time.Time{}},
		{"empty", "", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call := MapCDR(CDR{CallID: "c1", Date: tt.date}, now)
			if !call.Date.Equal(tt.want) {
				t.Errorf("Date = %v, want %v", call.Date, tt.want)
			}
			// A bad date must not drop the record
			if call.CallID != "c1" {
				t.Errorf("CallID = %q, want c1", call.CallID)
			}
		})
	}
}

func TestMapCDR_Defaults(t *testing.T) {
	call := MapCDR(CDR{CallID: "c2"}, time.Now())

	if call.Duration != 0 || call.RingTime != 0 || call.Price != 0 {
		t.Errorf("numeric fields should default to zero, got %d/%d/%f", call.Duration, call.RingTime, call.Price)
	}
	if call.RecordExpect {
		t.Error("RecordExpect should default to false")
	}
	if call.DTMFData != nil {
		t.Errorf("DTMFData should be nil when absent, got %q", *call.DTMFData)
	}
	if call.CustomData != nil {
		t.Errorf("CustomData should be nil when absent, got %q", *call.CustomData)
	}
}

func TestMapCDR_JSONBlobs(t *testing.T) {
	tests := []struct {
		name string
		raw  json.RawMessage
		want *string
	}{
		{"absent", nil, nil},
		{"null", json.RawMessage("null"), nil},
		{"empty object", json.RawMessage("{}"), nil},
		{"empty array", json.RawMessage("[]"), nil},
		{"payload", json.RawMessage(`{"key":"1"}`), strPtr(`{"key":"1"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call := MapCDR(CDR{CallID: "c3", DTMFData: tt.raw}, time.Now())
			switch {
			case tt.want == nil && call.DTMFData != nil:
				t.Errorf("DTMFData = %q, want nil", *call.DTMFData)
			case tt.want != nil && (call.DTMFData == nil || *call.DTMFData != *tt.want):
				t.Errorf("DTMFData = %v, want %q", call.DTMFData, *tt.want)
			}
		})
	}
}

func TestMapCDR_DirectionClassification(t *testing.T) {
	tests := []struct {
		cdrType      int
		wantIncoming bool
		wantOutgoing bool
	}{
		{1, true, false},
		{8, true, false},
		{11, true, false},
		{18, true, false},
		{19, true, false},
		{4, false, true},
		{9, false, true},
		{10, false, true},
		{14, false, true},
		{15, false, true},
		{0, false, false},
		{99, false, false}, // unlisted vendor code
	}

	for _, tt := range tests {
		call := MapCDR(CDR{CallID: "c4", CdrType: tt.cdrType}, time.Now())
		if call.IsIncoming != tt.wantIncoming || call.IsOutgoing != tt.wantOutgoing {
			t.Errorf("CdrType %d: incoming/outgoing = %v/%v, want %v/%v",
				tt.cdrType, call.IsIncoming, call.IsOutgoing, tt.wantIncoming, tt.wantOutgoing)
		}
		if call.IsIncoming && call.IsOutgoing {
			t.Errorf("CdrType %d: call is both incoming and outgoing", tt.cdrType)
		}
	}
}

func TestMapCDR_StatusClassification(t *testing.T) {
	answered := []string{"ANSWER", "VOICEMAIL"}
	missed := []string{
		"NOANSWER", "CANCEL", "ABANDONE", "TIMEOUT", "BUSY", "FULL",
		"EXIT", "VOEND", "NOTDIALED", "NOTCALLED", "CONGESTION", "CHANUNAVAIL",
	}

	for _, status := range answered {
		call := MapCDR(CDR{CallID: "c5", DialStatus: status}, time.Now())
		if !call.IsAnswered || call.IsMissed {
			t.Errorf("DialStatus %s: answered/missed = %v/%v, want true/false", status, call.IsAnswered, call.IsMissed)
		}
	}
	for _, status := range missed {
		call := MapCDR(CDR{CallID: "c5", DialStatus: status}, time.Now())
		if call.IsAnswered || !call.IsMissed {
			t.Errorf("DialStatus %s: answered/missed = %v/%v, want false/true", status, call.IsAnswered, call.IsMissed)
		}
	}

	call := MapCDR(CDR{CallID: "c5", DialStatus: "SOMETHING_NEW"}, time.Now())
	if call.IsAnswered || call.IsMissed {
		t.Error("unknown dial status should leave both flags false")
	}
}

func strPtr(s string) *string {
	return &s
}
