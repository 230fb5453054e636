package voicenter

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hamarpea/voicenter-crm-backend/internal/models"
)

// Accepted CDR date layouts, tried in order
var dateLayouts = []string{
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
}

// MapCDR converts one raw vendor CDR into a normalized call log record.
// A date that matches neither layout yields a zero Date and a logged
// warning; the record is still produced. Linkage and follow-up fields are
// left untouched so an upsert never clobbers them.
func MapCDR(cdr CDR, now time.Time) models.CallLog {
	call := models.CallLog{
		CallID:             cdr.CallID,
		Date:               parseDate(cdr.Date),
		CallerNumber:       cdr.CallerNumber,
		TargetNumber:       cdr.TargetNumber,
		CallerExtension:    cdr.CallerExtension,
		TargetExtension:    cdr.TargetExtension,
		DID:                cdr.DID,
		Duration:           cdr.Duration,
		RingTime:           cdr.RingTime,
		CallType:           cdr.Type,
		CdrType:            cdr.CdrType,
		DialStatus:         cdr.DialStatus,
		RecordURL:          cdr.RecordURL,
		RecordExpect:       cdr.RecordExpect,
		RepresentativeName: cdr.RepresentativeName,
		RepresentativeCode: cdr.RepresentativeCode,
		UserName:           cdr.UserName,
		DepartmentName:     cdr.DepartmentName,
		DepartmentIDExt:    cdr.DepartmentID,
		QueueName:          cdr.QueueName,
		Price:              cdr.Price,
		TargetPrefixName:   cdr.TargetPrefixName,
		DTMFData:           rawJSONToText(cdr.DTMFData),
		CustomData:         rawJSONToText(cdr.CustomData),
		SyncedAt:           now,
	}
	call.Reclassify()
	return call
}

func parseDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	logrus.Warnf("Could not parse CDR date: %s", value)
	return time.Time{}
}

// rawJSONToText serializes a JSON sub-object to text. Absent or empty
// values map to nil, not an empty string.
func rawJSONToText(raw []byte) *string {
	if len(raw) == 0 {
		return nil
	}
	s := string(raw)
	switch s {
	case "null", "{}", "[]", `""`:
		return nil
	}
	return &s
}
