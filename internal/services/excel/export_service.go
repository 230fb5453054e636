package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hamarpea/voicenter-crm-backend/internal/database/repository"
	"github.com/hamarpea/voicenter-crm-backend/internal/models"
)

// CallLogLister retrieves call logs for export
type CallLogLister interface {
	List(filter repository.CallLogFilter) ([]*models.CallLog, error)
}

// Service writes call-log reports as Excel workbooks
type Service struct {
	calls      CallLogLister
	exportsDir string
}

// NewExportService creates a new Excel export service instance
func NewExportService(calls CallLogLister, exportsDir string) *Service {
	if _, err := os.Stat(exportsDir); os.IsNotExist(err) {
		os.MkdirAll(exportsDir, 0755)
	}

	return &Service{
		calls:      calls,
		exportsDir: exportsDir,
	}
}

var exportHeaders = []string{
	"Call ID", "Date", "Caller Number", "Target Number", "DID",
	"Duration (s)", "Ring Time (s)", "Dial Status", "Direction",
	"Answered", "Missed", "Representative", "Department", "Queue",
	"Price (Agorot)", "Destination", "Needs Follow-up",
}

// ExportCallLogs writes all calls between from and to into an .xlsx file
// under the exports directory and returns its full path.
func (s *Service) ExportCallLogs(from, to time.Time) (string, error) {
	calls, err := s.calls.List(repository.CallLogFilter{From: &from, To: &to})
	if err != nil {
		return "", fmt.Errorf("failed to load call logs: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Call Logs"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return "", fmt.Errorf("failed to rename sheet: %w", err)
	}

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return "", err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return "", err
		}
	}

	for row, call := range calls {
		values := []interface{}{
			call.CallID,
			call.Date.Format("2006-01-02 15:04:05"),
			call.CallerNumber,
			call.TargetNumber,
			call.DID,
			call.Duration,
			call.RingTime,
			call.DialStatus,
			directionLabel(call),
			call.IsAnswered,
			call.IsMissed,
			call.RepresentativeName,
			call.DepartmentName,
			call.QueueName,
			call.Price,
			call.TargetPrefixName,
			call.NeedsFollowup,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return "", err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return "", err
			}
		}
	}

	filename := fmt.Sprintf("call_logs_%s_%s.xlsx",
		from.Format("20060102"), to.Format("20060102"))
	fullPath := filepath.Join(s.exportsDir, filename)

	if err := f.SaveAs(fullPath); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	return fullPath, nil
}

func directionLabel(call *models.CallLog) string {
	switch {
	case call.IsIncoming:
		return "Incoming"
	case call.IsOutgoing:
		return "Outgoing"
	}
	return ""
}
