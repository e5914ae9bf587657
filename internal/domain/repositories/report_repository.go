package repositories

import (
	"context"

	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/entities"
)

// ReportRepository persists finished meeting reports.
type ReportRepository interface {
	// SaveReport durably writes the combined record for a meeting.
	SaveReport(ctx context.Context, report *entities.MeetingReport) error

	// GetReportByMeetingID loads a previously saved report.
	// Returns entities.ErrReportNotFound when none exists.
	GetReportByMeetingID(ctx context.Context, meetingID string) (*entities.MeetingReport, error)

	// ListReports returns all saved reports, newest first.
	ListReports(ctx context.Context) ([]*entities.MeetingReport, error)
}
