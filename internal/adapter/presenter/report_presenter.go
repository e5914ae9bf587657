package presenter

import (
	"fmt"
	"strings"

	meetingdto "github.com/meeting-summarizer-team/meeting-summarizer/internal/adapter/dto/meeting"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/entities"
)

const previewLength = 200

// ToReportResponse converts a meeting report entity to its API shape.
func ToReportResponse(report *entities.MeetingReport, includeTranscript bool) *meetingdto.ReportResponse {
	resp := &meetingdto.ReportResponse{
		MeetingID: report.MeetingID,
		Timestamp: report.Timestamp,
		Summary:   report.Summary,
	}
	if includeTranscript {
		resp.Transcript = report.Transcript
	}
	return resp
}

// ToReportList converts reports into history rows with a short summary
// preview.
func ToReportList(reports []*entities.MeetingReport) []*meetingdto.ReportListItem {
	items := make([]*meetingdto.ReportListItem, len(reports))
	for i, report := range reports {
		preview := report.Summary.Section(entities.SectionSummary)
		// Truncate on a rune boundary, not a byte offset.
		if runes := []rune(preview); len(runes) > previewLength {
			preview = string(runes[:previewLength]) + "..."
		}
		items[i] = &meetingdto.ReportListItem{
			MeetingID:      report.MeetingID,
			Timestamp:      report.Timestamp,
			SummaryPreview: preview,
		}
	}
	return items
}

// ExportText renders a report as a downloadable plain-text document:
// banner-separated sections followed by the full transcript.
func ExportText(report *entities.MeetingReport) string {
	banner := strings.Repeat("=", 50)

	var b strings.Builder
	b.WriteString("MEETING SUMMARY REPORT\n")
	fmt.Fprintf(&b, "Generated on: %s\n", report.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Meeting ID: %s\n", report.MeetingID)

	for _, key := range entities.SectionKeys() {
		content := report.Summary.Section(key)
		if content == "" {
			content = "Not available"
		}
		fmt.Fprintf(&b, "\n%s\n%s\n%s\n%s\n",
			banner, strings.ToUpper(entities.SectionTitle(key)), banner, content)
	}

	fmt.Fprintf(&b, "\n%s\nFULL TRANSCRIPT\n%s\n%s\n",
		banner, banner, report.Transcript)
	return b.String()
}
