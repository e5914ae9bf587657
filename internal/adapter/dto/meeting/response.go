package meeting

import "time"

// ReportResponse is the API shape of a processed meeting report.
type ReportResponse struct {
	MeetingID  string            `json:"meeting_id"`
	Timestamp  time.Time         `json:"timestamp"`
	Summary    map[string]string `json:"summary"`
	Transcript string            `json:"transcript,omitempty"`
}

// ReportListItem is one row of the meeting history listing.
type ReportListItem struct {
	MeetingID      string    `json:"meeting_id"`
	Timestamp      time.Time `json:"timestamp"`
	SummaryPreview string    `json:"summary_preview"`
}

// SearchResponse carries similarity search results.
type SearchResponse struct {
	Query   string   `json:"query"`
	Results []string `json:"results"`
}
