package entities

import "time"

// MeetingReport is the combined record persisted once a meeting has been
// fully processed: the transcript plus the extracted summary.
type MeetingReport struct {
	MeetingID  string        `json:"meeting_id"`
	Timestamp  time.Time     `json:"timestamp"`
	Transcript string        `json:"transcript"`
	Summary    SummaryRecord `json:"summary"`
}

// NewMeetingReport creates a report for a processed meeting.
func NewMeetingReport(meetingID, transcript string, summary SummaryRecord) *MeetingReport {
	return &MeetingReport{
		MeetingID:  meetingID,
		Timestamp:  time.Now(),
		Transcript: transcript,
		Summary:    summary,
	}
}
