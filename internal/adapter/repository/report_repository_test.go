package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/entities"
)

func newTestReportRepo(t *testing.T) *FileReportRepository {
	t.Helper()
	repo, err := NewFileReportRepository(t.TempDir(), nil)
	require.NoError(t, err)
	return repo
}

func sampleReport(meetingID string, ts time.Time) *entities.MeetingReport {
	return &entities.MeetingReport{
		MeetingID:  meetingID,
		Timestamp:  ts,
		Transcript: "Speaker A: hello everyone.",
		Summary: entities.SummaryRecord{
			entities.SectionSummary: "A short sync about nothing in particular.",
			entities.SectionTopics:  "- greetings",
		},
	}
}

func TestSaveAndGetReport(t *testing.T) {
	repo := newTestReportRepo(t)
	ctx := context.Background()

	want := sampleReport("meeting_20260830_120000_aabbccdd", time.Now().UTC().Truncate(time.Second))
	require.NoError(t, repo.SaveReport(ctx, want))

	got, err := repo.GetReportByMeetingID(ctx, want.MeetingID)
	require.NoError(t, err)

	assert.Equal(t, want.MeetingID, got.MeetingID)
	assert.Equal(t, want.Transcript, got.Transcript)
	assert.Equal(t, want.Summary, got.Summary)
	assert.True(t, want.Timestamp.Equal(got.Timestamp))
}

func TestSaveReportOverwrites(t *testing.T) {
	repo := newTestReportRepo(t)
	ctx := context.Background()

	report := sampleReport("meeting_dup", time.Now())
	require.NoError(t, repo.SaveReport(ctx, report))

	report.Summary[entities.SectionSummary] = "updated summary"
	require.NoError(t, repo.SaveReport(ctx, report))

	got, err := repo.GetReportByMeetingID(ctx, "meeting_dup")
	require.NoError(t, err)
	assert.Equal(t, "updated summary", got.Summary[entities.SectionSummary])

	reports, err := repo.ListReports(ctx)
	require.NoError(t, err)
	assert.Len(t, reports, 1)
}

func TestGetReportNotFound(t *testing.T) {
	repo := newTestReportRepo(t)

	_, err := repo.GetReportByMeetingID(context.Background(), "meeting_missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrReportNotFound)
}

func TestSaveReportNil(t *testing.T) {
	repo := newTestReportRepo(t)

	require.Error(t, repo.SaveReport(context.Background(), nil))
}

func TestListReportsNewestFirst(t *testing.T) {
	repo := newTestReportRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveReport(ctx, sampleReport("meeting_old", base)))
	require.NoError(t, repo.SaveReport(ctx, sampleReport("meeting_new", base.Add(2*time.Hour))))
	require.NoError(t, repo.SaveReport(ctx, sampleReport("meeting_mid", base.Add(time.Hour))))

	reports, err := repo.ListReports(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 3)

	assert.Equal(t, "meeting_new", reports[0].MeetingID)
	assert.Equal(t, "meeting_mid", reports[1].MeetingID)
	assert.Equal(t, "meeting_old", reports[2].MeetingID)
}

func TestListReportsEmptyDir(t *testing.T) {
	repo := newTestReportRepo(t)

	reports, err := repo.ListReports(context.Background())
	require.NoError(t, err)
	assert.Empty(t, reports)
}
