package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meeting-summarizer-team/meeting-summarizer/errors"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/entities"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/usecase/pipeline"
	"github.com/meeting-summarizer-team/meeting-summarizer/pkg/config"
	pkgvalidator "github.com/meeting-summarizer-team/meeting-summarizer/pkg/validator"
)

type fakePipeline struct {
	report *entities.MeetingReport
	err    error
}

func (f *fakePipeline) ProcessMeeting(_ context.Context, _ string) (*entities.MeetingReport, error) {
	return f.report, f.err
}

func (f *fakePipeline) ProcessTranscript(_ context.Context, _ string) (*entities.MeetingReport, error) {
	return f.report, f.err
}

type fakeReportRepo struct {
	reports map[string]*entities.MeetingReport
}

func (f *fakeReportRepo) SaveReport(_ context.Context, report *entities.MeetingReport) error {
	f.reports[report.MeetingID] = report
	return nil
}

func (f *fakeReportRepo) GetReportByMeetingID(_ context.Context, meetingID string) (*entities.MeetingReport, error) {
	report, ok := f.reports[meetingID]
	if !ok {
		return nil, entities.ErrReportNotFound
	}
	return report, nil
}

func (f *fakeReportRepo) ListReports(_ context.Context) ([]*entities.MeetingReport, error) {
	out := make([]*entities.MeetingReport, 0, len(f.reports))
	for _, r := range f.reports {
		out = append(out, r)
	}
	return out, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Audio: config.AudioConfig{
			MaxSizeMB:        250,
			SupportedFormats: []string{".mp3", ".wav"},
		},
	}
}

func storedReport() *entities.MeetingReport {
	return &entities.MeetingReport{
		MeetingID:  "meeting_20260830_120000_aabbccdd",
		Timestamp:  time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Transcript: "Speaker A: hello.",
		Summary:    entities.SummaryRecord{entities.SectionSummary: "A quick sync."},
	}
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = pkgvalidator.New()
	return e
}

func newMeetingHandler(p pipeline.Service, repo *fakeReportRepo) *MeetingHandler {
	return NewMeetingHandler(p, repo, testConfig(), nil)
}

func multipartAudio(t *testing.T, fieldFilename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("audio", fieldFilename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestProcessMeetingSuccess(t *testing.T) {
	e := newTestEcho()
	h := newMeetingHandler(&fakePipeline{report: storedReport()}, &fakeReportRepo{reports: map[string]*entities.MeetingReport{}})

	body, contentType := multipartAudio(t, "standup.mp3", []byte("fake audio bytes"))
	req := httptest.NewRequest(http.MethodPost, "/v1/meetings/process", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()

	require.NoError(t, h.ProcessMeeting(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			MeetingID  string            `json:"meeting_id"`
			Summary    map[string]string `json:"summary"`
			Transcript string            `json:"transcript"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "meeting_20260830_120000_aabbccdd", resp.Data.MeetingID)
	assert.Equal(t, "A quick sync.", resp.Data.Summary["summary"])
	assert.Equal(t, "Speaker A: hello.", resp.Data.Transcript)
}

func TestHandlersDefaultNilLogger(t *testing.T) {
	// Constructors follow the service convention: nil means no-op, and
	// the logging paths stay safe to hit.
	e := newTestEcho()
	h := NewMeetingHandler(&fakePipeline{report: storedReport()}, &fakeReportRepo{reports: map[string]*entities.MeetingReport{}}, testConfig(), nil)
	require.NotNil(t, h.logger)

	body, contentType := multipartAudio(t, "standup.mp3", []byte("fake audio bytes"))
	req := httptest.NewRequest(http.MethodPost, "/v1/meetings/process", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()

	require.NotPanics(t, func() {
		require.NoError(t, h.ProcessMeeting(e.NewContext(req, rec)))
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	sh := NewSearchHandler(&fakeSearcher{}, nil)
	require.NotNil(t, sh.logger)
}

func TestProcessMeetingMissingFile(t *testing.T) {
	e := newTestEcho()
	h := newMeetingHandler(&fakePipeline{}, &fakeReportRepo{reports: map[string]*entities.MeetingReport{}})

	req := httptest.NewRequest(http.MethodPost, "/v1/meetings/process", strings.NewReader(""))
	rec := httptest.NewRecorder()

	require.NoError(t, h.ProcessMeeting(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProcessMeetingUnsupportedFormat(t *testing.T) {
	e := newTestEcho()
	h := newMeetingHandler(&fakePipeline{}, &fakeReportRepo{reports: map[string]*entities.MeetingReport{}})

	body, contentType := multipartAudio(t, "notes.txt", []byte("not audio"))
	req := httptest.NewRequest(http.MethodPost, "/v1/meetings/process", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()

	require.NoError(t, h.ProcessMeeting(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProcessMeetingStageErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "transcription failure",
			err:      &pipeline.StageError{Stage: pipeline.StageTranscription, Err: assert.AnError},
			wantCode: http.StatusInternalServerError,
		},
		{
			name:     "empty transcript",
			err:      &pipeline.StageError{Stage: pipeline.StageChunkStore, Err: entities.ErrEmptyTranscript},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:     "summary failure",
			err:      &pipeline.StageError{Stage: pipeline.StageSummary, Err: assert.AnError},
			wantCode: http.StatusInternalServerError,
		},
		{
			name:     "unclassified failure",
			err:      assert.AnError,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			h := newMeetingHandler(&fakePipeline{err: tt.err}, &fakeReportRepo{reports: map[string]*entities.MeetingReport{}})

			body, contentType := multipartAudio(t, "standup.mp3", []byte("fake audio bytes"))
			req := httptest.NewRequest(http.MethodPost, "/v1/meetings/process", body)
			req.Header.Set(echo.HeaderContentType, contentType)
			rec := httptest.NewRecorder()

			require.NoError(t, h.ProcessMeeting(e.NewContext(req, rec)))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestGetMeeting(t *testing.T) {
	e := newTestEcho()
	report := storedReport()
	repo := &fakeReportRepo{reports: map[string]*entities.MeetingReport{report.MeetingID: report}}
	h := newMeetingHandler(&fakePipeline{}, repo)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/meetings/:id")
	c.SetParamNames("id")
	c.SetParamValues(report.MeetingID)

	require.NoError(t, h.GetMeeting(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), report.MeetingID)
}

func TestGetMeetingNotFound(t *testing.T) {
	e := newTestEcho()
	h := newMeetingHandler(&fakePipeline{}, &fakeReportRepo{reports: map[string]*entities.MeetingReport{}})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/meetings/:id")
	c.SetParamNames("id")
	c.SetParamValues("meeting_missing")

	require.NoError(t, h.GetMeeting(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportMeeting(t *testing.T) {
	e := newTestEcho()
	report := storedReport()
	repo := &fakeReportRepo{reports: map[string]*entities.MeetingReport{report.MeetingID: report}}
	h := newMeetingHandler(&fakePipeline{}, repo)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/meetings/:id/export")
	c.SetParamNames("id")
	c.SetParamValues(report.MeetingID)

	require.NoError(t, h.ExportMeeting(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), report.MeetingID+"_summary.txt")
	assert.Contains(t, rec.Body.String(), "MEETING SUMMARY REPORT")
	assert.Contains(t, rec.Body.String(), "FULL TRANSCRIPT")
}

type fakeSearcher struct {
	results []string
	gotK    int
}

func (f *fakeSearcher) Query(_ context.Context, _ string, k int) []string {
	f.gotK = k
	return f.results
}

func TestSearch(t *testing.T) {
	e := newTestEcho()
	searcher := &fakeSearcher{results: []string{"chunk one", "chunk two"}}
	h := NewSearchHandler(searcher, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/search", strings.NewReader(`{"query":"budget","k":2}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Search(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, searcher.gotK)
	assert.Contains(t, rec.Body.String(), "chunk one")
}

func TestSearchDefaultsLimit(t *testing.T) {
	e := newTestEcho()
	searcher := &fakeSearcher{results: []string{}}
	h := NewSearchHandler(searcher, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/search", strings.NewReader(`{"query":"budget"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Search(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, defaultSearchLimit, searcher.gotK)
}

func TestSearchMissingQuery(t *testing.T) {
	e := newTestEcho()
	h := NewSearchHandler(&fakeSearcher{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/search", strings.NewReader(`{"k":3}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Search(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleErrorShapes(t *testing.T) {
	e := newTestEcho()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, HandleError(nil, c, errors.ErrEmptyTranscript()))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int(errors.ErrorCode_EMPTY_TRANSCRIPT), body.Code)
	assert.Equal(t, "No chunks created from transcript", body.Message)
}
