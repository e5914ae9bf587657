package handler

import (
	stdErrors "errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meeting-summarizer-team/meeting-summarizer/errors"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/adapter/presenter"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/entities"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/repositories"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/usecase/pipeline"
	"github.com/meeting-summarizer-team/meeting-summarizer/pkg/audio"
	"github.com/meeting-summarizer-team/meeting-summarizer/pkg/config"
)

// MeetingHandler handles meeting processing and history endpoints
type MeetingHandler struct {
	pipeline pipeline.Service
	reports  repositories.ReportRepository
	cfg      *config.Config
	logger   *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(
	pipelineService pipeline.Service,
	reports repositories.ReportRepository,
	cfg *config.Config,
	logger *zap.Logger,
) *MeetingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MeetingHandler{
		pipeline: pipelineService,
		reports:  reports,
		cfg:      cfg,
		logger:   logger,
	}
}

// ProcessMeeting accepts a multipart audio upload and runs the full
// pipeline on it: transcription, chunk indexing, context retrieval,
// summary generation, and report persistence.
func (h *MeetingHandler) ProcessMeeting(c echo.Context) error {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrAudioInvalid("Missing audio file"))
	}

	if err := audio.ValidateFile(fileHeader.Filename, fileHeader.Size, h.cfg.Audio.MaxSizeMB, h.cfg.Audio.SupportedFormats); err != nil {
		if stdErrors.Is(err, entities.ErrAudioTooLarge) {
			return HandleError(h.logger, c, errors.ErrAudioTooLarge(h.cfg.Audio.MaxSizeMB))
		}
		return HandleError(h.logger, c, errors.ErrAudioInvalid(err.Error()))
	}

	h.logger.Info("audio file received",
		zap.String("filename", fileHeader.Filename),
		zap.String("size", audio.FormatFileSize(fileHeader.Size)),
	)

	audioPath, err := h.saveUpload(fileHeader)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	defer os.Remove(audioPath)

	report, err := h.pipeline.ProcessMeeting(c.Request().Context(), audioPath)
	if err != nil {
		return HandleError(h.logger, c, stageToAppError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToReportResponse(report, true))
}

// ListMeetings returns the processed meeting history, newest first.
func (h *MeetingHandler) ListMeetings(c echo.Context) error {
	reports, err := h.reports.ListReports(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	return HandleSuccess(h.logger, c, presenter.ToReportList(reports))
}

// GetMeeting returns a stored report by meeting identity.
func (h *MeetingHandler) GetMeeting(c echo.Context) error {
	meetingID := c.Param("id")

	report, err := h.reports.GetReportByMeetingID(c.Request().Context(), meetingID)
	if err != nil {
		if stdErrors.Is(err, entities.ErrReportNotFound) {
			return HandleError(h.logger, c, errors.ErrNotFound("Report").WithDetail("meeting_id", meetingID))
		}
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	return HandleSuccess(h.logger, c, presenter.ToReportResponse(report, true))
}

// ExportMeeting returns a stored report as a plain-text download.
func (h *MeetingHandler) ExportMeeting(c echo.Context) error {
	meetingID := c.Param("id")

	report, err := h.reports.GetReportByMeetingID(c.Request().Context(), meetingID)
	if err != nil {
		if stdErrors.Is(err, entities.ErrReportNotFound) {
			return HandleError(h.logger, c, errors.ErrNotFound("Report").WithDetail("meeting_id", meetingID))
		}
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s_summary.txt"`, meetingID))
	return c.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(presenter.ExportText(report)))
}

// saveUpload copies the uploaded file to a temp path, preserving the
// extension so the transcriber sees the right container format.
func (h *MeetingHandler) saveUpload(fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	dst, err := os.CreateTemp("", "meeting-upload-*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to save upload: %w", err)
	}
	return dst.Name(), nil
}

// stageToAppError maps a pipeline stage failure to the API error shape.
func stageToAppError(err error) error {
	var stageErr *pipeline.StageError
	if !stdErrors.As(err, &stageErr) {
		return errors.ErrInternal(err)
	}

	switch stageErr.Stage {
	case pipeline.StageTranscription:
		return errors.ErrTranscriptionFailed(stageErr.Err)
	case pipeline.StageChunkStore:
		if stdErrors.Is(stageErr.Err, entities.ErrEmptyTranscript) {
			return errors.ErrEmptyTranscript()
		}
		return errors.ErrChunkStoreFailed(stageErr.Err)
	case pipeline.StageSummary:
		return errors.ErrSummaryFailed(stageErr.Err)
	case pipeline.StageReportSave:
		return errors.ErrReportSaveFailed(stageErr.Err)
	default:
		return errors.ErrInternal(err)
	}
}
