package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/entities"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/repositories"
)

// Transcriber converts a local audio file into a transcript string.
type Transcriber interface {
	TranscribeFile(ctx context.Context, audioPath string) (string, error)
}

// ContextStore indexes transcripts and reconstructs meeting context.
type ContextStore interface {
	StoreTranscript(ctx context.Context, transcript, meetingID string) (int, error)
	GetMeetingContext(ctx context.Context, meetingID string) string
}

// Summarizer produces a structured summary record for a transcript.
type Summarizer interface {
	Summarize(ctx context.Context, transcript, meetingContext string) (entities.SummaryRecord, error)
}

// Service runs the meeting pipeline end to end, one meeting at a time:
// transcribe, index chunks, reconstruct context, summarize, extract,
// persist. Stage failures abort the run and name the failing stage;
// side effects of completed stages are kept.
type Service interface {
	ProcessMeeting(ctx context.Context, audioPath string) (*entities.MeetingReport, error)
	ProcessTranscript(ctx context.Context, transcript string) (*entities.MeetingReport, error)
}

type pipelineService struct {
	transcriber Transcriber
	contexts    ContextStore
	summarizer  Summarizer
	reports     repositories.ReportRepository
	logger      *zap.Logger
}

// NewService constructs the pipeline orchestrator.
func NewService(
	transcriber Transcriber,
	contexts ContextStore,
	summarizer Summarizer,
	reports repositories.ReportRepository,
	logger *zap.Logger,
) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &pipelineService{
		transcriber: transcriber,
		contexts:    contexts,
		summarizer:  summarizer,
		reports:     reports,
		logger:      logger,
	}
}

// ProcessMeeting transcribes a recording and runs the rest of the
// pipeline on the result.
func (s *pipelineService) ProcessMeeting(ctx context.Context, audioPath string) (*entities.MeetingReport, error) {
	runID := uuid.New().String()
	logger := s.logger.With(
		zap.String("run_id", runID),
		zap.String("audio_path", audioPath),
	)
	logger.Info("starting meeting pipeline")

	transcript, err := s.transcriber.TranscribeFile(ctx, audioPath)
	if err != nil {
		return nil, &StageError{Stage: StageTranscription, Err: err}
	}
	if strings.TrimSpace(transcript) == "" {
		return nil, &StageError{Stage: StageTranscription, Err: fmt.Errorf("no transcript generated")}
	}
	logger.Info("transcription complete", zap.Int("transcript_len", len(transcript)))

	return s.process(ctx, logger, transcript)
}

// ProcessTranscript runs the pipeline on an already-transcribed text.
func (s *pipelineService) ProcessTranscript(ctx context.Context, transcript string) (*entities.MeetingReport, error) {
	runID := uuid.New().String()
	logger := s.logger.With(zap.String("run_id", runID))
	logger.Info("starting transcript pipeline")

	return s.process(ctx, logger, transcript)
}

func (s *pipelineService) process(ctx context.Context, logger *zap.Logger, transcript string) (*entities.MeetingReport, error) {
	meetingID := entities.NewMeetingID([]byte(transcript), time.Now())
	logger = logger.With(zap.String("meeting_id", meetingID))

	chunkCount, err := s.contexts.StoreTranscript(ctx, transcript, meetingID)
	if err != nil {
		return nil, &StageError{Stage: StageChunkStore, Err: err}
	}
	logger.Info("transcript chunks stored", zap.Int("chunks", chunkCount))

	// Context retrieval cannot fail the pipeline; an empty context is a
	// valid degenerate input to generation.
	meetingContext := s.contexts.GetMeetingContext(ctx, meetingID)
	logger.Info("meeting context reconstructed", zap.Int("context_len", len(meetingContext)))

	record, err := s.summarizer.Summarize(ctx, transcript, meetingContext)
	if err != nil {
		return nil, &StageError{Stage: StageSummary, Err: err}
	}

	report := entities.NewMeetingReport(meetingID, transcript, record)
	if err := s.reports.SaveReport(ctx, report); err != nil {
		return nil, &StageError{Stage: StageReportSave, Err: err}
	}

	logger.Info("meeting pipeline complete",
		zap.Int("chunks", chunkCount),
		zap.Bool("extraction_degraded", record.HasError()),
	)
	return report, nil
}
