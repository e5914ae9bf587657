package summary

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/entities"
)

// Generator is the generation capability the service needs, satisfied
// by pkg/ai.OllamaClient.
type Generator interface {
	GenerateSummary(ctx context.Context, transcript, meetingContext string) (string, error)
}

// Service turns a transcript plus retrieved context into a structured
// summary record.
type Service struct {
	generator Generator
	extractor *Extractor
	logger    *zap.Logger
}

// NewService creates the summary service.
func NewService(generator Generator, logger *zap.Logger) (*Service, error) {
	if generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		generator: generator,
		extractor: NewExtractor(),
		logger:    logger,
	}, nil
}

// Summarize generates the model response and extracts it into a summary
// record. Generation failures propagate; extraction never fails, though
// the record may be degraded.
func (s *Service) Summarize(ctx context.Context, transcript, meetingContext string) (entities.SummaryRecord, error) {
	raw, err := s.generator.GenerateSummary(ctx, transcript, meetingContext)
	if err != nil {
		return nil, fmt.Errorf("summary generation failed: %w", err)
	}

	record := s.extractor.Extract(raw)
	if record.HasError() {
		s.logger.Warn("summary extraction degraded to raw output",
			zap.Int("response_len", len(raw)),
		)
	}
	return record, nil
}
