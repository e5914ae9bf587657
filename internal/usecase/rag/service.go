package rag

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/entities"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/repositories"
)

// Embedder is the embedding capability the service needs, satisfied by
// pkg/ai.Embedder.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Service chunks transcripts, indexes them by meeting identity, and
// reconstructs meeting context for summary generation.
type Service struct {
	chunkRepo repositories.ChunkRepository
	embedder  Embedder
	splitter  *Splitter
	pool      *ants.Pool
	logger    *zap.Logger
}

// NewService creates the retrieval service. embedWorkers bounds the
// number of concurrent embedding calls during ingestion.
func NewService(
	chunkRepo repositories.ChunkRepository,
	embedder Embedder,
	splitter *Splitter,
	embedWorkers int,
	logger *zap.Logger,
) (*Service, error) {
	if chunkRepo == nil {
		return nil, fmt.Errorf("chunk repository is required")
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	if splitter == nil {
		return nil, fmt.Errorf("splitter is required")
	}
	if embedWorkers <= 0 {
		embedWorkers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	pool, err := ants.NewPool(embedWorkers)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding pool: %w", err)
	}

	return &Service{
		chunkRepo: chunkRepo,
		embedder:  embedder,
		splitter:  splitter,
		pool:      pool,
		logger:    logger,
	}, nil
}

// Close releases the embedding worker pool.
func (s *Service) Close() {
	s.pool.Release()
}

// StoreTranscript splits a transcript into overlapping chunks, embeds
// them, and persists the whole set atomically keyed by meeting identity.
// Returns the number of chunks stored.
func (s *Service) StoreTranscript(ctx context.Context, transcript, meetingID string) (int, error) {
	texts, err := s.splitter.Split(transcript)
	if err != nil {
		return 0, fmt.Errorf("failed to split transcript: %w", err)
	}
	if len(texts) == 0 {
		return 0, entities.ErrEmptyTranscript
	}

	chunks := make([]*entities.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = entities.NewChunk(meetingID, text, i, len(texts))
	}

	if err := s.embedChunks(ctx, chunks); err != nil {
		return 0, fmt.Errorf("failed to embed chunks: %w", err)
	}

	if err := s.chunkRepo.StoreChunks(ctx, meetingID, chunks); err != nil {
		return 0, err
	}

	s.logger.Info("transcript indexed",
		zap.String("meeting_id", meetingID),
		zap.Int("chunks", len(chunks)),
	)
	return len(chunks), nil
}

// embedChunks computes embeddings for all chunks through the worker
// pool. Vectors are assigned by index, so completion order is
// irrelevant; the first error wins.
func (s *Service) embedChunks(ctx context.Context, chunks []*entities.Chunk) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	setErr := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for i := range chunks {
		chunk := chunks[i]
		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			vector, err := s.embedder.EmbedText(ctx, chunk.Text)
			if err != nil {
				setErr(err)
				return
			}
			chunk.Vector = vector
		})
		if err != nil {
			wg.Done()
			setErr(err)
		}
	}
	wg.Wait()

	return firstErr
}

// GetMeetingContext reconstructs the full context for a meeting:
// all of its chunks, ordered by chunk index, joined with single spaces.
// Returns an empty string when no chunks exist or the store is
// unavailable; it never fails the caller.
func (s *Service) GetMeetingContext(ctx context.Context, meetingID string) string {
	chunks, err := s.chunkRepo.GetChunksByMeetingID(ctx, meetingID)
	if err != nil {
		s.logger.Warn("failed to load meeting chunks",
			zap.String("meeting_id", meetingID),
			zap.Error(err),
		)
		return ""
	}
	if len(chunks) == 0 {
		return ""
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ChunkIndex < chunks[j].ChunkIndex
	})

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	return strings.Join(texts, " ")
}

// Query returns up to k chunk texts across all indexed meetings, ranked
// by embedding similarity to the query. Returns an empty slice on any
// underlying failure; it never fails the caller.
func (s *Service) Query(ctx context.Context, text string, k int) []string {
	vector, err := s.embedder.EmbedText(ctx, text)
	if err != nil {
		s.logger.Warn("failed to embed query", zap.Error(err))
		return []string{}
	}

	scored, err := s.chunkRepo.FindSimilar(ctx, vector, k)
	if err != nil {
		s.logger.Warn("similarity search failed", zap.Error(err))
		return []string{}
	}

	texts := make([]string, len(scored))
	for i, result := range scored {
		texts[i] = result.Chunk.Text
	}
	return texts
}
