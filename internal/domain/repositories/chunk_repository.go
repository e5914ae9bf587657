package repositories

import (
	"context"

	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/entities"
)

// ScoredChunk pairs a chunk with its similarity score for a query.
type ScoredChunk struct {
	Chunk *entities.Chunk
	Score float32
}

// ChunkRepository defines chunk storage and retrieval operations.
type ChunkRepository interface {
	// StoreChunks persists all chunks of a meeting as a single atomic
	// write. A failure must leave no partial chunk set visible.
	StoreChunks(ctx context.Context, meetingID string, chunks []*entities.Chunk) error

	// GetChunksByMeetingID returns every chunk stored for the meeting,
	// in no guaranteed order.
	GetChunksByMeetingID(ctx context.Context, meetingID string) ([]*entities.Chunk, error)

	// FindSimilar returns up to limit chunks across all meetings ranked
	// by cosine similarity to the query vector.
	FindSimilar(ctx context.Context, vector []float32, limit int) ([]*ScoredChunk, error)

	// Close releases the backing store.
	Close() error
}
