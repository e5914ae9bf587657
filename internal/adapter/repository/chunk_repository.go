package repository

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"go.uber.org/zap"

	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/entities"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/repositories"
)

const chunkKeyPrefix = "chk:"

// chunkKey builds the record key for one chunk. The index is written
// BigEndian so prefix iteration returns chunks in index order.
func chunkKey(meetingID string, index int) []byte {
	prefix := []byte(chunkKeyPrefix + meetingID + ":")
	buf := make([]byte, len(prefix)+4)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint32(buf[offset:], uint32(index))
	return buf
}

// meetingKeyPrefix is the shared prefix of all chunk keys of a meeting.
func meetingKeyPrefix(meetingID string) []byte {
	return []byte(chunkKeyPrefix + meetingID + ":")
}

// badgerLoggerAdapter adapts zap to the badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *zap.SugaredLogger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any)   { bl.logger.Errorf(msg, items...) }
func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) { bl.logger.Warnf(msg, items...) }
func (bl *badgerLoggerAdapter) Infof(msg string, items ...any)    { bl.logger.Debugf(msg, items...) }
func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any)   { bl.logger.Debugf(msg, items...) }

// BadgerChunkRepository stores transcript chunks and their embedding
// vectors in an embedded BadgerDB instance.
type BadgerChunkRepository struct {
	db     *badger.DB
	logger *zap.Logger
}

var _ repositories.ChunkRepository = (*BadgerChunkRepository)(nil)

// NewBadgerChunkRepository opens the chunk store at the given path,
// creating the directory if needed. Pass inMemory for tests.
func NewBadgerChunkRepository(path string, inMemory bool, logger *zap.Logger) (*BadgerChunkRepository, error) {
	var opts badger.Options
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create chunk store directory: %w", err)
		}
		opts = badger.DefaultOptions(path)
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	opts.Logger = &badgerLoggerAdapter{logger: logger.Sugar()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open chunk store: %w", err)
	}

	return &BadgerChunkRepository{db: db, logger: logger}, nil
}

// StoreChunks writes every chunk of a meeting inside one transaction, so
// a failure mid-write leaves no partial chunk set visible to readers.
func (r *BadgerChunkRepository) StoreChunks(ctx context.Context, meetingID string, chunks []*entities.Chunk) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := r.db.Update(func(tx *badger.Txn) error {
		for _, chunk := range chunks {
			value, err := json.Marshal(chunk)
			if err != nil {
				return fmt.Errorf("failed to serialize chunk %s: %w", chunk.ID, err)
			}
			if err := tx.Set(chunkKey(meetingID, chunk.ChunkIndex), value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store chunks for %s: %w", meetingID, err)
	}

	r.logger.Info("stored chunks",
		zap.String("meeting_id", meetingID),
		zap.Int("count", len(chunks)),
	)
	return nil
}

// GetChunksByMeetingID returns all chunks stored for a meeting.
func (r *BadgerChunkRepository) GetChunksByMeetingID(ctx context.Context, meetingID string) ([]*entities.Chunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var chunks []*entities.Chunk
	err := r.db.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = meetingKeyPrefix(meetingID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var chunk entities.Chunk
			err := iter.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &chunk)
			})
			if err != nil {
				return err
			}
			chunks = append(chunks, &chunk)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read chunks for %s: %w", meetingID, err)
	}
	return chunks, nil
}

// FindSimilar scans all indexed chunks and returns up to limit results
// ranked by cosine similarity to the query vector.
func (r *BadgerChunkRepository) FindSimilar(ctx context.Context, vector []float32, limit int) ([]*repositories.ScoredChunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var results []*repositories.ScoredChunk
	err := r.db.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chunkKeyPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var chunk entities.Chunk
			err := iter.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &chunk)
			})
			if err != nil {
				return err
			}
			if len(chunk.Vector) == 0 {
				continue
			}
			results = append(results, &repositories.ScoredChunk{
				Chunk: &chunk,
				Score: cosineSimilarity(vector, chunk.Vector),
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("similarity scan failed: %w", err)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Close closes the backing database.
func (r *BadgerChunkRepository) Close() error {
	return r.db.Close()
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Returns 0 for mismatched or zero-length vectors.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
