package entities

import "fmt"

// ChunkTypeTranscript is the only chunk type produced today.
const ChunkTypeTranscript = "transcript"

// Chunk is a bounded-length piece of a transcript, the unit of storage
// and retrieval in the vector store. Chunks are created once at ingestion
// and never mutated.
type Chunk struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	MeetingID   string    `json:"meeting_id"`
	ChunkIndex  int       `json:"chunk_index"`
	TotalChunks int       `json:"total_chunks"`
	ChunkType   string    `json:"chunk_type"`
	Vector      []float32 `json:"vector,omitempty"`
}

// NewChunk creates a transcript chunk with ordering metadata attached.
func NewChunk(meetingID, text string, index, total int) *Chunk {
	return &Chunk{
		ID:          ChunkID(meetingID, index),
		Text:        text,
		MeetingID:   meetingID,
		ChunkIndex:  index,
		TotalChunks: total,
		ChunkType:   ChunkTypeTranscript,
	}
}

// ChunkID builds the stable identifier for a chunk of a meeting.
func ChunkID(meetingID string, index int) string {
	return fmt.Sprintf("%s_chunk_%d", meetingID, index)
}
