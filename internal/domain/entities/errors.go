package entities

import "errors"

// Domain errors
var (
	// Chunking errors
	ErrEmptyTranscript = errors.New("no chunks created from transcript")

	// Report errors
	ErrReportNotFound = errors.New("report not found")

	// Audio errors
	ErrNoAudioFile          = errors.New("no audio file provided")
	ErrAudioTooLarge        = errors.New("audio file exceeds size limit")
	ErrUnsupportedAudioType = errors.New("unsupported audio format")
)
