package pipeline

import "fmt"

// Stage names a pipeline stage for failure reporting.
type Stage string

const (
	StageTranscription Stage = "transcription"
	StageChunkStore    Stage = "chunk_store"
	StageSummary       Stage = "summary"
	StageReportSave    Stage = "report_save"
)

// StageError reports which pipeline stage failed. Completed stages are
// not rolled back and no stage is retried.
type StageError struct {
	Stage Stage
	Err   error
}

// Error implements error interface
func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *StageError) Unwrap() error {
	return e.Err
}
