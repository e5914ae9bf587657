package errors

// ErrorCode identifies an application error category.
type ErrorCode int

const (
	ErrorCode_UNKNOWN ErrorCode = iota
	ErrorCode_HTTP_OK
	ErrorCode_INTERNAL
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_NOT_FOUND

	// Audio / upload
	ErrorCode_AUDIO_INVALID
	ErrorCode_AUDIO_TOO_LARGE

	// Pipeline stages
	ErrorCode_TRANSCRIPTION_FAILED
	ErrorCode_EMPTY_TRANSCRIPT
	ErrorCode_CHUNK_STORE_FAILED
	ErrorCode_SUMMARY_FAILED
	ErrorCode_REPORT_SAVE_FAILED
)

var codeNames = map[ErrorCode]string{
	ErrorCode_UNKNOWN:              "UNKNOWN",
	ErrorCode_HTTP_OK:              "OK",
	ErrorCode_INTERNAL:             "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:     "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:            "NOT_FOUND",
	ErrorCode_AUDIO_INVALID:        "AUDIO_INVALID",
	ErrorCode_AUDIO_TOO_LARGE:      "AUDIO_TOO_LARGE",
	ErrorCode_TRANSCRIPTION_FAILED: "TRANSCRIPTION_FAILED",
	ErrorCode_EMPTY_TRANSCRIPT:     "EMPTY_TRANSCRIPT",
	ErrorCode_CHUNK_STORE_FAILED:   "CHUNK_STORE_FAILED",
	ErrorCode_SUMMARY_FAILED:       "SUMMARY_FAILED",
	ErrorCode_REPORT_SAVE_FAILED:   "REPORT_SAVE_FAILED",
}

// String returns the symbolic name of the code.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
