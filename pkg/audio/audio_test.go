package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/entities"
)

var testFormats = []string{".mp3", ".wav", ".m4a", ".mp4", ".webm"}

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		wantErr  error
	}{
		{name: "valid mp3", filename: "standup.mp3", size: 5 * 1024 * 1024},
		{name: "valid wav uppercase", filename: "ALLHANDS.WAV", size: 1024},
		{name: "missing filename", filename: "", size: 10, wantErr: entities.ErrNoAudioFile},
		{name: "too large", filename: "long.mp3", size: 251 * 1024 * 1024, wantErr: entities.ErrAudioTooLarge},
		{name: "unsupported format", filename: "notes.txt", size: 10, wantErr: entities.ErrUnsupportedAudioType},
		{name: "no extension", filename: "recording", size: 10, wantErr: entities.ErrUnsupportedAudioType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFile(tt.filename, tt.size, 250, testFormats)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateFileExactLimit(t *testing.T) {
	// The limit itself is allowed; one byte over is not.
	require.NoError(t, ValidateFile("edge.mp3", 250*1024*1024, 250, testFormats))
	require.Error(t, ValidateFile("edge.mp3", 250*1024*1024+1, 250, testFormats))
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{size: 0, want: "0B"},
		{size: 512, want: "512.0 B"},
		{size: 1024, want: "1.0 KB"},
		{size: 5 * 1024 * 1024, want: "5.0 MB"},
		{size: 3 * 1024 * 1024 * 1024, want: "3.0 GB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFileSize(tt.size))
	}
}
