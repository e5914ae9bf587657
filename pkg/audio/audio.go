// Package audio holds upload validation helpers for meeting recordings.
package audio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/entities"
)

// ValidateFile checks an uploaded recording against the configured size
// limit and format whitelist before any processing starts.
func ValidateFile(filename string, sizeBytes int64, maxSizeMB int64, supportedFormats []string) error {
	if filename == "" {
		return entities.ErrNoAudioFile
	}

	if sizeBytes > maxSizeMB*1024*1024 {
		return fmt.Errorf("%w: limit is %dMB", entities.ErrAudioTooLarge, maxSizeMB)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	for _, format := range supportedFormats {
		if ext == strings.TrimSpace(format) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s (supported: %s)", entities.ErrUnsupportedAudioType, ext, strings.Join(supportedFormats, ", "))
}

// FormatFileSize renders a byte count in human readable form.
func FormatFileSize(sizeBytes int64) string {
	if sizeBytes == 0 {
		return "0B"
	}
	units := []string{"B", "KB", "MB", "GB"}
	size := float64(sizeBytes)
	i := 0
	for size >= 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}
	return fmt.Sprintf("%.1f %s", size, units[i])
}
