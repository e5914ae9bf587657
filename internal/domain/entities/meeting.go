package entities

import (
	"crypto/md5"
	"encoding/hex"
	"time"
)

// NewMeetingID derives a stable meeting identifier from a content
// fingerprint plus the ingestion timestamp. The ID is immutable once
// assigned and keys every downstream store.
func NewMeetingID(content []byte, now time.Time) string {
	sum := md5.Sum(content)
	fingerprint := hex.EncodeToString(sum[:])[:8]
	return "meeting_" + now.Format("20060102_150405") + "_" + fingerprint
}
