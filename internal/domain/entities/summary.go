package entities

import "strings"

// Section keys of a summary record. Every record carries all six,
// whether or not content could be recovered for them.
const (
	SectionSummary     = "summary"
	SectionMeetingInfo = "meeting_info"
	SectionTopics      = "topics"
	SectionActionItems = "action_items"
	SectionDecisions   = "decisions"
	SectionNotes       = "notes"

	// KeyError is set when extraction degraded to raw output.
	KeyError = "error"
)

// SummaryRecord is the fixed-shape result of extracting sections from
// generated text. It maps each section key to its extracted content, or
// to a deterministic placeholder when the section could not be found.
// Records are created once per generation attempt and not mutated after.
type SummaryRecord map[string]string

// SectionKeys returns the section keys in their display order.
func SectionKeys() []string {
	return []string{
		SectionSummary,
		SectionMeetingInfo,
		SectionTopics,
		SectionActionItems,
		SectionDecisions,
		SectionNotes,
	}
}

// SectionTitle renders a section key as a human-readable title,
// e.g. "action_items" -> "Action Items".
func SectionTitle(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// SectionPlaceholder is the deterministic value used when no content
// could be recovered for a section.
func SectionPlaceholder(key string) string {
	return SectionTitle(key) + " not available"
}

// HasError reports whether extraction degraded and the raw output was
// passed through instead of a structured record.
func (r SummaryRecord) HasError() bool {
	_, ok := r[KeyError]
	return ok
}

// Section returns the content stored for a section key.
func (r SummaryRecord) Section(key string) string {
	return r[key]
}
