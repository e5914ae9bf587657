package summary

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/entities"
)

// parseFailedMessage is set on the error key when nothing structured
// could be recovered from the model output.
const parseFailedMessage = "Failed to parse structured response - showing raw output"

// emptyResponseFallback replaces the summary when the raw output itself
// is empty.
const emptyResponseFallback = "No response received"

// sectionPatterns maps each section key to its ordered pattern chain,
// most specific first:
//  1. exact heading with the expected glyph,
//  2. heading tolerant of irregular spacing around the glyph,
//  3. loose plain-uppercase "NAME:" fallback bounded by the next known
//     section name or end of text.
//
// The first pattern whose capture is non-empty after trimming wins.
// RE2 has no lookahead, so captures stay lazy and the boundary is a
// consumed alternation; only group 1 is read.
var sectionPatterns = []struct {
	key      string
	patterns []*regexp.Regexp
}{
	{
		key: entities.SectionSummary,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)## MEETING SUMMARY\s*(.*?)(?:##|$)`),
			regexp.MustCompile(`(?is)##\s*MEETING\s*SUMMARY\s*(.*?)(?:##|$)`),
			regexp.MustCompile(`(?is)MEETING SUMMARY[:\s]*(.*?)(?:MEETING INFORMATION|KEY DETAILS|$)`),
		},
	},
	{
		key: entities.SectionMeetingInfo,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)### 📅 Meeting Information\s*(.*?)(?:###|$)`),
			regexp.MustCompile(`(?is)###\s*📅\s*Meeting Information\s*(.*?)(?:###|$)`),
			regexp.MustCompile(`(?is)MEETING INFORMATION[:\s]*(.*?)(?:MAIN TOPICS|$)`),
		},
	},
	{
		key: entities.SectionTopics,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)### 🎯 Main Topics Discussed\s*(.*?)(?:###|$)`),
			regexp.MustCompile(`(?is)###\s*🎯\s*Main Topics Discussed\s*(.*?)(?:###|$)`),
			regexp.MustCompile(`(?is)MAIN TOPICS DISCUSSED[:\s]*(.*?)(?:ACTION ITEMS|$)`),
		},
	},
	{
		key: entities.SectionActionItems,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)### ⚡ Action Items & Next Steps\s*(.*?)(?:###|$)`),
			regexp.MustCompile(`(?is)###\s*⚡\s*Action Items & Next Steps\s*(.*?)(?:###|$)`),
			regexp.MustCompile(`(?is)ACTION ITEMS[:\s]*(.*?)(?:KEY DECISIONS|$)`),
		},
	},
	{
		key: entities.SectionDecisions,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)### 🔑 Key Decisions Made\s*(.*?)(?:###|$)`),
			regexp.MustCompile(`(?is)###\s*🔑\s*Key Decisions Made\s*(.*?)(?:###|$)`),
			regexp.MustCompile(`(?is)KEY DECISIONS[:\s]*(.*?)(?:IMPORTANT NOTES|$)`),
		},
	},
	{
		key: entities.SectionNotes,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)### 📋 Important Notes & Follow-ups\s*(.*?)(?:###|$)`),
			regexp.MustCompile(`(?is)###\s*📋\s*Important Notes & Follow-ups\s*(.*?)(?:###|$)`),
			regexp.MustCompile(`(?is)IMPORTANT NOTES[:\s]*(.*?)$`),
		},
	},
}

// Extractor recovers a structured summary record from raw model output.
type Extractor struct{}

// NewExtractor creates a new Extractor instance
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses the raw response into a summary record. Every section
// key is always present: sections that cannot be recovered hold their
// placeholder, and when nothing at all is recoverable the record
// degrades to the raw output plus an error key. Extract never fails.
func (e *Extractor) Extract(raw string) (record entities.SummaryRecord) {
	defer func() {
		if r := recover(); r != nil {
			record = degradedRecord(raw, fmt.Sprintf("Failed to parse structured response: %v", r))
		}
	}()

	text := strings.TrimSpace(raw)
	record = make(entities.SummaryRecord, len(sectionPatterns)+1)

	for _, section := range sectionPatterns {
		content := ""
		for _, pattern := range section.patterns {
			match := pattern.FindStringSubmatch(text)
			if match == nil {
				continue
			}
			if captured := strings.TrimSpace(match[1]); captured != "" {
				content = captured
				break
			}
		}
		if content == "" {
			content = entities.SectionPlaceholder(section.key)
		}
		record[section.key] = content
	}

	// Nothing recoverable at all: pass the raw output through rather
	// than silently losing it.
	if allPlaceholders(record) {
		if text == "" {
			record[entities.SectionSummary] = emptyResponseFallback
		} else {
			record[entities.SectionSummary] = text
		}
		record[entities.KeyError] = parseFailedMessage
	}
	return record
}

func allPlaceholders(record entities.SummaryRecord) bool {
	for _, key := range entities.SectionKeys() {
		if record[key] != entities.SectionPlaceholder(key) {
			return false
		}
	}
	return true
}

// degradedRecord builds the result for an unrecoverable parse failure.
func degradedRecord(raw, errMessage string) entities.SummaryRecord {
	record := make(entities.SummaryRecord, len(sectionPatterns)+1)
	for _, key := range entities.SectionKeys() {
		record[key] = entities.SectionPlaceholder(key)
	}
	if text := strings.TrimSpace(raw); text != "" {
		record[entities.SectionSummary] = text
	} else {
		record[entities.SectionSummary] = emptyResponseFallback
	}
	record[entities.KeyError] = errMessage
	return record
}
