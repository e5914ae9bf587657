package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSummaryPromptContainsSectionHeadings(t *testing.T) {
	prompt := BuildSummaryPrompt("Speaker A: hello.", "")

	headings := []string{
		"## MEETING SUMMARY",
		"### 📅 Meeting Information",
		"### 🎯 Main Topics Discussed",
		"### ⚡ Action Items & Next Steps",
		"### 🔑 Key Decisions Made",
		"### 📋 Important Notes & Follow-ups",
	}
	for _, heading := range headings {
		assert.Contains(t, prompt, heading)
	}

	assert.Contains(t, prompt, "Speaker A: hello.")
	assert.True(t, strings.HasPrefix(prompt, "[INST] <<SYS>>"))
	assert.True(t, strings.HasSuffix(prompt, "[/INST]"))
}

func TestBuildSummaryPromptWithContext(t *testing.T) {
	prompt := BuildSummaryPrompt("the transcript", "retrieved chunk context")

	assert.Contains(t, prompt, "the transcript\n\nAdditional Context:\nretrieved chunk context")
}

func TestBuildSummaryPromptWithoutContext(t *testing.T) {
	prompt := BuildSummaryPrompt("the transcript", "")

	assert.NotContains(t, prompt, "Additional Context:")
}
