package ai

import (
	"context"
	"fmt"
	"os"
	"strings"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/meeting-summarizer-team/meeting-summarizer/pkg/config"
)

// AssemblyAIClient wraps the official AssemblyAI SDK for local-file
// transcription with speaker labels.
type AssemblyAIClient struct {
	client *aai.Client
	cfg    *config.AssemblyAIConfig
}

// NewAssemblyAIClient creates an AssemblyAI client using the provided config.
// If cfg is nil, falls back to environment variables.
func NewAssemblyAIClient(cfg *config.AssemblyAIConfig) *AssemblyAIClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("ASSEMBLYAI_API_KEY")
	}
	return &AssemblyAIClient{
		client: aai.NewClient(apiKey),
		cfg:    cfg,
	}
}

// TranscribeFile uploads a local audio file and blocks until AssemblyAI
// finishes transcribing it. Returns the speaker-labeled transcript when
// utterances are available, otherwise the plain transcript text.
func (c *AssemblyAIClient) TranscribeFile(ctx context.Context, audioPath string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	if c.cfg != nil && c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	params := &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(true),
	}

	transcript, err := c.client.Transcripts.TranscribeFromReader(ctx, f, params)
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}

	if transcript.Status == aai.TranscriptStatusError {
		return "", fmt.Errorf("transcription failed: %s", aai.ToString(transcript.Error))
	}

	return FormatTranscript(&transcript), nil
}

// FormatTranscript renders a completed transcript one utterance per line,
// "Speaker <id>: <text>", blocks separated by blank lines. Falls back to
// the raw transcript text when no utterances were produced.
func FormatTranscript(transcript *aai.Transcript) string {
	if transcript == nil {
		return ""
	}

	if len(transcript.Utterances) == 0 {
		return aai.ToString(transcript.Text)
	}

	var b strings.Builder
	for i, u := range transcript.Utterances {
		if i > 0 {
			b.WriteString("\n\n")
		}
		speaker := "Speaker"
		if label := aai.ToString(u.Speaker); label != "" {
			speaker = "Speaker " + label
		}
		b.WriteString(speaker)
		b.WriteString(": ")
		b.WriteString(aai.ToString(u.Text))
	}
	return b.String()
}
