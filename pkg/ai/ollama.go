package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"

	"github.com/meeting-summarizer-team/meeting-summarizer/pkg/config"
)

// OllamaClient generates meeting summaries with a local Ollama model.
type OllamaClient struct {
	llm    *ollama.LLM
	cfg    *config.OllamaConfig
	http   *http.Client
	logger *zap.Logger
}

// NewOllamaClient creates a generation client for the configured model.
func NewOllamaClient(cfg *config.OllamaConfig, logger *zap.Logger) (*OllamaClient, error) {
	llm, err := ollama.New(
		ollama.WithServerURL(cfg.BaseURL),
		ollama.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}

	return &OllamaClient{
		llm:    llm,
		cfg:    cfg,
		http:   &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}, nil
}

// GenerateSummary prompts the model with the transcript plus retrieved
// context and returns the raw text response. Sampling parameters come
// from configuration; stop words keep the model from echoing the
// instruction wrapper.
func (c *OllamaClient) GenerateSummary(ctx context.Context, transcript, meetingContext string) (string, error) {
	prompt := BuildSummaryPrompt(transcript, meetingContext)

	if c.logger != nil {
		c.logger.Info("generating meeting summary",
			zap.Int("transcript_len", len(transcript)),
			zap.Int("context_len", len(meetingContext)),
			zap.String("model", c.cfg.Model),
		)
	}

	response, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt,
		llms.WithTemperature(c.cfg.Temperature),
		llms.WithMaxTokens(c.cfg.MaxTokens),
		llms.WithTopK(c.cfg.TopK),
		llms.WithTopP(c.cfg.TopP),
		llms.WithStopWords(c.cfg.StopWords),
	)
	if err != nil {
		return "", fmt.Errorf("summary generation failed: %w", err)
	}
	return response, nil
}

// ollamaTagsResponse is the shape of GET /api/tags.
type ollamaTagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// CheckAvailability verifies the Ollama server is reachable and the
// configured model has been pulled. Retried with exponential backoff so
// the service can start alongside a warming Ollama instance.
func (c *OllamaClient) CheckAvailability(ctx context.Context) error {
	check := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/api/tags", nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("ollama returned status %d", resp.StatusCode)
		}

		var tags ollamaTagsResponse
		if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
			return err
		}

		for _, m := range tags.Models {
			if m.Name == c.cfg.Model {
				return nil
			}
		}
		return backoff.Permanent(fmt.Errorf("model %q not found, run: ollama pull %s", c.cfg.Model, c.cfg.Model))
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5), ctx)
	if err := backoff.Retry(check, policy); err != nil {
		return fmt.Errorf("ollama availability check failed: %w", err)
	}

	if c.logger != nil {
		c.logger.Info("ollama model ready", zap.String("model", c.cfg.Model))
	}
	return nil
}
