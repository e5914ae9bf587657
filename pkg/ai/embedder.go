package ai

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"

	"github.com/meeting-summarizer-team/meeting-summarizer/pkg/config"
)

// Embedder generates vector embeddings for chunk indexing and similarity
// queries using the configured Ollama embedding model.
type Embedder struct {
	embedder embeddings.Embedder
	logger   *zap.Logger
}

// NewEmbedder creates an embedder backed by Ollama.
func NewEmbedder(cfg *config.OllamaConfig, logger *zap.Logger) (*Embedder, error) {
	client, err := ollama.New(
		ollama.WithServerURL(cfg.BaseURL),
		ollama.WithModel(cfg.EmbeddingModel),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	return &Embedder{
		embedder: embedder,
		logger:   logger,
	}, nil
}

// EmbedText generates a vector embedding for a single text string.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.embedder.EmbedDocuments(ctx, []string{text})
	if err != nil {
		if e.logger != nil {
			e.logger.Error("failed to generate embedding", zap.Int("text_len", len(text)), zap.Error(err))
		}
		return nil, err
	}
	if len(vectors) == 0 {
		return []float32{}, nil
	}
	return vectors[0], nil
}
