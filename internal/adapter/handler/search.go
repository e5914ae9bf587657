package handler

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meeting-summarizer-team/meeting-summarizer/errors"
	meetingDto "github.com/meeting-summarizer-team/meeting-summarizer/internal/adapter/dto/meeting"
)

const defaultSearchLimit = 5

// ChunkSearcher ranks indexed chunk texts against a query, satisfied by
// the rag service.
type ChunkSearcher interface {
	Query(ctx context.Context, text string, k int) []string
}

// SearchHandler exposes semantic search over indexed transcript chunks
type SearchHandler struct {
	rag    ChunkSearcher
	logger *zap.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(ragService ChunkSearcher, logger *zap.Logger) *SearchHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchHandler{
		rag:    ragService,
		logger: logger,
	}
}

// Search returns the chunk texts most similar to the query.
func (h *SearchHandler) Search(c echo.Context) error {
	var req meetingDto.SearchRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	k := req.K
	if k <= 0 {
		k = defaultSearchLimit
	}

	results := h.rag.Query(c.Request().Context(), req.Query, k)

	return HandleSuccess(h.logger, c, meetingDto.SearchResponse{
		Query:   req.Query,
		Results: results,
	})
}
