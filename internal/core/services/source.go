package services

import (
	"context"
	"fmt"

	"github.com/0M-3/synaptext/internal/core/domain"
	"github.com/0M-3/synaptext/internal/core/ports/driven"
	"github.com/0M-3/synaptext/internal/core/ports/driving"
	"github.com/0M-3/synaptext/internal/logger"
)

// Ensure SourceService implements the interface.
var _ driving.SourceService = (*SourceService)(nil)

// SourceService reads and removes ingested sources.
type SourceService struct {
	store driven.KnowledgeStore
}

// NewSourceService creates a new source service.
func NewSourceService(store driven.KnowledgeStore) *SourceService {
	return &SourceService{store: store}
}

// List returns all sources, oldest first.
func (s *SourceService) List(ctx context.Context) ([]domain.Source, error) {
	return s.store.SourceStore().List(ctx)
}

// Get retrieves a source by ID.
func (s *SourceService) Get(ctx context.Context, sourceID string) (*domain.Source, error) {
	if sourceID == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.store.SourceStore().Get(ctx, sourceID)
}

// Delete removes a source. The store cascades to chunks, keywords, links and summaries.
func (s *SourceService) Delete(ctx context.Context, sourceID string) error {
	if sourceID == "" {
		return domain.ErrInvalidInput
	}
	if err := s.store.SourceStore().Delete(ctx, sourceID); err != nil {
		return err
	}
	logger.Info("deleted source %s", sourceID)
	return nil
}

// ListChunks returns the chunks of a source in insertion order.
// Returns domain.ErrNotFound if the source does not exist.
func (s *SourceService) ListChunks(ctx context.Context, sourceID string) ([]domain.Chunk, error) {
	if _, err := s.Get(ctx, sourceID); err != nil {
		return nil, err
	}
	chunks, err := s.store.ChunkStore().GetChunks(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("get chunks: %w", err)
	}
	return chunks, nil
}

// ListKeywords returns the keywords of a source in insertion order.
// Returns domain.ErrNotFound if the source does not exist.
func (s *SourceService) ListKeywords(ctx context.Context, sourceID string) ([]domain.Keyword, error) {
	if _, err := s.Get(ctx, sourceID); err != nil {
		return nil, err
	}
	keywords, err := s.store.KeywordStore().GetKeywords(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("get keywords: %w", err)
	}
	return keywords, nil
}
