package driving

import (
	"context"

	"github.com/0M-3/synaptext/internal/core/domain"
)

// SourceService reads and removes ingested sources.
type SourceService interface {
	// List returns all sources.
	List(ctx context.Context) ([]domain.Source, error)

	// Get retrieves a source by ID.
	Get(ctx context.Context, sourceID string) (*domain.Source, error)

	// Delete removes a source with all its chunks, keywords, links and summaries.
	Delete(ctx context.Context, sourceID string) error

	// ListChunks returns the chunks of a source.
	ListChunks(ctx context.Context, sourceID string) ([]domain.Chunk, error)

	// ListKeywords returns the keywords of a source.
	ListKeywords(ctx context.Context, sourceID string) ([]domain.Keyword, error)
}
