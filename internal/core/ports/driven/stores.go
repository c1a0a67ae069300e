package driven

import (
	"context"

	"github.com/0M-3/synaptext/internal/core/domain"
)

// SourceStore persists ingested sources.
// Deleting a source removes every chunk, keyword, junction and summary it owns.
type SourceStore interface {
	// Save stores a new source.
	Save(ctx context.Context, source *domain.Source) error

	// Get retrieves a source by ID.
	// Returns domain.ErrNotFound if the source does not exist.
	Get(ctx context.Context, id string) (*domain.Source, error)

	// List returns all sources, oldest first.
	List(ctx context.Context) ([]domain.Source, error)

	// Delete removes a source and everything that belongs to it.
	// Returns domain.ErrNotFound if the source does not exist.
	Delete(ctx context.Context, id string) error
}

// ChunkStore persists chunks.
type ChunkStore interface {
	// SaveChunks stores chunks. Insertion order is preserved on read.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// GetChunks returns all chunks of a source in insertion order.
	GetChunks(ctx context.Context, sourceID string) ([]domain.Chunk, error)

	// GetChunk retrieves a chunk by ID.
	GetChunk(ctx context.Context, id string) (*domain.Chunk, error)
}

// KeywordStore persists keywords.
type KeywordStore interface {
	// SaveKeywords stores keywords. Insertion order is preserved on read.
	SaveKeywords(ctx context.Context, keywords []domain.Keyword) error

	// GetKeywords returns all keywords of a source in insertion order.
	GetKeywords(ctx context.Context, sourceID string) ([]domain.Keyword, error)

	// GetKeyword retrieves a keyword scoped to a source.
	// Returns domain.ErrNotFound if it does not exist or belongs to another source.
	GetKeyword(ctx context.Context, sourceID, keywordID string) (*domain.Keyword, error)
}

// JunctionStore persists chunk/keyword links.
type JunctionStore interface {
	// SaveJunctions stores links. Every linked chunk and keyword must belong
	// to the junction's source.
	SaveJunctions(ctx context.Context, junctions []domain.Junction) error

	// GetJunctions returns all links of a source in insertion order.
	GetJunctions(ctx context.Context, sourceID string) ([]domain.Junction, error)

	// GetLinkedChunks returns the chunks linked to a keyword in junction insertion order.
	GetLinkedChunks(ctx context.Context, sourceID, keywordID string) ([]domain.Chunk, error)
}

// SummaryStore caches generated keyword summaries.
type SummaryStore interface {
	// GetSummary returns the cached summary for a keyword.
	// Returns domain.ErrNotFound if none is cached.
	GetSummary(ctx context.Context, sourceID, keywordID string) (*domain.Summary, error)

	// SaveSummary caches a summary.
	// Returns domain.ErrAlreadyExists if one is already cached for the pair.
	SaveSummary(ctx context.Context, summary *domain.Summary) error
}

// KnowledgeStore groups the stores one ingested source is spread across.
type KnowledgeStore interface {
	SourceStore() SourceStore
	ChunkStore() ChunkStore
	KeywordStore() KeywordStore
	JunctionStore() JunctionStore
	SummaryStore() SummaryStore
}
