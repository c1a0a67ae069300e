package driving

import (
	"context"

	"github.com/0M-3/synaptext/internal/core/domain"
)

// GraphService exposes the relationship views of a source.
type GraphService interface {
	// GetGraph returns chunks and keywords with their linked chunk IDs.
	GetGraph(ctx context.Context, sourceID string) (*domain.Graph, error)

	// GetCentralityGraph returns the bipartite chunk/keyword graph with degree centrality.
	GetCentralityGraph(ctx context.Context, sourceID string) (*domain.CentralityGraph, error)
}

// SummaryService returns cached or freshly generated keyword summaries.
type SummaryService interface {
	// GetSummary returns the summary of one keyword of a source.
	// Returns domain.ErrNotFound if the keyword does not belong to the source.
	GetSummary(ctx context.Context, sourceID, keywordID string) (*domain.KeywordSummary, error)
}

// ExportService packages keyword summaries for download.
type ExportService interface {
	// Export returns a ZIP with one cross-linked Markdown file per keyword.
	// Returns domain.ErrNotFound if the source has no keywords.
	Export(ctx context.Context, sourceID string) (*domain.Archive, error)
}
