package driving

import (
	"context"
	"io"

	"github.com/0M-3/synaptext/internal/core/domain"
)

// IngestService turns an uploaded PDF into a stored source.
type IngestService interface {
	// Ingest extracts, chunks, analyses and links a document.
	// Extraction failures leave nothing persisted.
	Ingest(ctx context.Context, filename string, r io.Reader) (*domain.IngestResult, error)
}

// AnalysisService builds an entity graph from a document without persisting it.
type AnalysisService interface {
	// Analyze returns the document's paragraphs with the entities each names,
	// and the bipartite paragraph/entity graph with degree centrality.
	Analyze(ctx context.Context, filename string, r io.Reader) (*domain.Analysis, error)
}
