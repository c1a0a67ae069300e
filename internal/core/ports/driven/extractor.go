package driven

import (
	"context"

	"github.com/0M-3/synaptext/internal/core/domain"
)

// TermExtractor ranks the salient terms of a document's text.
type TermExtractor interface {
	// Extract returns proper nouns and noun phrases, most frequent first.
	Extract(ctx context.Context, text string) (*domain.Terms, error)
}
