package driven

import (
	"context"
	"strings"
)

// Normaliser extracts plain text from a document file.
// Each normaliser handles specific MIME types (e.g., PDF).
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Normalise reads the file at path and returns its text page by page.
	// Returns domain.ErrExtractionFailed when the file cannot be parsed.
	Normalise(ctx context.Context, path string) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
// Chunking is handled by a PostProcessor.
type NormaliseResult struct {
	// Pages holds the text of each page in reading order.
	// Pages without extractable text are empty strings.
	Pages []string
}

// Text returns all page text joined by newlines.
func (r *NormaliseResult) Text() string {
	return strings.Join(r.Pages, "\n")
}
