package driven

import "context"

// PostProcessor turns extracted page text into chunk texts.
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process splits each page independently and returns the segments in
	// page order. Segments never span pages.
	Process(ctx context.Context, pages []string) ([]string, error)
}
