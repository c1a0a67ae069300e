// Package chunker splits page text into bounded segments.
//
// Each page is split on its own with a recursive separator ladder:
// paragraph breaks first, then line breaks, then spaces, then a hard cut.
package chunker

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tmc/langchaingo/textsplitter"
)

// DefaultChunkSize is the default maximum number of characters per chunk.
const DefaultChunkSize = 200

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 0

// separators is the split ladder, coarsest first.
var separators = []string{"\n\n", "\n", " ", ""}

// Processor splits page text into chunks of at most chunkSize runes.
// It implements the PostProcessor interface.
type Processor struct {
	chunkSize int
	overlap   int
	splitter  textsplitter.RecursiveCharacter
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the maximum chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	p.splitter = textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(p.chunkSize),
		textsplitter.WithChunkOverlap(p.overlap),
		textsplitter.WithSeparators(separators),
	)

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// ChunkSize returns the configured maximum chunk size.
func (p *Processor) ChunkSize() int {
	return p.chunkSize
}

// Process splits every page independently and returns segments in page order.
// Blank pages contribute nothing.
func (p *Processor) Process(ctx context.Context, pages []string) ([]string, error) {
	chunks := make([]string, 0, len(pages))

	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if strings.TrimSpace(page) == "" {
			continue
		}

		segments, err := p.splitter.SplitText(page)
		if err != nil {
			return nil, fmt.Errorf("splitting page %d: %w", i+1, err)
		}

		for _, segment := range segments {
			chunks = append(chunks, p.bound(strings.TrimSpace(segment))...)
		}
	}

	return chunks, nil
}

// bound hard-cuts a segment that still exceeds the limit and drops empty ones.
func (p *Processor) bound(segment string) []string {
	if segment == "" {
		return nil
	}
	if utf8.RuneCountInString(segment) <= p.chunkSize {
		return []string{segment}
	}

	var out []string
	runes := []rune(segment)
	for start := 0; start < len(runes); start += p.chunkSize {
		end := min(start+p.chunkSize, len(runes))
		if piece := strings.TrimSpace(string(runes[start:end])); piece != "" {
			out = append(out, piece)
		}
	}
	return out
}
