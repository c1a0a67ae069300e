package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/0M-3/synaptext/internal/core/domain"
	"github.com/0M-3/synaptext/internal/core/ports/driven"
	"github.com/0M-3/synaptext/internal/core/ports/driving"
	"github.com/0M-3/synaptext/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// minParagraphLength drops headings, page numbers and other short fragments.
const minParagraphLength = 50

// paragraphBreak separates paragraphs in extracted text.
const paragraphBreak = "\n\n"

// topicLabels are the entity types that become graph topics.
var topicLabels = map[string]bool{
	"PERSON":  true,
	"ORG":     true,
	"GPE":     true,
	"PRODUCT": true,
}

// AnalysisService builds a paragraph/entity graph from a PDF without storing anything.
type AnalysisService struct {
	normaliser driven.Normaliser
	tagger     driven.Tagger
	tempDir    string
}

// NewAnalysisService creates a new analysis service.
// The tagger must be configured to extract named entities.
func NewAnalysisService(normaliser driven.Normaliser, tagger driven.Tagger) *AnalysisService {
	return &AnalysisService{normaliser: normaliser, tagger: tagger}
}

// SetTempDir sets where uploads are staged. Empty uses the OS default.
func (s *AnalysisService) SetTempDir(dir string) {
	s.tempDir = dir
}

// Analyze splits the document into paragraphs, links each paragraph to the
// people, organisations, places and products it names, and scores every node
// by degree centrality.
func (s *AnalysisService) Analyze(ctx context.Context, filename string, r io.Reader) (*domain.Analysis, error) {
	if !isPDF(filename) {
		return nil, fmt.Errorf("%w: %q is not a PDF", domain.ErrUnsupportedType, filename)
	}

	pages, err := extractPages(ctx, s.normaliser, s.tempDir, r)
	if err != nil {
		return nil, err
	}

	paragraphs := splitParagraphs(pages.Text())
	logger.Debug("analyze %s: %d paragraphs", filename, len(paragraphs))

	chunks := make([]domain.AnalysisChunk, 0, len(paragraphs))
	b := newGraphBuilder()
	for i, para := range paragraphs {
		tagged, err := s.tagger.Tag(ctx, para)
		if err != nil {
			return nil, fmt.Errorf("tag paragraph %d: %w", i, err)
		}

		entities := topicEntities(tagged.Entities)
		chunks = append(chunks, domain.AnalysisChunk{ChunkID: i, Text: para, Entities: entities})

		nodeID := fmt.Sprintf("chunk_%d", i)
		b.addNode(nodeID, para, domain.NodeTypeChunk)
		for _, ent := range entities {
			b.addNode(ent, ent, domain.NodeTypeTopic)
			b.addEdge(nodeID, ent)
		}
	}
	return &domain.Analysis{Chunks: chunks, Graph: b.build()}, nil
}

// topicEntities keeps entities with a topic label, deduplicated by text in
// order of first mention. The result is never nil.
func topicEntities(ents []driven.Entity) []string {
	out := []string{}
	seen := make(map[string]bool, len(ents))
	for _, ent := range ents {
		if !topicLabels[ent.Label] || seen[ent.Text] {
			continue
		}
		seen[ent.Text] = true
		out = append(out, ent.Text)
	}
	return out
}

// splitParagraphs splits on an exact double newline and keeps trimmed
// paragraphs longer than minParagraphLength runes. A line holding only
// whitespace does not break a paragraph.
func splitParagraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(text, paragraphBreak) {
		p = strings.TrimSpace(p)
		if utf8.RuneCountInString(p) > minParagraphLength {
			out = append(out, p)
		}
	}
	return out
}
