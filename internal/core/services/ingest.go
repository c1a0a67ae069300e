package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/0M-3/synaptext/internal/core/domain"
	"github.com/0M-3/synaptext/internal/core/ports/driven"
	"github.com/0M-3/synaptext/internal/core/ports/driving"
	"github.com/0M-3/synaptext/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService runs the PDF pipeline: extract, chunk, analyse, persist, link.
type IngestService struct {
	store      driven.KnowledgeStore
	normaliser driven.Normaliser
	chunker    driven.PostProcessor
	extractor  driven.TermExtractor
	tempDir    string
	now        func() time.Time
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	store driven.KnowledgeStore,
	normaliser driven.Normaliser,
	chunker driven.PostProcessor,
	extractor driven.TermExtractor,
) *IngestService {
	return &IngestService{
		store:      store,
		normaliser: normaliser,
		chunker:    chunker,
		extractor:  extractor,
		now:        time.Now,
	}
}

// SetTempDir sets where uploads are staged. Empty uses the OS default.
func (s *IngestService) SetTempDir(dir string) {
	s.tempDir = dir
}

// Ingest extracts, chunks, analyses and links a document.
//
// Everything that can fail on bad input runs before the first write, so an
// unreadable PDF leaves no trace. A storage failure after the source row is
// written leaves the rows written so far in place.
func (s *IngestService) Ingest(ctx context.Context, filename string, r io.Reader) (*domain.IngestResult, error) {
	if !isPDF(filename) {
		return nil, fmt.Errorf("%w: %q is not a PDF", domain.ErrUnsupportedType, filename)
	}

	logger.Section("Ingest " + filename)

	pages, err := extractPages(ctx, s.normaliser, s.tempDir, r)
	if err != nil {
		return nil, err
	}
	logger.Debug("extracted %d pages", len(pages.Pages))

	segments, err := s.chunker.Process(ctx, pages.Pages)
	if err != nil {
		return nil, fmt.Errorf("chunk pages: %w", err)
	}
	logger.Debug("split into %d chunks", len(segments))

	terms, err := s.extractor.Extract(ctx, pages.Text())
	if err != nil {
		return nil, fmt.Errorf("extract terms: %w", err)
	}
	logger.Debug("found %d proper nouns, %d phrases", len(terms.ProperNouns), len(terms.Phrases))

	source := &domain.Source{
		ID:        uuid.New().String(),
		Filename:  filename,
		CreatedAt: s.now(),
	}
	if err := s.store.SourceStore().Save(ctx, source); err != nil {
		return nil, fmt.Errorf("save source: %w", err)
	}

	result, err := s.persist(ctx, source.ID, segments, terms)
	if err != nil {
		logger.Warn("ingest of %s failed after source %s was created; partial data kept", filename, source.ID)
		return nil, err
	}

	result.Filename = filename
	result.Pages = len(pages.Pages)
	logger.Info("ingested %s as %s: %d chunks, %d keywords, %d links",
		filename, source.ID, result.Chunks, result.Keywords, result.Junctions)
	return result, nil
}

// persist writes chunks, keywords and junctions for a freshly created source.
func (s *IngestService) persist(
	ctx context.Context,
	sourceID string,
	segments []string,
	terms *domain.Terms,
) (*domain.IngestResult, error) {
	now := s.now()

	chunks := make([]domain.Chunk, len(segments))
	for i, text := range segments {
		chunks[i] = domain.Chunk{ID: uuid.New().String(), SourceID: sourceID, Text: text, CreatedAt: now}
	}
	if err := s.store.ChunkStore().SaveChunks(ctx, chunks); err != nil {
		return nil, fmt.Errorf("save chunks: %w", err)
	}

	// Proper nouns first, then phrases.
	keywords := make([]domain.Keyword, 0, terms.Len())
	keywords = appendKeywords(keywords, sourceID, terms.ProperNouns, domain.KeywordKindProperNoun, now)
	keywords = appendKeywords(keywords, sourceID, terms.Phrases, domain.KeywordKindPhrase, now)
	if err := s.store.KeywordStore().SaveKeywords(ctx, keywords); err != nil {
		return nil, fmt.Errorf("save keywords: %w", err)
	}

	junctions := BuildJunctions(sourceID, chunks, keywords, now)
	if err := s.store.JunctionStore().SaveJunctions(ctx, junctions); err != nil {
		return nil, fmt.Errorf("save junctions: %w", err)
	}

	return &domain.IngestResult{
		SourceID:  sourceID,
		Status:    domain.IngestStatusSuccess,
		Chunks:    len(chunks),
		Keywords:  len(keywords),
		Junctions: len(junctions),
	}, nil
}

func appendKeywords(
	dst []domain.Keyword,
	sourceID string,
	terms []domain.TermCount,
	kind domain.KeywordKind,
	createdAt time.Time,
) []domain.Keyword {
	for _, t := range terms {
		dst = append(dst, domain.Keyword{
			ID:        uuid.New().String(),
			SourceID:  sourceID,
			Keyword:   t.Term,
			Kind:      kind,
			Count:     t.Count,
			CreatedAt: createdAt,
		})
	}
	return dst
}

// extractPages stages r in a unique temporary file and normalises it.
// The file is removed before returning.
func extractPages(
	ctx context.Context,
	normaliser driven.Normaliser,
	tempDir string,
	r io.Reader,
) (*driven.NormaliseResult, error) {
	tmp, err := os.CreateTemp(tempDir, "synaptext-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("stage upload: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("stage upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("stage upload: %w", err)
	}

	result, err := normaliser.Normalise(ctx, tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}
	return result, nil
}

func isPDF(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}
