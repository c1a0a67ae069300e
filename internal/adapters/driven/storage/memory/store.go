// Package memory provides in-memory implementations of the driven stores.
// They mirror the SQLite adapter's semantics (insertion order, cascades,
// same-source links, summary uniqueness) and back service tests.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/0M-3/synaptext/internal/core/domain"
	"github.com/0M-3/synaptext/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.KnowledgeStore = (*Store)(nil)

// Store is an in-memory knowledge store. Slices keep insertion order.
type Store struct {
	mu        sync.RWMutex
	sources   []domain.Source
	chunks    []domain.Chunk
	keywords  []domain.Keyword
	junctions []domain.Junction
	summaries []domain.Summary
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

// SourceStore returns the source view of the store.
func (s *Store) SourceStore() driven.SourceStore { return &sourceStore{s} }

// ChunkStore returns the chunk view of the store.
func (s *Store) ChunkStore() driven.ChunkStore { return &chunkStore{s} }

// KeywordStore returns the keyword view of the store.
func (s *Store) KeywordStore() driven.KeywordStore { return &keywordStore{s} }

// JunctionStore returns the junction view of the store.
func (s *Store) JunctionStore() driven.JunctionStore { return &junctionStore{s} }

// SummaryStore returns the summary view of the store.
func (s *Store) SummaryStore() driven.SummaryStore { return &summaryStore{s} }

// hasSource must be called with the lock held.
func (s *Store) hasSource(id string) bool {
	for i := range s.sources {
		if s.sources[i].ID == id {
			return true
		}
	}
	return false
}

// chunkIn must be called with the lock held.
func (s *Store) chunkIn(sourceID, chunkID string) bool {
	for i := range s.chunks {
		if s.chunks[i].ID == chunkID {
			return s.chunks[i].SourceID == sourceID
		}
	}
	return false
}

// keywordIn must be called with the lock held.
func (s *Store) keywordIn(sourceID, keywordID string) bool {
	for i := range s.keywords {
		if s.keywords[i].ID == keywordID {
			return s.keywords[i].SourceID == sourceID
		}
	}
	return false
}

func filterBySource[T any](items []T, sourceID string, owner func(T) string) []T {
	out := []T{}
	for _, item := range items {
		if owner(item) == sourceID {
			out = append(out, item)
		}
	}
	return out
}

// ==================== Source Store ====================

type sourceStore struct{ s *Store }

var _ driven.SourceStore = (*sourceStore)(nil)

func (v *sourceStore) Save(_ context.Context, source *domain.Source) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if v.s.hasSource(source.ID) {
		return fmt.Errorf("saving source %s: %w", source.ID, domain.ErrAlreadyExists)
	}
	if source.CreatedAt.IsZero() {
		source.CreatedAt = time.Now().UTC()
	}
	v.s.sources = append(v.s.sources, *source)
	return nil
}

func (v *sourceStore) Get(_ context.Context, id string) (*domain.Source, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	for _, source := range v.s.sources {
		if source.ID == id {
			return &source, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (v *sourceStore) List(_ context.Context) ([]domain.Source, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	return append([]domain.Source{}, v.s.sources...), nil
}

// Delete removes a source and cascades to everything it owns.
func (v *sourceStore) Delete(_ context.Context, id string) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if !v.s.hasSource(id) {
		return domain.ErrNotFound
	}
	keep := func(owner string) bool { return owner != id }
	v.s.sources = filter(v.s.sources, func(x domain.Source) bool { return keep(x.ID) })
	v.s.chunks = filter(v.s.chunks, func(x domain.Chunk) bool { return keep(x.SourceID) })
	v.s.keywords = filter(v.s.keywords, func(x domain.Keyword) bool { return keep(x.SourceID) })
	v.s.junctions = filter(v.s.junctions, func(x domain.Junction) bool { return keep(x.SourceID) })
	v.s.summaries = filter(v.s.summaries, func(x domain.Summary) bool { return keep(x.SourceID) })
	return nil
}

// stampTime returns t, or the current time when t is unset.
func stampTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := items[:0]
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// ==================== Chunk Store ====================

type chunkStore struct{ s *Store }

var _ driven.ChunkStore = (*chunkStore)(nil)

func (v *chunkStore) SaveChunks(_ context.Context, chunks []domain.Chunk) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for _, chunk := range chunks {
		if !v.s.hasSource(chunk.SourceID) {
			return fmt.Errorf("saving chunk %s: %w", chunk.ID, domain.ErrInvalidInput)
		}
	}
	for _, chunk := range chunks {
		chunk.CreatedAt = stampTime(chunk.CreatedAt)
		v.s.chunks = append(v.s.chunks, chunk)
	}
	return nil
}

func (v *chunkStore) GetChunks(_ context.Context, sourceID string) ([]domain.Chunk, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	return filterBySource(v.s.chunks, sourceID, func(c domain.Chunk) string { return c.SourceID }), nil
}

func (v *chunkStore) GetChunk(_ context.Context, id string) (*domain.Chunk, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	for _, chunk := range v.s.chunks {
		if chunk.ID == id {
			return &chunk, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ==================== Keyword Store ====================

type keywordStore struct{ s *Store }

var _ driven.KeywordStore = (*keywordStore)(nil)

func (v *keywordStore) SaveKeywords(_ context.Context, keywords []domain.Keyword) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for _, kw := range keywords {
		if !v.s.hasSource(kw.SourceID) {
			return fmt.Errorf("saving keyword %s: %w", kw.ID, domain.ErrInvalidInput)
		}
	}
	for _, kw := range keywords {
		kw.CreatedAt = stampTime(kw.CreatedAt)
		v.s.keywords = append(v.s.keywords, kw)
	}
	return nil
}

func (v *keywordStore) GetKeywords(_ context.Context, sourceID string) ([]domain.Keyword, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	return filterBySource(v.s.keywords, sourceID, func(k domain.Keyword) string { return k.SourceID }), nil
}

func (v *keywordStore) GetKeyword(_ context.Context, sourceID, keywordID string) (*domain.Keyword, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	for _, kw := range v.s.keywords {
		if kw.ID == keywordID && kw.SourceID == sourceID {
			return &kw, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ==================== Junction Store ====================

type junctionStore struct{ s *Store }

var _ driven.JunctionStore = (*junctionStore)(nil)

// SaveJunctions stores links; either all are stored or none.
func (v *junctionStore) SaveJunctions(_ context.Context, junctions []domain.Junction) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for _, j := range junctions {
		if !v.s.chunkIn(j.SourceID, j.ChunkID) || !v.s.keywordIn(j.SourceID, j.KeywordID) {
			return fmt.Errorf("saving junction %s: %w", j.ID, domain.ErrInvalidInput)
		}
	}
	for _, j := range junctions {
		j.CreatedAt = stampTime(j.CreatedAt)
		v.s.junctions = append(v.s.junctions, j)
	}
	return nil
}

func (v *junctionStore) GetJunctions(_ context.Context, sourceID string) ([]domain.Junction, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	return filterBySource(v.s.junctions, sourceID, func(j domain.Junction) string { return j.SourceID }), nil
}

func (v *junctionStore) GetLinkedChunks(_ context.Context, sourceID, keywordID string) ([]domain.Chunk, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	byID := make(map[string]domain.Chunk)
	for _, chunk := range v.s.chunks {
		if chunk.SourceID == sourceID {
			byID[chunk.ID] = chunk
		}
	}
	linked := []domain.Chunk{}
	for _, j := range v.s.junctions {
		if j.SourceID != sourceID || j.KeywordID != keywordID {
			continue
		}
		if chunk, ok := byID[j.ChunkID]; ok {
			linked = append(linked, chunk)
		}
	}
	return linked, nil
}

// ==================== Summary Store ====================

type summaryStore struct{ s *Store }

var _ driven.SummaryStore = (*summaryStore)(nil)

func (v *summaryStore) GetSummary(_ context.Context, sourceID, keywordID string) (*domain.Summary, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	for _, summary := range v.s.summaries {
		if summary.SourceID == sourceID && summary.KeywordID == keywordID {
			return &summary, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (v *summaryStore) SaveSummary(_ context.Context, summary *domain.Summary) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if !v.s.keywordIn(summary.SourceID, summary.KeywordID) {
		return fmt.Errorf("saving summary for keyword %s: %w", summary.KeywordID, domain.ErrInvalidInput)
	}
	for _, existing := range v.s.summaries {
		if existing.SourceID == summary.SourceID && existing.KeywordID == summary.KeywordID {
			return domain.ErrAlreadyExists
		}
	}
	if summary.CreatedAt.IsZero() {
		summary.CreatedAt = time.Now().UTC()
	}
	v.s.summaries = append(v.s.summaries, *summary)
	return nil
}
