package services

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0M-3/synaptext/internal/adapters/driven/storage/memory"
	"github.com/0M-3/synaptext/internal/core/domain"
)

func newTestIngest(t *testing.T, norm *mockNormaliser, ext *mockExtractor) (*IngestService, *memory.Store, string) {
	t.Helper()
	store := memory.NewStore()
	svc := NewIngestService(store, norm, lineChunker{}, ext)
	tmp := t.TempDir()
	svc.SetTempDir(tmp)
	return svc, store, tmp
}

func TestIngestService_Ingest(t *testing.T) {
	ctx := context.Background()
	norm := &mockNormaliser{pages: []string{
		"Einstein changed physics.\nBohr disagreed.",
		"Einstein and quantum theory.",
	}}
	ext := &mockExtractor{terms: &domain.Terms{
		ProperNouns: []domain.TermCount{{Term: "Einstein", Count: 2}, {Term: "Bohr", Count: 1}},
		Phrases:     []domain.TermCount{{Term: "quantum theory", Count: 1}},
	}}
	svc, store, tmp := newTestIngest(t, norm, ext)

	result, err := svc.Ingest(ctx, "paper.pdf", pdfReader())

	require.NoError(t, err)
	assert.Equal(t, domain.IngestStatusSuccess, result.Status)
	assert.Equal(t, "paper.pdf", result.Filename)
	assert.Equal(t, 2, result.Pages)
	assert.Equal(t, 3, result.Chunks)
	assert.Equal(t, 3, result.Keywords)
	assert.Equal(t, 4, result.Junctions)

	// The upload was staged and then removed.
	assert.Equal(t, "%PDF-1.4 fake", norm.gotData)
	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Terms are extracted from the page text joined by newlines.
	assert.Equal(t, "Einstein changed physics.\nBohr disagreed.\nEinstein and quantum theory.", ext.got)

	source, err := store.SourceStore().Get(ctx, result.SourceID)
	require.NoError(t, err)
	assert.Equal(t, "paper.pdf", source.Filename)
	assert.False(t, source.CreatedAt.IsZero())

	keywords, err := store.KeywordStore().GetKeywords(ctx, result.SourceID)
	require.NoError(t, err)
	require.Len(t, keywords, 3)
	assert.Equal(t, "Einstein", keywords[0].Keyword)
	assert.Equal(t, domain.KeywordKindProperNoun, keywords[0].Kind)
	assert.Equal(t, 2, keywords[0].Count)
	assert.Equal(t, "quantum theory", keywords[2].Keyword)
	assert.Equal(t, domain.KeywordKindPhrase, keywords[2].Kind)

	linked, err := store.JunctionStore().GetLinkedChunks(ctx, result.SourceID, keywords[0].ID)
	require.NoError(t, err)
	require.Len(t, linked, 2)
	assert.Equal(t, "Einstein changed physics.", linked[0].Text)
	assert.Equal(t, "Einstein and quantum theory.", linked[1].Text)
}

func TestIngestService_StampsRowsWithIngestTime(t *testing.T) {
	ctx := context.Background()
	norm := &mockNormaliser{pages: []string{"Einstein changed physics."}}
	ext := &mockExtractor{terms: &domain.Terms{
		ProperNouns: []domain.TermCount{{Term: "Einstein", Count: 1}},
	}}
	svc, store, _ := newTestIngest(t, norm, ext)
	ingestedAt := time.Date(2024, 5, 1, 12, 30, 45, 0, time.UTC)
	svc.now = func() time.Time { return ingestedAt }

	result, err := svc.Ingest(ctx, "paper.pdf", pdfReader())
	require.NoError(t, err)

	source, err := store.SourceStore().Get(ctx, result.SourceID)
	require.NoError(t, err)
	assert.Equal(t, ingestedAt, source.CreatedAt)

	chunks, err := store.ChunkStore().GetChunks(ctx, result.SourceID)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, ingestedAt, chunks[0].CreatedAt)

	keywords, err := store.KeywordStore().GetKeywords(ctx, result.SourceID)
	require.NoError(t, err)
	require.Len(t, keywords, 1)
	assert.Equal(t, ingestedAt, keywords[0].CreatedAt)

	junctions, err := store.JunctionStore().GetJunctions(ctx, result.SourceID)
	require.NoError(t, err)
	require.Len(t, junctions, 1)
	assert.Equal(t, ingestedAt, junctions[0].CreatedAt)
}

func TestIngestService_RejectsNonPDF(t *testing.T) {
	norm := &mockNormaliser{}
	svc, store, _ := newTestIngest(t, norm, &mockExtractor{terms: &domain.Terms{}})

	_, err := svc.Ingest(context.Background(), "notes.txt", pdfReader())

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	assert.Empty(t, norm.gotPath)
	sources, _ := store.SourceStore().List(context.Background())
	assert.Empty(t, sources)
}

func TestIngestService_AcceptsUpperCaseExtension(t *testing.T) {
	svc, _, _ := newTestIngest(t, &mockNormaliser{pages: []string{"x"}}, &mockExtractor{terms: &domain.Terms{}})

	_, err := svc.Ingest(context.Background(), "SCAN.PDF", pdfReader())
	assert.NoError(t, err)
}

func TestIngestService_ExtractionFailurePersistsNothing(t *testing.T) {
	norm := &mockNormaliser{err: domain.ErrExtractionFailed}
	svc, store, tmp := newTestIngest(t, norm, &mockExtractor{terms: &domain.Terms{}})

	_, err := svc.Ingest(context.Background(), "broken.pdf", pdfReader())

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	sources, _ := store.SourceStore().List(context.Background())
	assert.Empty(t, sources)
	entries, _ := os.ReadDir(tmp)
	assert.Empty(t, entries)
}

func TestIngestService_TermFailurePersistsNothing(t *testing.T) {
	ext := &mockExtractor{err: errors.New("tagger crashed")}
	svc, store, _ := newTestIngest(t, &mockNormaliser{pages: []string{"text"}}, ext)

	_, err := svc.Ingest(context.Background(), "paper.pdf", pdfReader())

	assert.ErrorContains(t, err, "tagger crashed")
	sources, _ := store.SourceStore().List(context.Background())
	assert.Empty(t, sources)
}

func TestIngestService_EmptyDocument(t *testing.T) {
	svc, store, _ := newTestIngest(t, &mockNormaliser{pages: []string{""}}, &mockExtractor{terms: &domain.Terms{}})

	result, err := svc.Ingest(context.Background(), "blank.pdf", pdfReader())

	require.NoError(t, err)
	assert.Zero(t, result.Chunks)
	assert.Zero(t, result.Keywords)
	_, err = store.SourceStore().Get(context.Background(), result.SourceID)
	assert.NoError(t, err)
}
