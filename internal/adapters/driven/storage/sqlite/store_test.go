package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0M-3/synaptext/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "synaptext-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

// seedSource creates a source with two chunks, two keywords and the given links.
func seedSource(t *testing.T, store *Store, sourceID string) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.SourceStore().Save(ctx, &domain.Source{ID: sourceID, Filename: sourceID + ".pdf"}))
	require.NoError(t, store.ChunkStore().SaveChunks(ctx, []domain.Chunk{
		{ID: sourceID + "-c1", SourceID: sourceID, Text: "Einstein changed physics."},
		{ID: sourceID + "-c2", SourceID: sourceID, Text: "Physics is hard."},
	}))
	require.NoError(t, store.KeywordStore().SaveKeywords(ctx, []domain.Keyword{
		{ID: sourceID + "-k1", SourceID: sourceID, Keyword: "Einstein", Kind: domain.KeywordKindProperNoun, Count: 1},
		{ID: sourceID + "-k2", SourceID: sourceID, Keyword: "Physics", Kind: domain.KeywordKindProperNoun, Count: 1},
	}))
}

// ==================== Store Creation Tests ====================

func TestNewStore_CreatesDatabase(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.Equal(t, "knowledge.db", filepath.Base(store.Path()))
	_, err := os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_ReopenSkipsAppliedMigrations(t *testing.T) {
	tempDir := t.TempDir()

	first, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, first.SourceStore().Save(context.Background(), &domain.Source{ID: "s1", Filename: "a.pdf"}))
	require.NoError(t, first.Close())

	second, err := NewStore(tempDir)
	require.NoError(t, err)
	defer second.Close()

	var version int
	require.NoError(t, second.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)

	source, err := second.SourceStore().Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "a.pdf", source.Filename)
}

// ==================== Source Store Tests ====================

func TestSourceStore_SaveGetList(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.SourceStore().Save(ctx, &domain.Source{ID: "s1", Filename: "one.pdf"}))
	require.NoError(t, store.SourceStore().Save(ctx, &domain.Source{ID: "s2", Filename: "two.pdf"}))

	got, err := store.SourceStore().Get(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, "two.pdf", got.Filename)
	assert.False(t, got.CreatedAt.IsZero())

	list, err := store.SourceStore().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "s1", list[0].ID)
	assert.Equal(t, "s2", list[1].ID)
}

func TestSourceStore_SaveDuplicate(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.SourceStore().Save(ctx, &domain.Source{ID: "s1", Filename: "one.pdf"}))
	err := store.SourceStore().Save(ctx, &domain.Source{ID: "s1", Filename: "again.pdf"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestSourceStore_GetNotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.SourceStore().Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSourceStore_DeleteNotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.SourceStore().Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSourceStore_DeleteCascades(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	seedSource(t, store, "s1")
	seedSource(t, store, "s2")
	require.NoError(t, store.JunctionStore().SaveJunctions(ctx, []domain.Junction{
		{ID: "j1", SourceID: "s1", ChunkID: "s1-c1", KeywordID: "s1-k1"},
		{ID: "j2", SourceID: "s2", ChunkID: "s2-c1", KeywordID: "s2-k1"},
	}))
	require.NoError(t, store.SummaryStore().SaveSummary(ctx, &domain.Summary{
		ID: "sum1", SourceID: "s1", KeywordID: "s1-k1", Summary: "# Einstein",
	}))

	require.NoError(t, store.SourceStore().Delete(ctx, "s1"))

	for _, table := range []string{"chunks", "keywords", "junctions", "summaries"} {
		var n int
		require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM "+table+" WHERE source_id = ?", "s1").Scan(&n))
		assert.Zero(t, n, table)
	}

	// The other source is untouched.
	chunks, err := store.ChunkStore().GetChunks(ctx, "s2")
	require.NoError(t, err)
	assert.Len(t, chunks, 2)
	junctions, err := store.JunctionStore().GetJunctions(ctx, "s2")
	require.NoError(t, err)
	assert.Len(t, junctions, 1)
}

// ==================== Chunk and Keyword Store Tests ====================

func TestChunkStore_InsertionOrder(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.SourceStore().Save(ctx, &domain.Source{ID: "s1", Filename: "a.pdf"}))
	// IDs deliberately sort differently from insertion order.
	require.NoError(t, store.ChunkStore().SaveChunks(ctx, []domain.Chunk{
		{ID: "zz", SourceID: "s1", Text: "first"},
		{ID: "aa", SourceID: "s1", Text: "second"},
	}))

	chunks, err := store.ChunkStore().GetChunks(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "first", chunks[0].Text)
	assert.Equal(t, "second", chunks[1].Text)

	chunk, err := store.ChunkStore().GetChunk(ctx, "aa")
	require.NoError(t, err)
	assert.Equal(t, "second", chunk.Text)

	_, err = store.ChunkStore().GetChunk(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChunkStore_GetChunksEmpty(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	chunks, err := store.ChunkStore().GetChunks(context.Background(), "nothing")
	require.NoError(t, err)
	assert.NotNil(t, chunks)
	assert.Empty(t, chunks)
}

func TestChunkStore_RequiresSource(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.ChunkStore().SaveChunks(context.Background(), []domain.Chunk{
		{ID: "c1", SourceID: "missing", Text: "orphan"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestKeywordStore_GetKeywordScopedToSource(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	seedSource(t, store, "s1")
	seedSource(t, store, "s2")

	kw, err := store.KeywordStore().GetKeyword(ctx, "s1", "s1-k1")
	require.NoError(t, err)
	assert.Equal(t, "Einstein", kw.Keyword)
	assert.Equal(t, domain.KeywordKindProperNoun, kw.Kind)
	assert.Equal(t, 1, kw.Count)

	_, err = store.KeywordStore().GetKeyword(ctx, "s1", "s2-k1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	keywords, err := store.KeywordStore().GetKeywords(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, keywords, 2)
	assert.Equal(t, "Einstein", keywords[0].Keyword)
	assert.Equal(t, "Physics", keywords[1].Keyword)
}

// ==================== Junction Store Tests ====================

func TestJunctionStore_LinkedChunksInJunctionOrder(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	seedSource(t, store, "s1")
	require.NoError(t, store.JunctionStore().SaveJunctions(ctx, []domain.Junction{
		{ID: "j1", SourceID: "s1", ChunkID: "s1-c2", KeywordID: "s1-k2"},
		{ID: "j2", SourceID: "s1", ChunkID: "s1-c1", KeywordID: "s1-k2"},
		{ID: "j3", SourceID: "s1", ChunkID: "s1-c1", KeywordID: "s1-k1"},
	}))

	linked, err := store.JunctionStore().GetLinkedChunks(ctx, "s1", "s1-k2")
	require.NoError(t, err)
	require.Len(t, linked, 2)
	assert.Equal(t, "s1-c2", linked[0].ID)
	assert.Equal(t, "s1-c1", linked[1].ID)

	junctions, err := store.JunctionStore().GetJunctions(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, junctions, 3)
	assert.Equal(t, "j1", junctions[0].ID)
}

func TestJunctionStore_RejectsCrossSourceLinks(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	seedSource(t, store, "s1")
	seedSource(t, store, "s2")

	err := store.JunctionStore().SaveJunctions(ctx, []domain.Junction{
		{ID: "j1", SourceID: "s1", ChunkID: "s2-c1", KeywordID: "s1-k1"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	junctions, err := store.JunctionStore().GetJunctions(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, junctions)
}

func TestKnowledgeStores_CreatedAtRoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	created := time.Date(2024, 5, 1, 12, 30, 45, 0, time.UTC)
	require.NoError(t, store.SourceStore().Save(ctx, &domain.Source{ID: "s1", Filename: "s1.pdf", CreatedAt: created}))
	require.NoError(t, store.ChunkStore().SaveChunks(ctx, []domain.Chunk{
		{ID: "c1", SourceID: "s1", Text: "Einstein wrote.", CreatedAt: created},
	}))
	require.NoError(t, store.KeywordStore().SaveKeywords(ctx, []domain.Keyword{
		{ID: "k1", SourceID: "s1", Keyword: "Einstein", CreatedAt: created},
	}))
	require.NoError(t, store.JunctionStore().SaveJunctions(ctx, []domain.Junction{
		{ID: "j1", SourceID: "s1", ChunkID: "c1", KeywordID: "k1", CreatedAt: created},
	}))

	chunks, err := store.ChunkStore().GetChunks(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.True(t, created.Equal(chunks[0].CreatedAt), "chunk created_at: %v", chunks[0].CreatedAt)

	chunk, err := store.ChunkStore().GetChunk(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, created.Equal(chunk.CreatedAt))

	keyword, err := store.KeywordStore().GetKeyword(ctx, "s1", "k1")
	require.NoError(t, err)
	assert.True(t, created.Equal(keyword.CreatedAt), "keyword created_at: %v", keyword.CreatedAt)

	junctions, err := store.JunctionStore().GetJunctions(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, junctions, 1)
	assert.True(t, created.Equal(junctions[0].CreatedAt), "junction created_at: %v", junctions[0].CreatedAt)

	linked, err := store.JunctionStore().GetLinkedChunks(ctx, "s1", "k1")
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.True(t, created.Equal(linked[0].CreatedAt))
}

func TestKnowledgeStores_CreatedAtDefaultsToNow(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	seedSource(t, store, "s1")
	require.NoError(t, store.JunctionStore().SaveJunctions(ctx, []domain.Junction{
		{ID: "j1", SourceID: "s1", ChunkID: "s1-c1", KeywordID: "s1-k1"},
	}))

	chunks, err := store.ChunkStore().GetChunks(ctx, "s1")
	require.NoError(t, err)
	keywords, err := store.KeywordStore().GetKeywords(ctx, "s1")
	require.NoError(t, err)
	junctions, err := store.JunctionStore().GetJunctions(ctx, "s1")
	require.NoError(t, err)

	assert.False(t, chunks[0].CreatedAt.IsZero())
	assert.False(t, keywords[0].CreatedAt.IsZero())
	assert.False(t, junctions[0].CreatedAt.IsZero())
}

// ==================== Summary Store Tests ====================

func TestSummaryStore_SaveAndGet(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	seedSource(t, store, "s1")

	_, err := store.SummaryStore().GetSummary(ctx, "s1", "s1-k1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.SummaryStore().SaveSummary(ctx, &domain.Summary{
		ID: "sum1", SourceID: "s1", KeywordID: "s1-k1", Summary: "# Einstein\nA physicist.",
	}))

	got, err := store.SummaryStore().GetSummary(ctx, "s1", "s1-k1")
	require.NoError(t, err)
	assert.Equal(t, "# Einstein\nA physicist.", got.Summary)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestSummaryStore_DuplicateIsAlreadyExists(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	seedSource(t, store, "s1")
	require.NoError(t, store.SummaryStore().SaveSummary(ctx, &domain.Summary{
		ID: "sum1", SourceID: "s1", KeywordID: "s1-k1", Summary: "first",
	}))

	err := store.SummaryStore().SaveSummary(ctx, &domain.Summary{
		ID: "sum2", SourceID: "s1", KeywordID: "s1-k1", Summary: "second",
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	got, err := store.SummaryStore().GetSummary(ctx, "s1", "s1-k1")
	require.NoError(t, err)
	assert.Equal(t, "first", got.Summary)
}
