package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/0M-3/synaptext/internal/core/domain"
	"github.com/0M-3/synaptext/internal/core/ports/driven"
)

// insertAll runs one prepared insert per item inside a single transaction.
func (s *Store) insertAll(ctx context.Context, query string, n int, args func(i int) []any) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("row %d references a missing or foreign entity: %w", i, domain.ErrInvalidInput)
			}
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// stampTime returns t, or the current time when t is unset.
func stampTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}

// ==================== Chunk Store ====================

// chunkStore implements driven.ChunkStore.
type chunkStore struct {
	store *Store
}

var _ driven.ChunkStore = (*chunkStore)(nil)

// SaveChunks stores chunks in one transaction.
func (s *chunkStore) SaveChunks(ctx context.Context, chunks []domain.Chunk) error {
	err := s.store.insertAll(ctx, `
		INSERT INTO chunks (id, source_id, text, created_at) VALUES (?, ?, ?, ?)
	`, len(chunks), func(i int) []any {
		return []any{chunks[i].ID, chunks[i].SourceID, chunks[i].Text, stampTime(chunks[i].CreatedAt)}
	})
	if err != nil {
		return fmt.Errorf("saving chunks: %w", err)
	}
	return nil
}

// GetChunks returns all chunks of a source in insertion order.
func (s *chunkStore) GetChunks(ctx context.Context, sourceID string) ([]domain.Chunk, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, source_id, text, created_at FROM chunks WHERE source_id = ? ORDER BY rowid
	`, sourceID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	return collectChunks(rows)
}

// GetChunk retrieves a chunk by ID.
func (s *chunkStore) GetChunk(ctx context.Context, id string) (*domain.Chunk, error) {
	chunk, err := scanChunk(s.store.db.QueryRowContext(ctx, `
		SELECT id, source_id, text, created_at FROM chunks WHERE id = ?
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return chunk, nil
}

func scanChunk(row rowScanner) (*domain.Chunk, error) {
	var chunk domain.Chunk
	var created sql.NullTime
	if err := row.Scan(&chunk.ID, &chunk.SourceID, &chunk.Text, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}
	chunk.CreatedAt = created.Time
	return &chunk, nil
}

func collectChunks(rows *sql.Rows) ([]domain.Chunk, error) {
	defer rows.Close()

	chunks := []domain.Chunk{}
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, *chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}
	return chunks, nil
}

// ==================== Keyword Store ====================

// keywordStore implements driven.KeywordStore.
type keywordStore struct {
	store *Store
}

var _ driven.KeywordStore = (*keywordStore)(nil)

// SaveKeywords stores keywords in one transaction.
func (s *keywordStore) SaveKeywords(ctx context.Context, keywords []domain.Keyword) error {
	err := s.store.insertAll(ctx, `
		INSERT INTO keywords (id, source_id, keyword, kind, count, created_at) VALUES (?, ?, ?, ?, ?, ?)
	`, len(keywords), func(i int) []any {
		kw := keywords[i]
		kind := kw.Kind
		if kind == "" {
			kind = domain.KeywordKindPhrase
		}
		return []any{kw.ID, kw.SourceID, kw.Keyword, string(kind), kw.Count, stampTime(kw.CreatedAt)}
	})
	if err != nil {
		return fmt.Errorf("saving keywords: %w", err)
	}
	return nil
}

// GetKeywords returns all keywords of a source in insertion order.
func (s *keywordStore) GetKeywords(ctx context.Context, sourceID string) ([]domain.Keyword, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, source_id, keyword, kind, count, created_at FROM keywords WHERE source_id = ? ORDER BY rowid
	`, sourceID)
	if err != nil {
		return nil, fmt.Errorf("querying keywords: %w", err)
	}
	defer rows.Close()

	keywords := []domain.Keyword{}
	for rows.Next() {
		kw, err := scanKeyword(rows)
		if err != nil {
			return nil, err
		}
		keywords = append(keywords, *kw)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating keywords: %w", err)
	}
	return keywords, nil
}

// GetKeyword retrieves a keyword scoped to a source.
func (s *keywordStore) GetKeyword(ctx context.Context, sourceID, keywordID string) (*domain.Keyword, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, source_id, keyword, kind, count, created_at FROM keywords WHERE id = ? AND source_id = ?
	`, keywordID, sourceID)

	kw, err := scanKeyword(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return kw, nil
}

func scanKeyword(row rowScanner) (*domain.Keyword, error) {
	var kw domain.Keyword
	var kind string
	var created sql.NullTime
	if err := row.Scan(&kw.ID, &kw.SourceID, &kw.Keyword, &kind, &kw.Count, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning keyword: %w", err)
	}
	kw.Kind = domain.KeywordKind(kind)
	kw.CreatedAt = created.Time
	return &kw, nil
}

// ==================== Junction Store ====================

// junctionStore implements driven.JunctionStore.
type junctionStore struct {
	store *Store
}

var _ driven.JunctionStore = (*junctionStore)(nil)

// SaveJunctions stores links in one transaction. The composite foreign keys
// reject links whose chunk or keyword belongs to another source.
func (s *junctionStore) SaveJunctions(ctx context.Context, junctions []domain.Junction) error {
	err := s.store.insertAll(ctx, `
		INSERT INTO junctions (id, source_id, chunk_id, keyword_id, created_at) VALUES (?, ?, ?, ?, ?)
	`, len(junctions), func(i int) []any {
		j := junctions[i]
		return []any{j.ID, j.SourceID, j.ChunkID, j.KeywordID, stampTime(j.CreatedAt)}
	})
	if err != nil {
		return fmt.Errorf("saving junctions: %w", err)
	}
	return nil
}

// GetJunctions returns all links of a source in insertion order.
func (s *junctionStore) GetJunctions(ctx context.Context, sourceID string) ([]domain.Junction, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, source_id, chunk_id, keyword_id, created_at FROM junctions WHERE source_id = ? ORDER BY rowid
	`, sourceID)
	if err != nil {
		return nil, fmt.Errorf("querying junctions: %w", err)
	}
	defer rows.Close()

	junctions := []domain.Junction{}
	for rows.Next() {
		var j domain.Junction
		var created sql.NullTime
		if err := rows.Scan(&j.ID, &j.SourceID, &j.ChunkID, &j.KeywordID, &created); err != nil {
			return nil, fmt.Errorf("scanning junction: %w", err)
		}
		j.CreatedAt = created.Time
		junctions = append(junctions, j)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating junctions: %w", err)
	}
	return junctions, nil
}

// GetLinkedChunks returns the chunks linked to a keyword in junction insertion order.
func (s *junctionStore) GetLinkedChunks(ctx context.Context, sourceID, keywordID string) ([]domain.Chunk, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT c.id, c.source_id, c.text, c.created_at
		FROM junctions j
		JOIN chunks c ON c.id = j.chunk_id
		WHERE j.source_id = ? AND j.keyword_id = ?
		ORDER BY j.rowid
	`, sourceID, keywordID)
	if err != nil {
		return nil, fmt.Errorf("querying linked chunks: %w", err)
	}
	return collectChunks(rows)
}

// ==================== Summary Store ====================

// summaryStore implements driven.SummaryStore.
type summaryStore struct {
	store *Store
}

var _ driven.SummaryStore = (*summaryStore)(nil)

// GetSummary returns the cached summary for a keyword.
func (s *summaryStore) GetSummary(ctx context.Context, sourceID, keywordID string) (*domain.Summary, error) {
	var summary domain.Summary
	var createdAt sql.NullTime
	err := s.store.db.QueryRowContext(ctx, `
		SELECT id, source_id, keyword_id, summary, created_at
		FROM summaries WHERE source_id = ? AND keyword_id = ?
	`, sourceID, keywordID).Scan(&summary.ID, &summary.SourceID, &summary.KeywordID,
		&summary.Summary, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning summary: %w", err)
	}
	if createdAt.Valid {
		summary.CreatedAt = createdAt.Time
	}
	return &summary, nil
}

// SaveSummary caches a summary. The (source_id, keyword_id) uniqueness
// constraint turns a concurrent duplicate into domain.ErrAlreadyExists.
func (s *summaryStore) SaveSummary(ctx context.Context, summary *domain.Summary) error {
	if summary.CreatedAt.IsZero() {
		summary.CreatedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO summaries (id, source_id, keyword_id, summary, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, summary.ID, summary.SourceID, summary.KeywordID, summary.Summary, summary.CreatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrAlreadyExists
		case isForeignKeyViolation(err):
			return fmt.Errorf("saving summary for keyword %s: %w", summary.KeywordID, domain.ErrInvalidInput)
		}
		return fmt.Errorf("saving summary: %w", err)
	}
	return nil
}
