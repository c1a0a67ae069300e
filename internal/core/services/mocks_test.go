package services

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/0M-3/synaptext/internal/adapters/driven/storage/memory"
	"github.com/0M-3/synaptext/internal/core/domain"
	"github.com/0M-3/synaptext/internal/core/ports/driven"
)

// ==================== LLM ====================

type mockLLM struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
	prompts  []string
	opts     []driven.GenerateOptions
}

func (m *mockLLM) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.prompts = append(m.prompts, prompt)
	m.opts = append(m.opts, opts)
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockLLM) ModelName() string          { return "mock" }
func (m *mockLLM) Ping(context.Context) error { return nil }
func (m *mockLLM) Close() error               { return nil }

func (m *mockLLM) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// ==================== Prompts ====================

type mockPromptStore struct {
	prompts map[string]string
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if p, ok := m.prompts[name]; ok {
		return p, nil
	}
	return "", errors.New("prompt not found")
}

func (m *mockPromptStore) Reload() {}

// ==================== Pipeline stages ====================

type mockNormaliser struct {
	pages   []string
	err     error
	gotPath string
	gotData string
}

func (m *mockNormaliser) SupportedMIMETypes() []string { return []string{"application/pdf"} }

func (m *mockNormaliser) Normalise(_ context.Context, path string) (*driven.NormaliseResult, error) {
	m.gotPath = path
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m.gotData = string(data)
	if m.err != nil {
		return nil, m.err
	}
	return &driven.NormaliseResult{Pages: m.pages}, nil
}

// lineChunker emits every non-empty line of every page as a chunk.
type lineChunker struct{}

func (lineChunker) Name() string { return "chunker" }

func (lineChunker) Process(_ context.Context, pages []string) ([]string, error) {
	var out []string
	for _, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, line)
			}
		}
	}
	return out, nil
}

type mockExtractor struct {
	terms *domain.Terms
	err   error
	got   string
}

func (m *mockExtractor) Extract(_ context.Context, text string) (*domain.Terms, error) {
	m.got = text
	if m.err != nil {
		return nil, m.err
	}
	return m.terms, nil
}

type mockTagger struct {
	entities map[string][]driven.Entity
}

func (m *mockTagger) Tag(_ context.Context, text string) (*driven.TaggedText, error) {
	var ents []driven.Entity
	for needle, found := range m.entities {
		if strings.Contains(text, needle) {
			ents = append(ents, found...)
		}
	}
	return &driven.TaggedText{Entities: ents}, nil
}

func (m *mockTagger) IsStopWord(string) bool { return false }

// ==================== Fixtures ====================

// seedSource stores a source with the given chunks and keywords and links
// them with BuildJunctions.
func seedSource(
	t *testing.T,
	store *memory.Store,
	sourceID string,
	chunkTexts []string,
	keywordTexts []string,
) ([]domain.Chunk, []domain.Keyword) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.SourceStore().Save(ctx, &domain.Source{ID: sourceID, Filename: sourceID + ".pdf"}))

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	chunks := make([]domain.Chunk, len(chunkTexts))
	for i, text := range chunkTexts {
		chunks[i] = domain.Chunk{ID: sourceID + "-c" + string(rune('0'+i)), SourceID: sourceID, Text: text, CreatedAt: created}
	}
	require.NoError(t, store.ChunkStore().SaveChunks(ctx, chunks))

	keywords := make([]domain.Keyword, len(keywordTexts))
	for i, text := range keywordTexts {
		keywords[i] = domain.Keyword{
			ID: sourceID + "-k" + string(rune('0'+i)), SourceID: sourceID, Keyword: text,
			Kind: domain.KeywordKindProperNoun, Count: 1, CreatedAt: created,
		}
	}
	require.NoError(t, store.KeywordStore().SaveKeywords(ctx, keywords))
	require.NoError(t, store.JunctionStore().SaveJunctions(ctx, BuildJunctions(sourceID, chunks, keywords, created)))

	return chunks, keywords
}

func pdfReader() io.Reader {
	return strings.NewReader("%PDF-1.4 fake")
}
