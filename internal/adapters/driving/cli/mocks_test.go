package cli

import (
	"context"
	"io"
	"time"

	"github.com/0M-3/synaptext/internal/core/domain"
)

type mockIngestService struct {
	filenames []string
	err       error
}

func (m *mockIngestService) Ingest(_ context.Context, filename string, r io.Reader) (*domain.IngestResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.filenames = append(m.filenames, filename)
	if _, err := io.Copy(io.Discard, r); err != nil {
		return nil, err
	}
	return &domain.IngestResult{
		SourceID:  "src-new",
		Filename:  filename,
		Status:    domain.IngestStatusSuccess,
		Pages:     2,
		Chunks:    5,
		Keywords:  3,
		Junctions: 7,
	}, nil
}

type mockAnalysisService struct {
	chunks []domain.AnalysisChunk
	graph  *domain.CentralityGraph
	err    error
}

func (m *mockAnalysisService) Analyze(_ context.Context, _ string, _ io.Reader) (*domain.Analysis, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Analysis{Chunks: m.chunks, Graph: m.graph}, nil
}

type mockSourceService struct {
	sources  []domain.Source
	chunks   []domain.Chunk
	keywords []domain.Keyword
	deleted  []string
	err      error
}

func (m *mockSourceService) List(_ context.Context) ([]domain.Source, error) {
	return m.sources, m.err
}

func (m *mockSourceService) Get(_ context.Context, sourceID string) (*domain.Source, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.sources {
		if m.sources[i].ID == sourceID {
			return &m.sources[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockSourceService) Delete(_ context.Context, sourceID string) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, sourceID)
	return nil
}

func (m *mockSourceService) ListChunks(_ context.Context, _ string) ([]domain.Chunk, error) {
	return m.chunks, m.err
}

func (m *mockSourceService) ListKeywords(_ context.Context, _ string) ([]domain.Keyword, error) {
	return m.keywords, m.err
}

type mockGraphService struct {
	graph      *domain.Graph
	centrality *domain.CentralityGraph
	err        error
}

func (m *mockGraphService) GetGraph(_ context.Context, _ string) (*domain.Graph, error) {
	return m.graph, m.err
}

func (m *mockGraphService) GetCentralityGraph(_ context.Context, _ string) (*domain.CentralityGraph, error) {
	return m.centrality, m.err
}

type mockSummaryService struct {
	summary *domain.KeywordSummary
	err     error
}

func (m *mockSummaryService) GetSummary(_ context.Context, _, _ string) (*domain.KeywordSummary, error) {
	return m.summary, m.err
}

type mockExportService struct {
	archive *domain.Archive
	err     error
}

func (m *mockExportService) Export(_ context.Context, _ string) (*domain.Archive, error) {
	return m.archive, m.err
}

type mockSettingsService struct {
	settings    domain.AppSettings
	provider    domain.AIProvider
	model       string
	apiKey      string
	chunkSize   int
	validateErr error
	validated   bool
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.settings = *settings
	return nil
}

func (m *mockSettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return domain.ErrInvalidInput
	}
	m.provider = provider
	m.model = model
	m.apiKey = apiKey
	return nil
}

func (m *mockSettingsService) SetChunkSize(size int) error {
	if size <= 0 {
		return domain.ErrInvalidInput
	}
	m.chunkSize = size
	return nil
}

func (m *mockSettingsService) ValidateLLMConfig() error {
	m.validated = true
	return m.validateErr
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// testServices holds the mocks installed by setupTestServices.
type testServices struct {
	ingest   *mockIngestService
	analysis *mockAnalysisService
	source   *mockSourceService
	graph    *mockGraphService
	summary  *mockSummaryService
	export   *mockExportService
	settings *mockSettingsService
}

var testCreatedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// setupTestServices installs populated mocks and returns them with a
// cleanup that restores the previous services.
func setupTestServices() (*testServices, func()) {
	prev := Services{
		Ingest:   ingestService,
		Analysis: analysisService,
		Source:   sourceService,
		Graph:    graphService,
		Summary:  summaryService,
		Export:   exportService,
		Settings: settingsService,
	}

	ts := &testServices{
		ingest: &mockIngestService{},
		analysis: &mockAnalysisService{
			chunks: []domain.AnalysisChunk{
				{ChunkID: 0, Text: "Einstein worked in Bern.", Entities: []string{"Einstein", "Bern"}},
			},
			graph: &domain.CentralityGraph{
				Nodes: []domain.GraphNode{
					{ID: "chunk_0", Label: "Einstein worked in Bern.", Type: domain.NodeTypeChunk, Centrality: 1},
					{ID: "Bern", Label: "Bern", Type: domain.NodeTypeTopic, Centrality: 0.5},
					{ID: "Einstein", Label: "Einstein", Type: domain.NodeTypeTopic, Centrality: 0.75},
				},
				Links: []domain.GraphLink{
					{Source: "chunk_0", Target: "Einstein"},
					{Source: "chunk_0", Target: "Bern"},
				},
			},
		},
		source: &mockSourceService{
			sources: []domain.Source{
				{ID: "src-1", Filename: "relativity.pdf", CreatedAt: testCreatedAt},
			},
			chunks: []domain.Chunk{
				{ID: "c1", SourceID: "src-1", Text: "Einstein published the theory of relativity."},
			},
			keywords: []domain.Keyword{
				{ID: "k1", SourceID: "src-1", Keyword: "Einstein", Kind: domain.KeywordKindProperNoun, Count: 3},
			},
		},
		graph: &mockGraphService{
			graph: &domain.Graph{
				Chunks:   []domain.Chunk{{ID: "c1", SourceID: "src-1", Text: "Einstein published"}},
				Keywords: []domain.GraphKeyword{{ID: "k1", Keyword: "Einstein", ChunkIDs: []string{"c1"}}},
			},
			centrality: &domain.CentralityGraph{
				Nodes: []domain.GraphNode{{ID: "c1", Type: domain.NodeTypeChunk, Centrality: 1}},
			},
		},
		summary: &mockSummaryService{summary: &domain.KeywordSummary{
			Keyword: "Einstein", Summary: "Einstein is the central figure.",
		}},
		export: &mockExportService{archive: &domain.Archive{
			Filename: "source_src-1_summaries.zip", Data: []byte("PK"), Entries: 1,
		}},
		settings: &mockSettingsService{settings: domain.DefaultAppSettings()},
	}

	SetServices(&Services{
		Ingest:   ts.ingest,
		Analysis: ts.analysis,
		Source:   ts.source,
		Graph:    ts.graph,
		Summary:  ts.summary,
		Export:   ts.export,
		Settings: ts.settings,
	})

	return ts, func() { SetServices(&prev) }
}
