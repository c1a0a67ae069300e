package httpapi

import (
	"context"
	"io"

	"github.com/0M-3/synaptext/internal/core/domain"
)

type mockIngestService struct {
	result   *domain.IngestResult
	err      error
	filename string
	body     string
}

func (m *mockIngestService) Ingest(_ context.Context, filename string, r io.Reader) (*domain.IngestResult, error) {
	m.filename = filename
	data, _ := io.ReadAll(r)
	m.body = string(data)
	return m.result, m.err
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
	source   *domain.Source
	chunks   []domain.Chunk
	keywords []domain.Keyword
	err      error
	deleted  string
}

func (m *mockSourceService) List(_ context.Context) ([]domain.Source, error) {
	return m.sources, m.err
}

func (m *mockSourceService) Get(_ context.Context, _ string) (*domain.Source, error) {
	return m.source, m.err
}

func (m *mockSourceService) Delete(_ context.Context, sourceID string) error {
	m.deleted = sourceID
	return m.err
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
