package mcp

import (
	"context"

	"github.com/0M-3/synaptext/internal/core/domain"
)

// mockSourceService is a mock implementation of driving.SourceService.
type mockSourceService struct {
	sources  []domain.Source
	source   *domain.Source
	chunks   []domain.Chunk
	keywords []domain.Keyword
	err      error
}

func (m *mockSourceService) List(_ context.Context) ([]domain.Source, error) {
	return m.sources, m.err
}

func (m *mockSourceService) Get(_ context.Context, _ string) (*domain.Source, error) {
	return m.source, m.err
}

func (m *mockSourceService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockSourceService) ListChunks(_ context.Context, _ string) ([]domain.Chunk, error) {
	return m.chunks, m.err
}

func (m *mockSourceService) ListKeywords(_ context.Context, _ string) ([]domain.Keyword, error) {
	return m.keywords, m.err
}

// mockGraphService is a mock implementation of driving.GraphService.
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

// mockSummaryService is a mock implementation of driving.SummaryService.
type mockSummaryService struct {
	summary   *domain.KeywordSummary
	err       error
	sourceID  string
	keywordID string
}

func (m *mockSummaryService) GetSummary(_ context.Context, sourceID, keywordID string) (*domain.KeywordSummary, error) {
	m.sourceID = sourceID
	m.keywordID = keywordID
	return m.summary, m.err
}
