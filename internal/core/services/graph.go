package services

import (
	"context"
	"fmt"

	"github.com/0M-3/synaptext/internal/core/domain"
	"github.com/0M-3/synaptext/internal/core/ports/driven"
	"github.com/0M-3/synaptext/internal/core/ports/driving"
)

// Ensure GraphService implements the interface.
var _ driving.GraphService = (*GraphService)(nil)

// GraphService assembles relationship views of a stored source.
type GraphService struct {
	store driven.KnowledgeStore
}

// NewGraphService creates a new graph service.
func NewGraphService(store driven.KnowledgeStore) *GraphService {
	return &GraphService{store: store}
}

// GetGraph returns chunks and keywords, each keyword carrying the IDs of the
// chunks it is linked to in junction order.
func (s *GraphService) GetGraph(ctx context.Context, sourceID string) (*domain.Graph, error) {
	chunks, keywords, junctions, err := s.load(ctx, sourceID)
	if err != nil {
		return nil, err
	}

	linked := make(map[string][]string, len(keywords))
	for _, j := range junctions {
		linked[j.KeywordID] = append(linked[j.KeywordID], j.ChunkID)
	}

	graph := &domain.Graph{
		Chunks:   chunks,
		Keywords: make([]domain.GraphKeyword, len(keywords)),
	}
	for i, kw := range keywords {
		ids := linked[kw.ID]
		if ids == nil {
			ids = []string{}
		}
		graph.Keywords[i] = domain.GraphKeyword{ID: kw.ID, Keyword: kw.Keyword, ChunkIDs: ids}
	}
	return graph, nil
}

// GetCentralityGraph returns the bipartite chunk/keyword graph of a source
// with normalised degree centrality on every node.
func (s *GraphService) GetCentralityGraph(ctx context.Context, sourceID string) (*domain.CentralityGraph, error) {
	chunks, keywords, junctions, err := s.load(ctx, sourceID)
	if err != nil {
		return nil, err
	}

	b := newGraphBuilder()
	for _, ch := range chunks {
		b.addNode(ch.ID, ch.Text, domain.NodeTypeChunk)
	}
	for _, kw := range keywords {
		b.addNode(kw.ID, kw.Keyword, domain.NodeTypeTopic)
	}
	for _, j := range junctions {
		b.addEdge(j.ChunkID, j.KeywordID)
	}
	return b.build(), nil
}

func (s *GraphService) load(
	ctx context.Context,
	sourceID string,
) ([]domain.Chunk, []domain.Keyword, []domain.Junction, error) {
	if _, err := s.store.SourceStore().Get(ctx, sourceID); err != nil {
		return nil, nil, nil, fmt.Errorf("get source: %w", err)
	}
	chunks, err := s.store.ChunkStore().GetChunks(ctx, sourceID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("get chunks: %w", err)
	}
	keywords, err := s.store.KeywordStore().GetKeywords(ctx, sourceID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("get keywords: %w", err)
	}
	junctions, err := s.store.JunctionStore().GetJunctions(ctx, sourceID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("get junctions: %w", err)
	}
	return chunks, keywords, junctions, nil
}

// graphBuilder accumulates an undirected simple graph in insertion order.
type graphBuilder struct {
	nodes  []domain.GraphNode
	index  map[string]int
	links  []domain.GraphLink
	edges  map[[2]string]bool
	degree map[string]int
}

func newGraphBuilder() *graphBuilder {
	return &graphBuilder{
		index:  make(map[string]int),
		edges:  make(map[[2]string]bool),
		degree: make(map[string]int),
	}
}

// addNode adds a node unless one with the same ID exists.
func (b *graphBuilder) addNode(id, label string, typ domain.NodeType) {
	if _, ok := b.index[id]; ok {
		return
	}
	b.index[id] = len(b.nodes)
	b.nodes = append(b.nodes, domain.GraphNode{ID: id, Label: label, Type: typ})
}

// addEdge links two existing nodes. Repeated and self edges are ignored.
func (b *graphBuilder) addEdge(from, to string) {
	if from == to {
		return
	}
	if _, ok := b.index[from]; !ok {
		return
	}
	if _, ok := b.index[to]; !ok {
		return
	}
	key := [2]string{from, to}
	if from > to {
		key = [2]string{to, from}
	}
	if b.edges[key] {
		return
	}
	b.edges[key] = true
	b.links = append(b.links, domain.GraphLink{Source: from, Target: to})
	b.degree[from]++
	b.degree[to]++
}

// build computes degree centrality deg/(n-1). A lone node has
// centrality 1.
func (b *graphBuilder) build() *domain.CentralityGraph {
	n := len(b.nodes)
	for i := range b.nodes {
		if n == 1 {
			b.nodes[i].Centrality = 1
			continue
		}
		b.nodes[i].Centrality = float64(b.degree[b.nodes[i].ID]) / float64(n-1)
	}
	links := b.links
	if links == nil {
		links = []domain.GraphLink{}
	}
	nodes := b.nodes
	if nodes == nil {
		nodes = []domain.GraphNode{}
	}
	return &domain.CentralityGraph{Nodes: nodes, Links: links}
}
