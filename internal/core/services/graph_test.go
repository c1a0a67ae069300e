package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0M-3/synaptext/internal/adapters/driven/storage/memory"
	"github.com/0M-3/synaptext/internal/core/domain"
)

func TestGraphService_GetGraph(t *testing.T) {
	store := memory.NewStore()
	chunks, keywords := seedSource(t, store, "s1",
		[]string{"Einstein changed physics.", "Bohr argued.", "Einstein replied."},
		[]string{"Einstein", "Bohr", "Planck"})
	svc := NewGraphService(store)

	graph, err := svc.GetGraph(context.Background(), "s1")

	require.NoError(t, err)
	assert.Equal(t, chunks, graph.Chunks)
	require.Len(t, graph.Keywords, 3)

	assert.Equal(t, keywords[0].ID, graph.Keywords[0].ID)
	assert.Equal(t, "Einstein", graph.Keywords[0].Keyword)
	assert.Equal(t, []string{chunks[0].ID, chunks[2].ID}, graph.Keywords[0].ChunkIDs)
	assert.Equal(t, []string{chunks[1].ID}, graph.Keywords[1].ChunkIDs)
	assert.Empty(t, graph.Keywords[2].ChunkIDs)
	assert.NotNil(t, graph.Keywords[2].ChunkIDs)
}

func TestGraphService_MissingSource(t *testing.T) {
	svc := NewGraphService(memory.NewStore())

	_, err := svc.GetGraph(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetCentralityGraph(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGraphService_GetCentralityGraph(t *testing.T) {
	store := memory.NewStore()
	chunks, keywords := seedSource(t, store, "s1",
		[]string{"Einstein and Bohr", "Einstein alone"},
		[]string{"Einstein", "Bohr", "Planck"})
	svc := NewGraphService(store)

	graph, err := svc.GetCentralityGraph(context.Background(), "s1")

	require.NoError(t, err)
	require.Len(t, graph.Nodes, 5)
	assert.Len(t, graph.Links, 3)

	// n = 5, so centrality is degree / 4.
	einstein := graph.Node(keywords[0].ID)
	require.NotNil(t, einstein)
	assert.Equal(t, domain.NodeTypeTopic, einstein.Type)
	assert.InDelta(t, 0.5, einstein.Centrality, 1e-9)

	first := graph.Node(chunks[0].ID)
	require.NotNil(t, first)
	assert.Equal(t, domain.NodeTypeChunk, first.Type)
	assert.Equal(t, "Einstein and Bohr", first.Label)
	assert.InDelta(t, 0.5, first.Centrality, 1e-9)

	assert.InDelta(t, 0.25, graph.Node(chunks[1].ID).Centrality, 1e-9)
	assert.InDelta(t, 0.25, graph.Node(keywords[1].ID).Centrality, 1e-9)
	assert.Zero(t, graph.Node(keywords[2].ID).Centrality, "isolated node")
}

func TestGraphBuilder_DegenerateGraphs(t *testing.T) {
	empty := newGraphBuilder().build()
	assert.Empty(t, empty.Nodes)
	assert.NotNil(t, empty.Links)

	b := newGraphBuilder()
	b.addNode("only", "only", domain.NodeTypeChunk)
	single := b.build()
	require.Len(t, single.Nodes, 1)
	assert.Equal(t, 1.0, single.Nodes[0].Centrality)
	assert.Empty(t, single.Links)
}

func TestGraphBuilder_IgnoresDuplicateEdges(t *testing.T) {
	b := newGraphBuilder()
	b.addNode("c", "chunk", domain.NodeTypeChunk)
	b.addNode("t", "topic", domain.NodeTypeTopic)
	b.addNode("c", "again", domain.NodeTypeChunk)
	b.addEdge("c", "t")
	b.addEdge("t", "c")
	b.addEdge("c", "missing")

	g := b.build()

	require.Len(t, g.Nodes, 2)
	assert.Equal(t, "chunk", g.Nodes[0].Label)
	require.Len(t, g.Links, 1)
	assert.InDelta(t, 1.0, g.Node("c").Centrality, 1e-9)
}
