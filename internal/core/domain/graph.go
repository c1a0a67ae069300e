package domain

// Graph is the chunk/keyword relationship view of one source.
type Graph struct {
	// Chunks are all chunks of the source.
	Chunks []Chunk `json:"chunks" yaml:"chunks"`

	// Keywords are all keywords of the source with their linked chunks.
	Keywords []GraphKeyword `json:"keywords" yaml:"keywords"`
}

// GraphKeyword is a keyword annotated with the chunks that contain it.
type GraphKeyword struct {
	// ID is the keyword ID.
	ID string `json:"id" yaml:"id"`

	// Keyword is the surface text.
	Keyword string `json:"keyword" yaml:"keyword"`

	// ChunkIDs lists linked chunks in junction order. Duplicates are kept.
	ChunkIDs []string `json:"chunk_ids" yaml:"chunk_ids"`
}

// NodeType distinguishes the two sides of a bipartite graph.
type NodeType string

// Node types.
const (
	// NodeTypeChunk is a text segment node.
	NodeTypeChunk NodeType = "CHUNK"

	// NodeTypeTopic is a keyword or entity node.
	NodeTypeTopic NodeType = "TOPIC"
)

// GraphNode is one node of a centrality graph.
type GraphNode struct {
	// ID is unique across both node types.
	ID string `json:"id" yaml:"id"`

	// Label is display text (chunk text or topic surface).
	Label string `json:"label" yaml:"label"`

	// Type is the node side.
	Type NodeType `json:"type" yaml:"type"`

	// Centrality is the normalised degree centrality in [0, 1].
	Centrality float64 `json:"centrality" yaml:"centrality"`
}

// GraphLink is an undirected edge between a chunk node and a topic node.
type GraphLink struct {
	// Source is the chunk node ID.
	Source string `json:"source" yaml:"source"`

	// Target is the topic node ID.
	Target string `json:"target" yaml:"target"`
}

// CentralityGraph is a bipartite chunk/topic graph annotated with centrality.
type CentralityGraph struct {
	// Nodes are in insertion order.
	Nodes []GraphNode `json:"nodes" yaml:"nodes"`

	// Links are the graph's edges.
	Links []GraphLink `json:"links" yaml:"links"`
}

// Node returns the node with the given ID, or nil.
func (g *CentralityGraph) Node(id string) *GraphNode {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// AnalysisChunk is one paragraph of an analysed document.
type AnalysisChunk struct {
	// ChunkID is the paragraph index. Its graph node is "chunk_<ChunkID>".
	ChunkID int `json:"chunk_id" yaml:"chunk_id"`

	// Text is the trimmed paragraph.
	Text string `json:"text" yaml:"text"`

	// Entities are the distinct topic entities named in the paragraph,
	// in order of first mention.
	Entities []string `json:"entities" yaml:"entities"`
}

// Analysis is the unpersisted result of analysing one document.
type Analysis struct {
	// Chunks are the kept paragraphs in document order.
	Chunks []AnalysisChunk `json:"chunks" yaml:"chunks"`

	// Graph links chunks to the entities they name.
	Graph *CentralityGraph `json:"graph" yaml:"graph"`
}
