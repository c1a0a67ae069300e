package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/0M-3/synaptext/internal/core/domain"
)

var (
	errGraphUnavailable   = errors.New("graph service not configured")
	errSummaryUnavailable = errors.New("summary service not configured")
)

// ListSourcesInput is the input schema for the list_sources tool.
type ListSourcesInput struct{}

// ListSourcesOutput is the output schema for the list_sources tool.
type ListSourcesOutput struct {
	Sources []SourceOutput `json:"sources"`
	Count   int            `json:"count"`
}

// SourceOutput represents a single ingested source.
type SourceOutput struct {
	ID        string `json:"id"`
	Filename  string `json:"filename"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}

// SourceInput selects one source.
type SourceInput struct {
	SourceID string `json:"source_id" jsonschema:"the ID of an ingested source"`
}

// ListKeywordsOutput is the output schema for the list_keywords tool.
type ListKeywordsOutput struct {
	Keywords []domain.Keyword `json:"keywords"`
	Count    int              `json:"count"`
}

// GetGraphOutput is the output schema for the get_graph tool.
type GetGraphOutput struct {
	Graph *domain.Graph `json:"graph"`
}

// GetSummaryInput is the input schema for the get_summary tool.
type GetSummaryInput struct {
	SourceID  string `json:"source_id" jsonschema:"the ID of an ingested source"`
	KeywordID string `json:"keyword_id" jsonschema:"the ID of a keyword of that source"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_sources",
		Description: "List all ingested PDF sources",
	}, s.handleListSources)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_keywords",
		Description: "List the keywords extracted from a source",
	}, s.handleListKeywords)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_graph",
		Description: "Get the chunks of a source and the chunks each keyword occurs in",
	}, s.handleGetGraph)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_summary",
		Description: "Get the Markdown summary of one keyword, generating it on first request",
	}, s.handleGetSummary)
}

func (s *Server) handleListSources(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListSourcesInput,
) (*mcp.CallToolResult, ListSourcesOutput, error) {
	sources, err := s.ports.Source.List(ctx)
	if err != nil {
		return nil, ListSourcesOutput{}, err
	}

	output := ListSourcesOutput{
		Sources: make([]SourceOutput, len(sources)),
		Count:   len(sources),
	}
	for i := range sources {
		output.Sources[i] = SourceOutput{
			ID:        sources[i].ID,
			Filename:  sources[i].Filename,
			Title:     sources[i].Title(),
			CreatedAt: sources[i].CreatedAt.Format(time.RFC3339),
		}
	}
	return nil, output, nil
}

func (s *Server) handleListKeywords(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SourceInput,
) (*mcp.CallToolResult, ListKeywordsOutput, error) {
	keywords, err := s.ports.Source.ListKeywords(ctx, input.SourceID)
	if err != nil {
		return nil, ListKeywordsOutput{}, err
	}
	if keywords == nil {
		keywords = []domain.Keyword{}
	}
	return nil, ListKeywordsOutput{Keywords: keywords, Count: len(keywords)}, nil
}

func (s *Server) handleGetGraph(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SourceInput,
) (*mcp.CallToolResult, GetGraphOutput, error) {
	if s.ports.Graph == nil {
		return nil, GetGraphOutput{}, errGraphUnavailable
	}
	graph, err := s.ports.Graph.GetGraph(ctx, input.SourceID)
	if err != nil {
		return nil, GetGraphOutput{}, err
	}
	return nil, GetGraphOutput{Graph: graph}, nil
}

func (s *Server) handleGetSummary(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetSummaryInput,
) (*mcp.CallToolResult, domain.KeywordSummary, error) {
	if s.ports.Summary == nil {
		return nil, domain.KeywordSummary{}, errSummaryUnavailable
	}
	summary, err := s.ports.Summary.GetSummary(ctx, input.SourceID, input.KeywordID)
	if err != nil {
		return nil, domain.KeywordSummary{}, err
	}
	return nil, *summary, nil
}
