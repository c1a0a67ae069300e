package mcp

import (
	"github.com/0M-3/synaptext/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Source reads ingested sources, chunks and keywords.
	Source driving.SourceService

	// Graph builds keyword graphs.
	Graph driving.GraphService

	// Summary returns keyword summaries.
	Summary driving.SummaryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Source == nil {
		return ErrMissingSourceService
	}
	// Graph and Summary tools report themselves unavailable when unset
	return nil
}
