// Package mcp provides an MCP (Model Context Protocol) server adapter for SynapText.
// It lets AI assistants browse ingested sources, their keyword graphs and summaries.
package mcp

import "errors"

// ErrMissingSourceService is returned when the source service is not provided.
var ErrMissingSourceService = errors.New("mcp: source service is required")
