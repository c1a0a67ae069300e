// Package domain defines the core business entities for SynapText.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Source: An ingested PDF document
//   - Chunk: A bounded text segment of a source
//   - Keyword: A salient term extracted from a source
//   - Junction: A link between a chunk and a keyword it contains
//   - Summary: A cached LLM-generated summary of one keyword
//   - Graph: The chunk/keyword relationship view of a source
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
