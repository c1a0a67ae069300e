// Package connectors provides document sources that feed the ingestion
// pipeline from outside the CLI and HTTP surfaces. Each connector knows how
// to discover PDF files in one kind of location.
package connectors
