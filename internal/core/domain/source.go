package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// Source represents one ingested PDF document.
// Every chunk, keyword, junction and summary belongs to exactly one source
// and is removed together with it.
type Source struct {
	// ID is the unique identifier for the source.
	ID string `json:"id" yaml:"id"`

	// Filename is the original upload name (e.g. "paper.pdf").
	Filename string `json:"filename" yaml:"filename"`

	// CreatedAt is when the source was ingested.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Title returns the filename without directory or extension.
func (s *Source) Title() string {
	base := filepath.Base(s.Filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// IngestResult reports the outcome of ingesting one document.
type IngestResult struct {
	// SourceID is the ID of the created source.
	SourceID string `json:"source_id" yaml:"source_id"`

	// Filename is the original upload name.
	Filename string `json:"filename" yaml:"filename"`

	// Status is "success" when every stage completed.
	Status string `json:"status" yaml:"status"`

	// Pages is the number of pages text was extracted from.
	Pages int `json:"pages" yaml:"pages"`

	// Chunks is the number of chunks stored.
	Chunks int `json:"chunks" yaml:"chunks"`

	// Keywords is the number of keywords stored.
	Keywords int `json:"keywords" yaml:"keywords"`

	// Junctions is the number of chunk/keyword links stored.
	Junctions int `json:"junctions" yaml:"junctions"`
}

// IngestStatusSuccess is the status of a completed ingestion.
const IngestStatusSuccess = "success"
