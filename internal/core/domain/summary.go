package domain

import "time"

// Summary is a cached LLM-generated summary of one keyword.
// At most one summary exists per (source, keyword) pair.
type Summary struct {
	// ID is the unique identifier for the summary.
	ID string

	// SourceID links to the parent Source.
	SourceID string

	// KeywordID is the keyword that was summarised.
	KeywordID string

	// Summary is the generated Markdown text.
	Summary string

	// CreatedAt is when the summary was generated.
	CreatedAt time.Time
}

// KeywordSummary is the summary payload returned to callers.
type KeywordSummary struct {
	// Keyword is the keyword's surface text.
	Keyword string `json:"keyword" yaml:"keyword"`

	// Summary is the Markdown summary, or an "Error: ..." message
	// when generation failed.
	Summary string `json:"summary" yaml:"summary"`

	// Cached is true when the summary was read from the store.
	Cached bool `json:"cached" yaml:"cached"`
}

// SummaryErrorPrefix starts every summary payload produced by a failed generation.
const SummaryErrorPrefix = "Error: "

// Archive is a packaged set of files ready for download.
type Archive struct {
	// Filename is the suggested download name.
	Filename string

	// Data is the encoded archive.
	Data []byte

	// Entries is the number of files in the archive.
	Entries int
}
