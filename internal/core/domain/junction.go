package domain

import "time"

// Junction records that a keyword's surface text occurs in a chunk.
// Both ends must belong to the junction's source.
type Junction struct {
	// ID is the unique identifier for the junction.
	ID string

	// SourceID links to the parent Source.
	SourceID string

	// ChunkID is the chunk containing the keyword.
	ChunkID string

	// KeywordID is the keyword found in the chunk.
	KeywordID string

	// CreatedAt is when the link was stored.
	CreatedAt time.Time
}
