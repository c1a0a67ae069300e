package domain

import "time"

// Chunk is a bounded text segment of a source.
// Chunks never span pages and are at most the chunker's configured size.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string `json:"id" yaml:"id"`

	// SourceID links to the parent Source.
	SourceID string `json:"source_id" yaml:"source_id"`

	// Text is the segment content.
	Text string `json:"text" yaml:"text"`

	// CreatedAt is when the chunk was stored.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// ChunkIDs returns the IDs of the given chunks in order.
func ChunkIDs(chunks []Chunk) []string {
	ids := make([]string, len(chunks))
	for i := range chunks {
		ids[i] = chunks[i].ID
	}
	return ids
}
