package services

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/0M-3/synaptext/internal/core/domain"
)

// BuildJunctions links every keyword to every chunk whose text contains it.
//
// Matching is a case-sensitive substring test, so "Einstein" links to
// "Einsteinian" but not to "einstein". Keywords are the outer loop and
// chunks the inner loop, which fixes the output order. Cost is
// O(keywords × chunks) substring searches. Calling it twice for the same
// source produces a second, duplicate set of links. Every junction carries
// createdAt.
func BuildJunctions(sourceID string, chunks []domain.Chunk, keywords []domain.Keyword, createdAt time.Time) []domain.Junction {
	var junctions []domain.Junction
	for _, kw := range keywords {
		if kw.Keyword == "" {
			continue
		}
		for _, ch := range chunks {
			if strings.Contains(ch.Text, kw.Keyword) {
				junctions = append(junctions, domain.Junction{
					ID:        uuid.New().String(),
					SourceID:  sourceID,
					ChunkID:   ch.ID,
					KeywordID: kw.ID,
					CreatedAt: createdAt,
				})
			}
		}
	}
	return junctions
}
