package domain

import "time"

// KeywordKind records which extraction produced a keyword.
type KeywordKind string

// Available keyword kinds.
const (
	// KeywordKindProperNoun is a single token tagged as a proper noun.
	KeywordKindProperNoun KeywordKind = "proper_noun"

	// KeywordKindPhrase is a lower-cased noun phrase.
	KeywordKindPhrase KeywordKind = "phrase"
)

// IsValid returns true if the kind is recognised.
func (k KeywordKind) IsValid() bool {
	return k == KeywordKindProperNoun || k == KeywordKindPhrase
}

// String returns the string representation.
func (k KeywordKind) String() string {
	return string(k)
}

// Keyword is a salient term extracted from a source.
// Its surface text is matched literally against chunk text when links are built.
type Keyword struct {
	// ID is the unique identifier for the keyword.
	ID string `json:"id" yaml:"id"`

	// SourceID links to the parent Source.
	SourceID string `json:"source_id" yaml:"source_id"`

	// Keyword is the surface text.
	Keyword string `json:"keyword" yaml:"keyword"`

	// Kind is the extraction that produced the keyword.
	Kind KeywordKind `json:"kind" yaml:"kind"`

	// Count is the number of occurrences seen during extraction.
	Count int `json:"instances" yaml:"instances"`

	// CreatedAt is when the keyword was stored.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// TermCount is a candidate term with its occurrence count.
type TermCount struct {
	// Term is the surface text.
	Term string

	// Count is the number of occurrences.
	Count int
}

// Terms holds the ranked output of term extraction.
type Terms struct {
	// ProperNouns are single proper-noun tokens, most frequent first.
	ProperNouns []TermCount

	// Phrases are lower-cased noun phrases, most frequent first.
	Phrases []TermCount
}

// Len returns the total number of terms.
func (t *Terms) Len() int {
	return len(t.ProperNouns) + len(t.Phrases)
}
