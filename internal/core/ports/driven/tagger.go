package driven

import "context"

// Tagger performs the linguistic analysis term extraction relies on.
// Implementations wrap an NLP library and map its tag set to universal POS tags.
type Tagger interface {
	// Tag analyses text and returns tokens, noun phrases and named entities.
	Tag(ctx context.Context, text string) (*TaggedText, error)

	// IsStopWord reports whether a word is in the tagger's stop-word vocabulary.
	IsStopWord(word string) bool
}

// Universal part-of-speech tags used by Token.POS.
const (
	POSProperNoun = "PROPN"
	POSNoun       = "NOUN"
	POSOther      = "X"
)

// TaggedText is the result of analysing one text.
type TaggedText struct {
	// Tokens are all tokens in text order.
	Tokens []Token

	// NounPhrases are base noun phrases in text order.
	NounPhrases []NounPhrase

	// Entities are named entities in text order.
	Entities []Entity
}

// Token is a single tagged token.
type Token struct {
	// Text is the token surface.
	Text string

	// POS is the universal part-of-speech tag.
	POS string

	// IsStop is true if the token is a stop word.
	IsStop bool
}

// NounPhrase is a base noun phrase with its syntactic head.
type NounPhrase struct {
	// Text is the phrase surface as it appears in the text.
	Text string

	// Root is the head token of the phrase.
	Root Token
}

// Entity is a named entity mention.
type Entity struct {
	// Text is the mention surface.
	Text string

	// Label is the entity type (e.g. "PERSON", "ORG", "GPE").
	Label string
}
