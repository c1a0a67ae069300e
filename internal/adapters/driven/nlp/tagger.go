// Package nlp provides a driven.Tagger backed by github.com/jdkato/prose/v2.
//
// prose emits Penn Treebank tags; the tagger maps them to the universal tags
// the core expects and derives base noun phrases with a tag-pattern chunker.
package nlp

import (
	"context"
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/0M-3/synaptext/internal/core/ports/driven"
)

// Ensure Tagger implements the interface.
var _ driven.Tagger = (*Tagger)(nil)

// Tagger tags English text with prose.
type Tagger struct {
	stops    map[string]struct{}
	entities bool
}

// Option configures the tagger.
type Option func(*Tagger)

// WithStopWords adds words to the stop-word vocabulary.
func WithStopWords(words ...string) Option {
	return func(t *Tagger) {
		for _, w := range words {
			t.stops[strings.ToLower(w)] = struct{}{}
		}
	}
}

// WithEntities enables named-entity extraction. It is off by default
// because term extraction does not need it.
func WithEntities(enabled bool) Option {
	return func(t *Tagger) {
		t.entities = enabled
	}
}

// NewTagger creates a tagger with the default English stop words.
func NewTagger(opts ...Option) *Tagger {
	t := &Tagger{stops: defaultStopwords()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tag analyses text and returns tokens, noun phrases and (optionally) entities.
func (t *Tagger) Tag(ctx context.Context, text string) (*driven.TaggedText, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithExtraction(t.entities),
	)
	if err != nil {
		return nil, fmt.Errorf("analysing text: %w", err)
	}

	tagged := taggedToken(doc.Tokens())
	result := &driven.TaggedText{
		Tokens:      make([]driven.Token, len(tagged)),
		NounPhrases: t.nounPhrases(tagged),
	}
	for i, tok := range tagged {
		result.Tokens[i] = t.token(tok.text, tok.tag)
	}

	if t.entities {
		for _, ent := range doc.Entities() {
			result.Entities = append(result.Entities, driven.Entity{Text: ent.Text, Label: ent.Label})
		}
	}

	return result, nil
}

// IsStopWord reports whether word is in the stop-word vocabulary.
func (t *Tagger) IsStopWord(word string) bool {
	_, ok := t.stops[strings.ToLower(strings.TrimSpace(word))]
	return ok
}

// ptbToken is a token with its Penn Treebank tag.
type ptbToken struct {
	text string
	tag  string
}

func taggedToken(tokens []prose.Token) []ptbToken {
	out := make([]ptbToken, len(tokens))
	for i, tok := range tokens {
		out[i] = ptbToken{text: tok.Text, tag: tok.Tag}
	}
	return out
}

func (t *Tagger) token(text, tag string) driven.Token {
	return driven.Token{
		Text:   text,
		POS:    universalPOS(tag),
		IsStop: t.IsStopWord(text),
	}
}

// universalPOS maps the noun tags the core distinguishes.
func universalPOS(tag string) string {
	switch tag {
	case "NNP", "NNPS":
		return driven.POSProperNoun
	case "NN", "NNS":
		return driven.POSNoun
	default:
		return driven.POSOther
	}
}

func isNounTag(tag string) bool {
	return strings.HasPrefix(tag, "NN")
}

// isModifierTag reports tags that may precede the nouns of a base noun phrase.
func isModifierTag(tag string) bool {
	switch tag {
	case "DT", "PDT", "PRP$", "JJ", "JJR", "JJS", "CD", "VBN", "VBG":
		return true
	default:
		return false
	}
}

// nounPhrases chunks tokens with the pattern (modifier)* (noun)+.
// The last noun of each phrase is its root.
func (t *Tagger) nounPhrases(tokens []ptbToken) []driven.NounPhrase {
	var phrases []driven.NounPhrase
	start, nouns := -1, 0

	flush := func(end int) {
		if start >= 0 && nouns > 0 {
			words := make([]string, 0, end-start)
			for _, tok := range tokens[start:end] {
				words = append(words, tok.text)
			}
			root := tokens[end-1]
			phrases = append(phrases, driven.NounPhrase{
				Text: strings.Join(words, " "),
				Root: t.token(root.text, root.tag),
			})
		}
		start, nouns = -1, 0
	}

	for i, tok := range tokens {
		switch {
		case isNounTag(tok.tag):
			if start < 0 {
				start = i
			}
			nouns++
		case isModifierTag(tok.tag):
			if nouns > 0 {
				flush(i)
			}
			if start < 0 {
				start = i
			}
		default:
			flush(i)
		}
	}
	flush(len(tokens))

	return phrases
}

// defaultStopwords is a common English stop-word list.
func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "about", "above", "after", "again", "against", "all", "almost", "also", "although",
		"am", "among", "an", "and", "another", "any", "are", "as", "at", "be", "because", "been",
		"before", "being", "below", "between", "both", "but", "by", "can", "could", "did", "do",
		"does", "doing", "done", "down", "during", "each", "either", "else", "enough", "etc",
		"even", "ever", "every", "few", "first", "for", "from", "further", "had", "has", "have",
		"having", "he", "her", "here", "hers", "herself", "him", "himself", "his", "how",
		"however", "i", "if", "in", "into", "is", "it", "its", "itself", "just", "last", "least",
		"less", "made", "make", "many", "may", "me", "might", "more", "most", "much", "must", "my",
		"myself", "neither", "no", "nor", "not", "nothing", "now", "of", "off", "often", "on",
		"once", "one", "only", "or", "other", "others", "our", "ours", "ourselves", "out", "over",
		"own", "part", "per", "perhaps", "quite", "rather", "really", "same", "several", "she",
		"should", "since", "so", "some", "something", "still", "such", "than", "that", "the",
		"their", "theirs", "them", "themselves", "then", "there", "these", "they", "this",
		"those", "though", "through", "thus", "to", "together", "too", "toward", "two", "under",
		"until", "up", "upon", "us", "used", "using", "very", "via", "was", "we", "well", "were",
		"what", "whatever", "when", "where", "whether", "which", "while", "who", "whole", "whom",
		"whose", "why", "will", "with", "within", "without", "would", "yet", "you", "your",
		"yours", "yourself", "yourselves",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
