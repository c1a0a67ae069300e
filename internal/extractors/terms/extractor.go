// Package terms extracts salient terms from document text.
//
// Two ranked lists are produced from one linguistic analysis: single-token
// proper nouns in their original casing, and lower-cased noun phrases that
// pass a validity filter. Both are counted, deduplicated and truncated.
package terms

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/0M-3/synaptext/internal/core/domain"
	"github.com/0M-3/synaptext/internal/core/ports/driven"
	"github.com/0M-3/synaptext/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.TermExtractor = (*Extractor)(nil)

// DefaultLimit caps each ranked list.
const DefaultLimit = 50

// noiseWords are document furniture words treated as stop words.
var noiseWords = []string{
	"page", "section", "author", "figure", "table", "http", "proceedings", "introduction",
}

// NoiseWords returns the document furniture words added to the stop-word vocabulary.
func NoiseWords() []string {
	return append([]string(nil), noiseWords...)
}

var (
	// listMarker matches enumeration markers such as "(a)".
	listMarker = regexp.MustCompile(`\([a-z]\)`)

	// mathSymbols appear in formulas rather than prose.
	mathSymbols = "×+=><±"
)

// minLetters is the fewest ASCII letters a valid phrase may contain.
const minLetters = 3

// IsValidPhrase rejects phrases that look like list markers, formulas or numbers.
func IsValidPhrase(phrase string) bool {
	if listMarker.MatchString(strings.ToLower(phrase)) {
		return false
	}
	if strings.ContainsAny(phrase, mathSymbols) {
		return false
	}

	letters := 0
	for i := 0; i < len(phrase); i++ {
		c := phrase[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			letters++
		}
	}
	return letters >= minLetters
}

// Extractor ranks proper nouns and noun phrases found by a Tagger.
type Extractor struct {
	tagger driven.Tagger
	limit  int
	noise  map[string]bool
}

// Option configures the extractor.
type Option func(*Extractor)

// WithLimit sets the maximum length of each ranked list.
func WithLimit(limit int) Option {
	return func(e *Extractor) {
		if limit > 0 {
			e.limit = limit
		}
	}
}

// New creates an extractor backed by the given tagger.
func New(tagger driven.Tagger, opts ...Option) *Extractor {
	e := &Extractor{
		tagger: tagger,
		limit:  DefaultLimit,
		noise:  make(map[string]bool, len(noiseWords)),
	}
	for _, w := range noiseWords {
		e.noise[w] = true
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract analyses text and returns both ranked term lists.
func (e *Extractor) Extract(ctx context.Context, text string) (*domain.Terms, error) {
	tagged, err := e.tagger.Tag(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("tagging text: %w", err)
	}

	var properNouns []string
	for _, tok := range tagged.Tokens {
		if tok.POS != driven.POSProperNoun {
			continue
		}
		word := strings.TrimSpace(tok.Text)
		if tok.IsStop || e.isStopWord(word) || utf8.RuneCountInString(word) <= 2 {
			continue
		}
		properNouns = append(properNouns, word)
	}

	var phrases []string
	for _, np := range tagged.NounPhrases {
		phrase := strings.ToLower(strings.Join(strings.Fields(np.Text), " "))
		if !IsValidPhrase(phrase) {
			continue
		}
		if e.isStopWord(np.Root.Text) {
			continue
		}
		if utf8.RuneCountInString(np.Text) <= 3 {
			continue
		}
		phrases = append(phrases, phrase)
	}

	terms := &domain.Terms{
		ProperNouns: rank(properNouns, e.limit),
		Phrases:     rank(phrases, e.limit),
	}
	logger.Debug("terms: %d tokens, %d noun phrases -> %d proper nouns, %d phrases",
		len(tagged.Tokens), len(tagged.NounPhrases), len(terms.ProperNouns), len(terms.Phrases))
	return terms, nil
}

func (e *Extractor) isStopWord(word string) bool {
	return e.noise[strings.ToLower(word)] || e.tagger.IsStopWord(word)
}

// rank counts occurrences and returns the most frequent terms.
// Ties keep first-seen order.
func rank(items []string, limit int) []domain.TermCount {
	counts := make(map[string]int, len(items))
	order := make([]string, 0, len(items))
	for _, item := range items {
		if counts[item] == 0 {
			order = append(order, item)
		}
		counts[item]++
	}

	ranked := make([]domain.TermCount, len(order))
	for i, term := range order {
		ranked[i] = domain.TermCount{Term: term, Count: counts[term]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
