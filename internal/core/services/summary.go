package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/0M-3/synaptext/internal/core/domain"
	"github.com/0M-3/synaptext/internal/core/ports/driven"
	"github.com/0M-3/synaptext/internal/core/ports/driving"
	"github.com/0M-3/synaptext/internal/logger"
)

// Ensure SummaryService implements the interface.
var _ driving.SummaryService = (*SummaryService)(nil)

// chunkSeparator sits between chunks in the summary prompt.
const chunkSeparator = "\n---\n"

// fallbackSummaryInstruction is used when no PromptStore is configured.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
const fallbackSummaryInstruction = `Role: Objective Data Analyst.
Task: Summarize the significance of a specific [KEYWORD] based solely on the provided [CHUNKS].
Strict Constraints: No greetings, no salutations, no conversational filler. Only output the summary.
If keyword is missing, say 'Keyword not found in context.'
Ensure the summary is made in Markdown format beginning the summary with the Keyword as the heading.`

// SummaryService returns cached keyword summaries, generating missing ones once.
type SummaryService struct {
	store       driven.KnowledgeStore
	llm         driven.LLMService
	promptStore driven.PromptStore
	now         func() time.Time
}

// NewSummaryService creates a new summary service.
// llm may be nil, in which case uncached summaries degrade to an error payload.
func NewSummaryService(store driven.KnowledgeStore, llm driven.LLMService, promptStore driven.PromptStore) *SummaryService {
	return &SummaryService{
		store:       store,
		llm:         llm,
		promptStore: promptStore,
		now:         time.Now,
	}
}

// GetSummary returns the summary of one keyword of a source.
//
// A cached summary is returned without calling the model. A failed generation
// yields an "Error: ..." payload that is not cached, so the next request retries.
func (s *SummaryService) GetSummary(ctx context.Context, sourceID, keywordID string) (*domain.KeywordSummary, error) {
	keyword, err := s.store.KeywordStore().GetKeyword(ctx, sourceID, keywordID)
	if err != nil {
		return nil, fmt.Errorf("get keyword: %w", err)
	}

	cached, err := s.store.SummaryStore().GetSummary(ctx, sourceID, keywordID)
	switch {
	case err == nil:
		logger.Debug("summary cache hit for %q", keyword.Keyword)
		return &domain.KeywordSummary{Keyword: keyword.Keyword, Summary: cached.Summary, Cached: true}, nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("get summary: %w", err)
	}

	chunks, err := s.store.JunctionStore().GetLinkedChunks(ctx, sourceID, keywordID)
	if err != nil {
		return nil, fmt.Errorf("get linked chunks: %w", err)
	}

	text, err := s.generate(ctx, keyword.Keyword, chunks)
	if err != nil {
		logger.Warn("summary generation for %q failed: %v", keyword.Keyword, err)
		return &domain.KeywordSummary{Keyword: keyword.Keyword, Summary: domain.SummaryErrorPrefix + err.Error()}, nil
	}

	summary := &domain.Summary{
		ID:        uuid.New().String(),
		SourceID:  sourceID,
		KeywordID: keywordID,
		Summary:   text,
		CreatedAt: s.now(),
	}
	err = s.store.SummaryStore().SaveSummary(ctx, summary)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrAlreadyExists):
		// A concurrent request stored one first; serve that one.
		stored, getErr := s.store.SummaryStore().GetSummary(ctx, sourceID, keywordID)
		if getErr != nil {
			return nil, fmt.Errorf("get summary: %w", getErr)
		}
		return &domain.KeywordSummary{Keyword: keyword.Keyword, Summary: stored.Summary, Cached: true}, nil
	default:
		return nil, fmt.Errorf("save summary: %w", err)
	}

	return &domain.KeywordSummary{Keyword: keyword.Keyword, Summary: text}, nil
}

func (s *SummaryService) generate(ctx context.Context, keyword string, chunks []domain.Chunk) (string, error) {
	if s.llm == nil {
		return "", domain.ErrLLMUnavailable
	}

	logger.Debug("generating summary for %q from %d chunks with %s", keyword, len(chunks), s.llm.ModelName())
	return s.llm.Generate(ctx, summaryPrompt(keyword, chunks), driven.GenerateOptions{
		SystemInstruction: s.instruction(),
		Temperature:       0,
	})
}

func (s *SummaryService) instruction() string {
	if s.promptStore == nil {
		return fallbackSummaryInstruction
	}
	prompt, err := s.promptStore.Load(driven.PromptKeywordSummary)
	if err != nil {
		return fallbackSummaryInstruction
	}
	return prompt
}

// summaryPrompt formats the user turn of a summary request.
func summaryPrompt(keyword string, chunks []domain.Chunk) string {
	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Text
	}
	return "KEYWORD: " + keyword + "\n\nCHUNKS:\n" + strings.Join(texts, chunkSeparator)
}
