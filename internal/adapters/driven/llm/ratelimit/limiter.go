// Package ratelimit throttles calls to an LLM service.
package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/0M-3/synaptext/internal/core/domain"
	"github.com/0M-3/synaptext/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// LLMService wraps another LLMService and limits the rate of Generate calls.
type LLMService struct {
	next    driven.LLMService
	limiter *rate.Limiter
}

// Wrap returns svc throttled to rps requests per second with a burst of one.
// A non-positive rps returns svc unchanged.
func Wrap(svc driven.LLMService, rps float64) driven.LLMService {
	if svc == nil || rps <= 0 {
		return svc
	}
	return &LLMService{
		next:    svc,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Generate waits for a token then delegates.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrRateLimited, err)
	}
	return s.next.Generate(ctx, prompt, opts)
}

// ModelName returns the wrapped model name.
func (s *LLMService) ModelName() string {
	return s.next.ModelName()
}

// Ping is not throttled.
func (s *LLMService) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

// Close closes the wrapped service.
func (s *LLMService) Close() error {
	return s.next.Close()
}
