package driven

import (
	"context"

	"github.com/0M-3/synaptext/internal/core/domain"
)

// LLMService provides language model text generation.
// This is an optional service - when nil, summaries degrade to an error payload.
//
// Implementations include:
//   - Google Gemini
//   - OpenAI (and OpenAI-compatible servers)
//   - Ollama (local models)
type LLMService interface {
	// Generate produces text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// SystemInstruction is sent as the system role before the prompt.
	SystemInstruction string

	// MaxTokens is the maximum number of tokens to generate. Zero means provider default.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}

// AIConfigValidator checks that an LLM configuration can reach its provider.
type AIConfigValidator interface {
	// ValidateLLM pings the configured provider. Unconfigured settings are not an error.
	ValidateLLM(config *domain.LLMSettings) error
}
