package services

import (
	"fmt"
	"os"

	"github.com/0M-3/synaptext/internal/core/domain"
	"github.com/0M-3/synaptext/internal/core/ports/driven"
	"github.com/0M-3/synaptext/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider       = "llm.provider"
	keyLLMModel          = "llm.model"
	keyLLMBaseURL        = "llm.base_url"
	keyLLMAPIKey         = "llm.api_key"
	keyLLMRequestsPerSec = "llm.requests_per_second"
	keyChunkSize         = "chunker.chunk_size"
	keyTermLimit         = "terms.limit"
	keyServerPort        = "server.port"
	keyAllowedOrigins    = "server.allowed_origins"
)

// apiKeyEnv names the environment variable that supplies each provider's key
// when none is stored in the config file.
//
//nolint:gosec // G101: environment variable names, not credentials.
var apiKeyEnv = map[domain.AIProvider]string{
	domain.AIProviderGemini: "GEMINI_API_KEY",
	domain.AIProviderOpenAI: "OPENAI_API_KEY",
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
		lookupEnv:   os.LookupEnv,
	}
}

// Get retrieves current application settings.
// A provider API key missing from the config file is read from the environment.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	provider := s.getProvider(keyLLMProvider, defaults.LLM.Provider)
	model := s.configStore.GetString(keyLLMModel)
	if model == "" {
		model = domain.DefaultLLMModels()[provider]
	}

	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider:          provider,
			Model:             model,
			BaseURL:           s.configStore.GetString(keyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:            s.apiKey(provider),
			RequestsPerSecond: s.configStore.GetFloat(keyLLMRequestsPerSec),
		},
		Pipeline: defaults.Pipeline,
		Terms: domain.TermSettings{
			Limit: s.getInt(keyTermLimit, defaults.Terms.Limit),
		},
		Server: domain.ServerSettings{
			Port:           s.getInt(keyServerPort, defaults.Server.Port),
			AllowedOrigins: s.getStringSlice(keyAllowedOrigins, defaults.Server.AllowedOrigins),
		},
	}
	settings.Pipeline.ProcessorConfigs["chunker"]["chunk_size"] = s.getInt(keyChunkSize, domain.DefaultChunkSize)

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(keyLLMProvider, settings.LLM.Provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, settings.LLM.Model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(keyLLMBaseURL, settings.LLM.BaseURL); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	if settings.LLM.APIKey != "" && settings.LLM.APIKey != s.envAPIKey(settings.LLM.Provider) {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}
	if settings.LLM.RequestsPerSecond > 0 {
		if err := s.configStore.Set(keyLLMRequestsPerSec, settings.LLM.RequestsPerSecond); err != nil {
			return fmt.Errorf("save llm requests_per_second: %w", err)
		}
	}

	chunkSize := domain.DefaultChunkSize
	if cfg := settings.Pipeline.GetProcessorConfig("chunker"); cfg != nil {
		if v, ok := cfg["chunk_size"].(int); ok && v > 0 {
			chunkSize = v
		}
	}
	if err := s.configStore.Set(keyChunkSize, chunkSize); err != nil {
		return fmt.Errorf("save chunk size: %w", err)
	}
	if err := s.configStore.Set(keyTermLimit, settings.Terms.Limit); err != nil {
		return fmt.Errorf("save term limit: %w", err)
	}
	if err := s.configStore.Set(keyServerPort, settings.Server.Port); err != nil {
		return fmt.Errorf("save server port: %w", err)
	}
	if err := s.configStore.Set(keyAllowedOrigins, settings.Server.AllowedOrigins); err != nil {
		return fmt.Errorf("save allowed origins: %w", err)
	}

	return nil
}

// SetLLMProvider configures the LLM provider.
// An empty apiKey is accepted when the provider's environment variable is set.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: invalid LLM provider: %s", domain.ErrInvalidInput, provider)
	}

	if apiKey == "" {
		apiKey = s.envAPIKey(provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("%w: API key required for %s", domain.ErrInvalidInput, provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else {
		settings.LLM.Model = domain.DefaultLLMModels()[provider]
	}

	if provider.IsLocal() {
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = "http://localhost:11434"
		}
	} else {
		settings.LLM.BaseURL = ""
	}

	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// SetChunkSize configures the chunker's maximum segment length in runes.
func (s *SettingsService) SetChunkSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrInvalidInput, size)
	}
	if err := s.configStore.Set(keyChunkSize, size); err != nil {
		return fmt.Errorf("save chunk size: %w", err)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) apiKey(provider domain.AIProvider) string {
	if key := s.configStore.GetString(keyLLMAPIKey); key != "" {
		return key
	}
	return s.envAPIKey(provider)
}

func (s *SettingsService) envAPIKey(provider domain.AIProvider) string {
	name, ok := apiKeyEnv[provider]
	if !ok {
		return ""
	}
	val, _ := s.lookupEnv(name)
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	val := s.configStore.GetStringSlice(key)
	if len(val) == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
