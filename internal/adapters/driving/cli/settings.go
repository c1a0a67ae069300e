package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/0M-3/synaptext/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the LLM provider, chunker and server options.

Settings are stored in ~/.synaptext/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	Long: `Configure the LLM provider used to summarise keywords.

Without --provider an interactive prompt is shown. API keys may be left
empty when GEMINI_API_KEY or OPENAI_API_KEY is set in the environment.

Examples:
  synaptext settings llm
  synaptext settings llm --provider ollama --model llama3.2
  synaptext settings llm --provider gemini --api-key $KEY`,
	RunE: runSettingsLLM,
}

var settingsChunkerCmd = &cobra.Command{
	Use:   "chunker [size]",
	Short: "Set the maximum chunk length",
	Long:  `Set the maximum chunk length in characters used for new ingestions.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsChunker,
}

var (
	llmProvider   string
	llmModel      string
	llmAPIKey     string
	llmNoValidate bool
)

func init() {
	settingsLLMCmd.Flags().StringVar(&llmProvider, "provider", "", "provider: gemini, openai or ollama")
	settingsLLMCmd.Flags().StringVar(&llmModel, "model", "", "model name (default depends on provider)")
	settingsLLMCmd.Flags().StringVar(&llmAPIKey, "api-key", "", "API key for cloud providers")
	settingsLLMCmd.Flags().BoolVar(&llmNoValidate, "no-validate", false, "skip pinging the provider")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsChunkerCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.LLM.ModelOrDefault())
	if settings.LLM.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	if settings.LLM.Provider.RequiresAPIKey() {
		if settings.LLM.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.LLM.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	if settings.LLM.RequestsPerSecond > 0 {
		cmd.Printf("  Rate limit: %g requests/s\n", settings.LLM.RequestsPerSecond)
	}
	status := "configured"
	if !settings.LLM.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Chunker]")
	if cfg := settings.Pipeline.GetProcessorConfig("chunker"); cfg != nil {
		cmd.Printf("  Chunk size: %v\n", cfg["chunk_size"])
	}
	cmd.Println()

	cmd.Println("[Terms]")
	cmd.Printf("  Limit: %d\n", settings.Terms.Limit)
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Port: %d\n", settings.Server.Port)
	cmd.Printf("  Allowed origins: %s\n", strings.Join(settings.Server.AllowedOrigins, ", "))
	cmd.Println()

	if !settings.LLM.IsConfigured() {
		cmd.Println("Summaries are unavailable until an LLM is configured.")
		cmd.Println("Run 'synaptext settings llm' to configure one.")
	}

	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if llmProvider != "" {
		provider := domain.AIProvider(strings.ToLower(llmProvider))
		return applyLLMProvider(cmd, provider, llmModel, llmAPIKey)
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	return configureLLMProvider(cmd, reader)
}

func runSettingsChunker(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	size, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("chunk size must be a number: %w", err)
	}
	if err := settingsService.SetChunkSize(size); err != nil {
		return fmt.Errorf("failed to set chunk size: %w", err)
	}

	cmd.Printf("Chunk size set to %d\n", size)
	return nil
}

func configureLLMProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select LLM Provider")
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	selectedProvider := providers[idx-1]

	defaultModel := domain.DefaultLLMModels()[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if selectedProvider.RequiresAPIKey() {
		cmd.Print("Enter API key (empty to use environment): ")
		apiKey = readPassword(reader)
		cmd.Println()
	}

	return applyLLMProvider(cmd, selectedProvider, model, apiKey)
}

func applyLLMProvider(cmd *cobra.Command, provider domain.AIProvider, model, apiKey string) error {
	if err := settingsService.SetLLMProvider(provider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}

	if !llmNoValidate {
		cmd.Print("Validating configuration... ")
		if err := settingsService.ValidateLLMConfig(); err != nil {
			cmd.Printf("FAILED: %v\n", err)
			return fmt.Errorf("LLM configuration validation failed: %w", err)
		}
		cmd.Println("OK")
	}

	if model == "" {
		model = domain.DefaultLLMModels()[provider]
	}
	cmd.Printf("LLM provider configured: %s (%s)\n", provider.Description(), model)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads a secret without echo when stdin is a terminal,
// otherwise it falls back to a plain line read.
func readPassword(reader *bufio.Reader) string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
