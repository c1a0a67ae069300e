// Command synaptext turns PDF documents into linked keyword notes.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/0M-3/synaptext/internal/adapters/driven/ai"
	"github.com/0M-3/synaptext/internal/adapters/driven/config/file"
	"github.com/0M-3/synaptext/internal/adapters/driven/nlp"
	"github.com/0M-3/synaptext/internal/adapters/driven/storage/sqlite"
	"github.com/0M-3/synaptext/internal/adapters/driving/cli"
	"github.com/0M-3/synaptext/internal/core/ports/driven"
	"github.com/0M-3/synaptext/internal/core/services"
	"github.com/0M-3/synaptext/internal/extractors/terms"
	"github.com/0M-3/synaptext/internal/logger"
	"github.com/0M-3/synaptext/internal/normalisers/pdf"
	"github.com/0M-3/synaptext/internal/postprocessors"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// dataDirEnv overrides the database directory when --data-dir is not given.
const dataDirEnv = "SYNAPTEXT_DATA_DIR"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(bootstrap); err != nil {
		os.Exit(1)
	}
}

// bootstrap wires adapters into services after flags are parsed.
func bootstrap(opts cli.Options) (*cli.Services, func() error, error) {
	loadDotEnv()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return nil, nil, fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("load settings: %w", err)
	}

	store, err := sqlite.NewStore(resolveDataDir(opts.DataDir))
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("database: %s", store.Path())

	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)
	chunker, err := postprocessors.BuildFromConfig(registry, settings.Pipeline)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("build chunker: %w", err)
	}

	normaliser := pdf.New()
	extractor := terms.New(
		nlp.NewTagger(nlp.WithStopWords(terms.NoiseWords()...)),
		terms.WithLimit(settings.Terms.Limit),
	)

	llm, err := ai.CreateLLMService(&settings.LLM)
	if err != nil {
		logger.Warn("LLM unavailable, summaries will report errors: %v", err)
		llm = nil
	}

	summaryService := services.NewSummaryService(store, llm, openPromptStore())

	svc := &cli.Services{
		Ingest:   services.NewIngestService(store, normaliser, chunker, extractor),
		Analysis: services.NewAnalysisService(normaliser, nlp.NewTagger(nlp.WithEntities(true))),
		Source:   services.NewSourceService(store),
		Graph:    services.NewGraphService(store),
		Summary:  summaryService,
		Export:   services.NewExportService(store, summaryService),
		Settings: settingsService,
	}

	cleanup := func() error {
		var errs []error
		if llm != nil {
			errs = append(errs, llm.Close())
		}
		errs = append(errs, store.Close())
		return errors.Join(errs...)
	}

	return svc, cleanup, nil
}

// loadDotEnv reads .env from the working directory. A missing file is fine.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("failed to load .env: %v", err)
	}
}

// resolveDataDir picks the flag value, then the environment, then the
// store default.
func resolveDataDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(dataDirEnv)
}

func openPromptStore() driven.PromptStore {
	prompts, err := file.NewPromptStore("")
	if err != nil {
		logger.Warn("prompt store unavailable, using built-in prompt: %v", err)
		return nil
	}
	return prompts
}
