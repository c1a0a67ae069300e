// Package cli implements the synaptext command line on top of cobra.
package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/0M-3/synaptext/internal/core/ports/driving"
	"github.com/0M-3/synaptext/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Services wired by the bootstrap. Commands check for nil before use.
var (
	ingestService   driving.IngestService
	analysisService driving.AnalysisService
	sourceService   driving.SourceService
	graphService    driving.GraphService
	summaryService  driving.SummaryService
	exportService   driving.ExportService
	settingsService driving.SettingsService
)

// Global flags.
var (
	verbose bool
	dataDir string
)

// Services holds the driving ports the CLI dispatches to.
type Services struct {
	Ingest   driving.IngestService
	Analysis driving.AnalysisService
	Source   driving.SourceService
	Graph    driving.GraphService
	Summary  driving.SummaryService
	Export   driving.ExportService
	Settings driving.SettingsService
}

// Options are the global flag values handed to the bootstrap.
type Options struct {
	// DataDir overrides the database directory. Empty means the default.
	DataDir string

	// Verbose enables debug logging.
	Verbose bool
}

// Bootstrap builds services once global flags are parsed.
// The returned cleanup runs after the command finishes.
type Bootstrap func(opts Options) (*Services, func() error, error)

var (
	bootstrap Bootstrap
	cleanup   func() error
)

var rootCmd = &cobra.Command{
	Use:   "synaptext",
	Short: "Turn PDFs into linked keyword notes",
	Long: `SynapText ingests PDF documents, splits them into chunks, extracts
salient keywords and links each keyword to the chunks that mention it.

Keyword summaries are generated by an LLM on demand and can be exported
as a ZIP of cross-linked Markdown notes.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding the SynapText database")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices installs services directly, bypassing the bootstrap.
func SetServices(s *Services) {
	ingestService = s.Ingest
	analysisService = s.Analysis
	sourceService = s.Source
	graphService = s.Graph
	summaryService = s.Summary
	exportService = s.Export
	settingsService = s.Settings
}

// Execute runs the root command. boot may be nil when services were set
// with SetServices.
func Execute(boot Bootstrap) error {
	bootstrap = boot

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if cleanup != nil {
		if cerr := cleanup(); cerr != nil {
			err = errors.Join(err, cerr)
		}
		cleanup = nil
	}
	return err
}

func runBootstrap(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if bootstrap == nil {
		return nil
	}

	services, done, err := bootstrap(Options{DataDir: dataDir, Verbose: verbose})
	if err != nil {
		return err
	}
	SetServices(services)
	cleanup = done
	return nil
}
