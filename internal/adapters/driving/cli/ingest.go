package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/0M-3/synaptext/internal/connectors/filesystem"
	"github.com/0M-3/synaptext/internal/core/domain"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file.pdf...]",
	Short: "Ingest PDF documents",
	Long: `Extract text from each PDF, split it into chunks, extract keywords
and link every keyword to the chunks that contain it.

Each file becomes one source. Arguments may be paths or file:// URIs.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	var failed int
	for _, arg := range args {
		result, err := ingestFile(cmd, filesystem.ResolvePath(arg))
		if err != nil {
			cmd.PrintErrf("Failed to ingest %s: %v\n", arg, err)
			failed++
			continue
		}
		printIngestResult(cmd, result)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to ingest", failed, len(args))
	}
	return nil
}

func ingestFile(cmd *cobra.Command, path string) (*domain.IngestResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ingestService.Ingest(cmd.Context(), filepath.Base(path), f)
}

func printIngestResult(cmd *cobra.Command, result *domain.IngestResult) {
	cmd.Printf("Ingested %s\n", result.Filename)
	cmd.Printf("  Source:    %s\n", result.SourceID)
	cmd.Printf("  Status:    %s\n", result.Status)
	cmd.Printf("  Pages:     %d\n", result.Pages)
	cmd.Printf("  Chunks:    %d\n", result.Chunks)
	cmd.Printf("  Keywords:  %d\n", result.Keywords)
	cmd.Printf("  Junctions: %d\n", result.Junctions)
}
