package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export [source-id]",
	Short: "Export keyword notes as a ZIP",
	Long: `Write one Markdown note per keyword into a ZIP archive. Mentions of
other keywords inside each note are wrapped as [[wiki links]], so the
archive can be opened as an Obsidian vault.

Summaries that were not generated yet are generated first.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default source_<id>_summaries.zip)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportService == nil {
		return errors.New("export service not configured")
	}

	archive, err := exportService.Export(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}

	path := exportOutput
	if path == "" {
		path = archive.Filename
	}
	if err := os.WriteFile(path, archive.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}

	cmd.Printf("Wrote %d notes to %s\n", archive.Entries, path)
	return nil
}
