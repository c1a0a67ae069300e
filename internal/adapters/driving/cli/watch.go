package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/0M-3/synaptext/internal/connectors/filesystem"
)

var (
	watchExisting bool
	watchSettle   time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Ingest PDFs as they appear in a directory",
	Long: `Watch a directory and ingest every PDF that is created or rewritten
in it. A file is ingested once it has not changed for the settle period.

Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchExisting, "existing", false, "ingest PDFs already in the directory first")
	watchCmd.Flags().DurationVar(&watchSettle, "settle", filesystem.DefaultSettle, "quiet period before a file is ingested")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	dir := filesystem.ResolvePath(args[0])
	ctx := cmd.Context()

	if watchExisting {
		if err := ingestExisting(cmd, dir); err != nil {
			return err
		}
	}

	watcher := filesystem.New(dir)
	watcher.SetSettle(watchSettle)
	defer watcher.Close()

	paths, err := watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	cmd.Printf("Watching %s for PDFs (Ctrl+C to stop)\n", dir)
	for path := range paths {
		result, err := ingestFile(cmd, path)
		if err != nil {
			cmd.PrintErrf("Failed to ingest %s: %v\n", path, err)
			continue
		}
		printIngestResult(cmd, result)
	}
	return nil
}

func ingestExisting(cmd *cobra.Command, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.EqualFold(filepath.Ext(name), ".pdf") {
			continue
		}
		path := filepath.Join(dir, name)
		result, err := ingestFile(cmd, path)
		if err != nil {
			cmd.PrintErrf("Failed to ingest %s: %v\n", path, err)
			continue
		}
		printIngestResult(cmd, result)
	}
	return nil
}
