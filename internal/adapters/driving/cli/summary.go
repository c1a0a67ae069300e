package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0M-3/synaptext/internal/logger"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [source-id] [keyword-id]",
	Short: "Summarise a keyword",
	Long: `Print the Markdown summary of a keyword. The summary is generated by
the configured LLM on first request and cached afterwards.`,
	Args: cobra.ExactArgs(2),
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	if summaryService == nil {
		return errors.New("summary service not configured")
	}

	summary, err := summaryService.GetSummary(cmd.Context(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to get summary: %w", err)
	}

	logger.Debug("summary for %q cached=%t", summary.Keyword, summary.Cached)
	cmd.Printf("# %s\n\n", summary.Keyword)
	cmd.Println(summary.Summary)
	return nil
}
