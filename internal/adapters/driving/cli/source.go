package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Manage ingested sources",
	Long:  `List, inspect and delete ingested PDF sources.`,
}

var sourceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all sources",
	RunE:  runSourceList,
}

var sourceGetCmd = &cobra.Command{
	Use:   "get [source-id]",
	Short: "Show source details",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourceGet,
}

var sourceDeleteCmd = &cobra.Command{
	Use:   "delete [source-id]",
	Short: "Delete a source with its chunks, keywords and summaries",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourceDelete,
}

var sourceChunksCmd = &cobra.Command{
	Use:   "chunks [source-id]",
	Short: "List the chunks of a source",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourceChunks,
}

var sourceKeywordsCmd = &cobra.Command{
	Use:   "keywords [source-id]",
	Short: "List the keywords of a source",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourceKeywords,
}

// chunkPreviewLen caps chunk text in listings.
const chunkPreviewLen = 80

func init() {
	sourceCmd.AddCommand(sourceListCmd)
	sourceCmd.AddCommand(sourceGetCmd)
	sourceCmd.AddCommand(sourceDeleteCmd)
	sourceCmd.AddCommand(sourceChunksCmd)
	sourceCmd.AddCommand(sourceKeywordsCmd)
	rootCmd.AddCommand(sourceCmd)
}

func runSourceList(cmd *cobra.Command, _ []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	sources, err := sourceService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}

	if len(sources) == 0 {
		cmd.Println("No sources found. Run 'synaptext ingest <file.pdf>' to add one.")
		return nil
	}

	cmd.Println("Sources:")
	cmd.Println()
	for i := range sources {
		cmd.Printf("  %s\n", sources[i].ID)
		cmd.Printf("    File:    %s\n", sources[i].Filename)
		cmd.Printf("    Created: %s\n", sources[i].CreatedAt.Format("2006-01-02 15:04:05"))
		cmd.Println()
	}

	cmd.Printf("Total: %d sources\n", len(sources))
	return nil
}

func runSourceGet(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	ctx := cmd.Context()
	source, err := sourceService.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get source: %w", err)
	}

	chunks, err := sourceService.ListChunks(ctx, source.ID)
	if err != nil {
		return fmt.Errorf("failed to list chunks: %w", err)
	}
	keywords, err := sourceService.ListKeywords(ctx, source.ID)
	if err != nil {
		return fmt.Errorf("failed to list keywords: %w", err)
	}

	cmd.Printf("Source: %s\n\n", source.ID)
	cmd.Printf("  Title:    %s\n", source.Title())
	cmd.Printf("  File:     %s\n", source.Filename)
	cmd.Printf("  Created:  %s\n", source.CreatedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Chunks:   %d\n", len(chunks))
	cmd.Printf("  Keywords: %d\n", len(keywords))
	return nil
}

func runSourceDelete(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	if err := sourceService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete source: %w", err)
	}

	cmd.Printf("Deleted source %s\n", args[0])
	return nil
}

func runSourceChunks(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	chunks, err := sourceService.ListChunks(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to list chunks: %w", err)
	}

	if len(chunks) == 0 {
		cmd.Printf("No chunks found for source: %s\n", args[0])
		return nil
	}

	for i := range chunks {
		cmd.Printf("  %s  %s\n", chunks[i].ID, truncate(chunks[i].Text, chunkPreviewLen))
	}
	cmd.Printf("\nTotal: %d chunks\n", len(chunks))
	return nil
}

func runSourceKeywords(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	keywords, err := sourceService.ListKeywords(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to list keywords: %w", err)
	}

	if len(keywords) == 0 {
		cmd.Printf("No keywords found for source: %s\n", args[0])
		return nil
	}

	for i := range keywords {
		cmd.Printf("  %s  %-30s %4d  %s\n", keywords[i].ID, keywords[i].Keyword, keywords[i].Count, keywords[i].Kind)
	}
	cmd.Printf("\nTotal: %d keywords\n", len(keywords))
	return nil
}
