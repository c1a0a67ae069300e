package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/0M-3/synaptext/internal/connectors/filesystem"
	"github.com/0M-3/synaptext/internal/core/domain"
)

var (
	analyzeFormat string
	analyzeTop    int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file.pdf]",
	Short: "Build an entity graph without storing anything",
	Long: `Split a PDF into paragraphs, find named entities in each paragraph
and rank them by degree centrality. Nothing is written to the database.

Without --format the most central topics are listed.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "", "output format: json or yaml")
	analyzeCmd.Flags().IntVarP(&analyzeTop, "top", "n", 20, "number of topics to list")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	path := filesystem.ResolvePath(args[0])
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	analysis, err := analysisService.Analyze(cmd.Context(), filepath.Base(path), f)
	if err != nil {
		return fmt.Errorf("failed to analyze: %w", err)
	}

	if analyzeFormat != "" {
		return writeStructured(cmd, analyzeFormat, analysis)
	}

	printTopics(cmd, analysis.Graph, analyzeTop)
	return nil
}

func printTopics(cmd *cobra.Command, graph *domain.CentralityGraph, top int) {
	topics := make([]domain.GraphNode, 0, len(graph.Nodes))
	chunks := 0
	for i := range graph.Nodes {
		if graph.Nodes[i].Type == domain.NodeTypeTopic {
			topics = append(topics, graph.Nodes[i])
		} else {
			chunks++
		}
	}

	if len(topics) == 0 {
		cmd.Println("No entities found")
		return
	}

	sort.SliceStable(topics, func(i, j int) bool {
		return topics[i].Centrality > topics[j].Centrality
	})
	if top > 0 && len(topics) > top {
		topics = topics[:top]
	}

	cmd.Printf("Paragraphs: %d  Links: %d\n\n", chunks, len(graph.Links))
	cmd.Println("Topics by centrality:")
	for i := range topics {
		cmd.Printf("  %.4f  %s\n", topics[i].Centrality, topics[i].Label)
	}
}
