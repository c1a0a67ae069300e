package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	graphCentrality bool
	graphFormat     string
)

var graphCmd = &cobra.Command{
	Use:   "graph [source-id]",
	Short: "Print the keyword graph of a source",
	Long: `Print the chunks of a source and, for every keyword, the chunks it
occurs in. With --centrality the bipartite chunk/keyword graph is printed
with the degree centrality of every node.`,
	Args: cobra.ExactArgs(1),
	RunE: runGraph,
}

func init() {
	graphCmd.Flags().BoolVar(&graphCentrality, "centrality", false, "print the centrality graph")
	graphCmd.Flags().StringVarP(&graphFormat, "format", "f", formatJSON, "output format: json or yaml")
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, args []string) error {
	if graphService == nil {
		return errors.New("graph service not configured")
	}

	ctx := cmd.Context()
	if graphCentrality {
		graph, err := graphService.GetCentralityGraph(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to build graph: %w", err)
		}
		return writeStructured(cmd, graphFormat, graph)
	}

	graph, err := graphService.GetGraph(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to build graph: %w", err)
	}
	return writeStructured(cmd, graphFormat, graph)
}
