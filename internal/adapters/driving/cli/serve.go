package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0M-3/synaptext/internal/adapters/driving/httpapi"
	"github.com/0M-3/synaptext/internal/core/domain"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the REST API used by the SynapText web front-end.

The port and CORS origins default to the server section of the config.

Examples:
  synaptext serve
  synaptext serve --port 9000`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use config, default 8000)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	server, err := newHTTPServer()
	if err != nil {
		return err
	}

	if port <= 0 {
		port = serverSettings().Port
	}

	addr := fmt.Sprintf(":%d", port)
	fmt.Fprintf(cmd.OutOrStdout(), "HTTP API listening on http://localhost%s\n", addr)
	return server.Run(cmd.Context(), addr)
}

func newHTTPServer() (*httpapi.Server, error) {
	ports := &httpapi.Ports{
		Ingest:   ingestService,
		Analysis: analysisService,
		Source:   sourceService,
		Graph:    graphService,
		Summary:  summaryService,
		Export:   exportService,
	}

	return httpapi.NewServer(ports, httpapi.Config{
		AllowedOrigins: serverSettings().AllowedOrigins,
	})
}

// serverSettings returns the configured server section, or defaults.
func serverSettings() domain.ServerSettings {
	defaults := domain.DefaultAppSettings().Server
	if settingsService == nil {
		return defaults
	}
	settings, err := settingsService.Get()
	if err != nil {
		return defaults
	}
	if settings.Server.Port <= 0 {
		settings.Server.Port = defaults.Port
	}
	return settings.Server
}
