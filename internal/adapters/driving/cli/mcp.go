package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sheetrows/internal/adapters/driving/mcp"
	"github.com/custodia-labs/sheetrows/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can read and
edit spreadsheet rows.

By default, the server communicates over stdio using JSON-RPC. Use --port
to start an HTTP server instead, for the MCP Inspector or remote access.

Examples:
  # Stdio mode (default)
  sheetrows mcp serve

  # HTTP mode
  sheetrows mcp serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "sheetrows": {
        "command": "/path/to/sheetrows",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if err := requireSheetService(); err != nil {
		return err
	}

	ports := &mcp.Ports{
		Sheet:    sheetService,
		Journal:  journalService,
		Settings: settingsService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	// Pick up a changed default spreadsheet without a restart.
	if w, ok := configStore.(configWatcher); ok {
		if err := w.Watch(cmd.Context(), func(err error) {
			if err != nil {
				logger.Warn("Reloading config: %v", err)
			}
		}); err != nil {
			logger.Debug("Config watcher unavailable: %v", err)
		}
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
