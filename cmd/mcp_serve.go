package cmd

import (
	"github.com/chris-regnier/thankful/internal/mcptools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var mcpServeCmd = &cobra.Command{
	Use:   "mcp-serve",
	Short: "Run MCP server on stdio",
	Long: `Starts a Model Context Protocol (MCP) server that exposes the journal
over stdio transport.

Available tools:
  - get_entry: Read an entry with its date label, hint and inspiration
  - save_entry: Replace the entry for a date
  - share_entry: Compose the shareable sentence for a date
  - draw_prompt: Draw the next writing prompt
  - list_entries: List entries, newest first

Example MCP client config:
  {
    "mcpServers": {
      "thankful": {
        "command": "/path/to/thankful",
        "args": ["mcp-serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server := mcptools.New(store, strs,
			mcptools.WithClock(nowFunc),
			mcptools.WithLogger(logger),
			mcptools.WithVersion(Version),
		)
		defer server.Close()

		// stdout carries the protocol; logs go to stderr or the log file
		logger.Info("starting mcp server",
			zap.String("transport", "stdio"),
			zap.String("backend", appConfig.Storage),
			zap.String("data_dir", appConfig.DataDir))

		return server.Run(cmd.Context(), &mcp.StdioTransport{})
	},
}

func init() {
	rootCmd.AddCommand(mcpServeCmd)
}
