// ABOUTME: MCP server subcommand
// ABOUTME: Starts the MCP server on stdio for agent integration
package cli

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/harperreed/stoneledger/handlers"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server on stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext(cmd.Context())
		defer stop()

		p, _, cleanup, err := newPipeline(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		logger.Info("starting MCP server", "version", appVersion)
		server := handlers.NewServer(p, appVersion)
		return server.Run(ctx, &mcp.StdioTransport{})
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
