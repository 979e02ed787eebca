// ABOUTME: Serve subcommand
// ABOUTME: Runs the web server with the sheets API and HTML dashboard
package cli

import (
	"github.com/spf13/cobra"

	"github.com/harperreed/stoneledger/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the sheets API and web dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext(cmd.Context())
		defer stop()

		p, _, cleanup, err := newPipeline(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		server, err := web.NewServer(p, logger)
		if err != nil {
			return err
		}

		addr := cfg.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}
		return server.Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8888)")
	rootCmd.AddCommand(serveCmd)
}
