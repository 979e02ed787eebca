// ABOUTME: TUI subcommand
// ABOUTME: Starts the interactive terminal browser
package cli

import (
	"github.com/spf13/cobra"

	"github.com/harperreed/stoneledger/db"
	"github.com/harperreed/stoneledger/models"
	"github.com/harperreed/stoneledger/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse companies, contacts and fetch runs in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext(cmd.Context())
		defer stop()

		p, database, cleanup, err := newPipeline(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		var lister tui.RunLister
		if database != nil {
			lister = func(limit int) ([]models.FetchRun, error) {
				return db.ListRuns(database, limit)
			}
		}
		return tui.Run(ctx, p, lister)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
