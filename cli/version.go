package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "stoneledger version %s\n", appVersion)
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
