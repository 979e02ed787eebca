// ABOUTME: Fetch subcommand
// ABOUTME: Runs the pipeline once and prints the payload, or raw rows in debug mode
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	fetchDebug  bool
	fetchPretty bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the sheets and print the payload as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext(cmd.Context())
		defer stop()

		p, _, cleanup, err := newPipeline(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		var out any
		if fetchDebug {
			out, err = p.FetchRaw(ctx)
		} else {
			out, err = p.Run(ctx)
		}
		if err != nil {
			return err
		}

		pretty := fetchPretty
		if !cmd.Flags().Changed("pretty") {
			pretty = isTerminal(cmd.OutOrStdout())
		}
		return writeJSON(cmd.OutOrStdout(), out, pretty)
	},
}

func init() {
	fetchCmd.Flags().BoolVar(&fetchDebug, "debug", false, "print raw rows from each source's debug range")
	fetchCmd.Flags().BoolVar(&fetchPretty, "pretty", false, "indent output (default when stdout is a terminal)")
	rootCmd.AddCommand(fetchCmd)
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
