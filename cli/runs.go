// ABOUTME: Runs subcommand
// ABOUTME: Prints recent pipeline runs and the latest state of each source
package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/harperreed/stoneledger/db"
	"github.com/harperreed/stoneledger/models"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent fetch runs and source health",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openRunLog()
		if err != nil {
			return err
		}
		if database == nil {
			return fmt.Errorf("run log disabled: set database.path")
		}
		defer func() { _ = database.Close() }()

		runs, err := db.ListRuns(database, runsLimit)
		if err != nil {
			return err
		}
		states, err := db.GetAllSourceStates(database)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(runs) == 0 {
			_, _ = fmt.Fprintln(out, "No runs recorded")
			return nil
		}
		if err := writeRuns(out, runs); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out)
		return writeSourceStates(out, states)
	},
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "number of runs to show")
	rootCmd.AddCommand(runsCmd)
}

func writeRuns(out io.Writer, runs []models.FetchRun) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "STARTED\tMODE\tSTATUS\tTOOK\tCOMPANIES\tORDERS\tCONTACTS\tNOTES\tERROR")
	for _, r := range runs {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			r.StartedAt.Local().Format(time.DateTime), r.Mode, r.Status, r.Duration().Round(time.Millisecond),
			r.Companies, r.Orders, r.Contacts, r.Notes, r.Error)
	}
	return w.Flush()
}

func writeSourceStates(out io.Writer, states []models.SourceState) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SOURCE\tRANGE\tSTATUS\tLAST SUCCESS\tERROR")
	for _, s := range states {
		lastSuccess := "never"
		if s.LastSuccessAt != nil {
			lastSuccess = s.LastSuccessAt.Local().Format(time.DateTime)
		}
		errMsg := ""
		if s.ErrorMessage != nil {
			errMsg = *s.ErrorMessage
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.Entity, s.Range, s.Status, lastSuccess, errMsg)
	}
	return w.Flush()
}
