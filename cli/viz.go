// ABOUTME: Visualization subcommands
// ABOUTME: Prints the dashboard and renders company graphs with graphviz
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harperreed/stoneledger/rollup"
	"github.com/harperreed/stoneledger/viz"
)

var graphOutput string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print revenue, top companies, and recent activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext(cmd.Context())
		defer stop()

		p, _, cleanup, err := newPipeline(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		payload, err := p.Run(ctx)
		if err != nil {
			return err
		}

		stats := viz.GenerateDashboardStats(payload, time.Now())
		_, _ = fmt.Fprint(cmd.OutOrStdout(), viz.RenderDashboard(stats))
		return nil
	},
}

var graphCmd = &cobra.Command{
	Use:   "graph <company id or name>",
	Short: "Render a company's contacts, orders and notes as a graph",
	Long: `Render a company graph. Without --output the DOT source is printed.
With --output the format follows the file extension (.svg, .png, .jpg, or DOT).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext(cmd.Context())
		defer stop()

		p, _, cleanup, err := newPipeline(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		payload, err := p.Run(ctx)
		if err != nil {
			return err
		}

		detail, ok := rollup.DetailFor(payload, args[0])
		if !ok {
			return fmt.Errorf("company not found: %s", args[0])
		}

		if graphOutput == "" {
			dot, err := viz.GenerateCompanyGraph(ctx, detail)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), dot)
			return nil
		}

		f, err := os.Create(graphOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()

		if err := viz.RenderCompanyGraph(ctx, detail, viz.FormatForPath(graphOutput), f); err != nil {
			return err
		}
		logger.Info("graph written", "path", graphOutput)
		return nil
	},
}

func init() {
	graphCmd.Flags().StringVarP(&graphOutput, "output", "o", "", "write to a file instead of printing DOT")
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(graphCmd)
}
