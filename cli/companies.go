// ABOUTME: Company CLI commands
// ABOUTME: Lists companies and prints per-company timelines
package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/harperreed/stoneledger/models"
	"github.com/harperreed/stoneledger/rollup"
)

var (
	companiesQuery string
	companiesSort  string
	companiesDir   string
	companiesLimit int
)

var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "List companies rolled up from orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		field, err := rollup.ParseSortField(companiesSort)
		if err != nil {
			return err
		}
		ascending, err := rollup.ParseDirection(companiesDir)
		if err != nil {
			return err
		}

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

		companies := rollup.FilterCompanies(payload.Companies, rollup.ListOptions{
			Query:     companiesQuery,
			SortField: field,
			Ascending: ascending,
			Limit:     companiesLimit,
		})

		out := cmd.OutOrStdout()
		if len(companies) == 0 {
			_, _ = fmt.Fprintln(out, "No companies found")
			return nil
		}
		if isTerminal(out) {
			_, _ = fmt.Fprintln(out, companiesTable(companies))
			return nil
		}
		return writeCompaniesPlain(out, companies)
	},
}

var timelineCmd = &cobra.Command{
	Use:   "timeline <company id or name>",
	Short: "Show a company's orders and notes, newest first",
	Args:  cobra.ExactArgs(1),
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
		writeTimeline(cmd.OutOrStdout(), detail)
		return nil
	},
}

func init() {
	companiesCmd.Flags().StringVarP(&companiesQuery, "query", "q", "", "search by name")
	companiesCmd.Flags().StringVar(&companiesSort, "sort", "totalValueCents", "sort by name, orderCount, totalValueCents or lastOrderDate")
	companiesCmd.Flags().StringVar(&companiesDir, "dir", "desc", "sort direction (asc or desc)")
	companiesCmd.Flags().IntVar(&companiesLimit, "limit", 0, "maximum results (0 for all)")
	rootCmd.AddCommand(companiesCmd)
	rootCmd.AddCommand(timelineCmd)
}

func companiesTable(companies []models.Company) string {
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170")).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		Headers("COMPANY", "ORDERS", "TOTAL", "LAST ORDER", "ID")

	for _, c := range companies {
		t.Row(c.Name, strconv.Itoa(c.OrderCount), rollup.FormatCents(c.TotalValueCents), rollup.FormatDate(c.LastOrderDate), c.ID)
	}
	return t.Render()
}

func writeCompaniesPlain(out io.Writer, companies []models.Company) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "COMPANY\tORDERS\tTOTAL\tLAST ORDER\tID")
	for _, c := range companies {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
			c.Name, c.OrderCount, rollup.FormatCents(c.TotalValueCents), rollup.FormatDate(c.LastOrderDate), c.ID)
	}
	return w.Flush()
}

func writeTimeline(out io.Writer, d *rollup.CompanyDetail) {
	_, _ = fmt.Fprintf(out, "%s\n", d.Company.Name)
	_, _ = fmt.Fprintf(out, "  %d orders, %s, last order %s\n\n",
		d.Company.OrderCount, rollup.FormatCents(d.Company.TotalValueCents), rollup.FormatDate(d.Company.LastOrderDate))

	if len(d.Contacts) > 0 {
		_, _ = fmt.Fprintln(out, "Contacts:")
		for _, c := range d.Contacts {
			line := "  " + c.FullName
			if c.Email != "" {
				line += " <" + c.Email + ">"
			}
			if c.Phone != "" {
				line += " " + c.Phone
			}
			_, _ = fmt.Fprintln(out, line)
		}
		_, _ = fmt.Fprintln(out)
	}

	if len(d.Timeline) == 0 {
		_, _ = fmt.Fprintln(out, "No activity")
		return
	}
	for _, e := range d.Timeline {
		line := fmt.Sprintf("%-12s %-5s %s", rollup.FormatDate(e.Date), e.Kind, e.Title)
		if e.ValueCents > 0 {
			line += " " + rollup.FormatCents(e.ValueCents)
		}
		if e.Author != "" {
			line += " (" + e.Author + ")"
		}
		_, _ = fmt.Fprintln(out, line)
		if e.Summary != "" {
			_, _ = fmt.Fprintf(out, "             %s\n", e.Summary)
		}
	}
}
