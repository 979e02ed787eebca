// ABOUTME: Graphviz rendering of one company's orders, contacts, and notes
// ABOUTME: Produces DOT for the terminal or SVG/PNG files
package viz

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/harperreed/stoneledger/rollup"
)

// FormatForPath picks an output format from a file extension. Unknown
// extensions render DOT.
func FormatForPath(path string) graphviz.Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return graphviz.SVG
	case ".png":
		return graphviz.PNG
	case ".jpg", ".jpeg":
		return graphviz.JPG
	}
	return graphviz.XDOT
}

// GenerateCompanyGraph returns the DOT source of the company graph.
func GenerateCompanyGraph(ctx context.Context, d *rollup.CompanyDetail) (string, error) {
	var buf bytes.Buffer
	if err := RenderCompanyGraph(ctx, d, graphviz.XDOT, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderCompanyGraph draws the company at the centre with its contacts,
// orders and notes around it.
func RenderCompanyGraph(ctx context.Context, d *rollup.CompanyDetail, format graphviz.Format, w io.Writer) error {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("failed to create graphviz instance: %w", err)
	}
	defer func() { _ = gv.Close() }()

	graph, err := gv.Graph()
	if err != nil {
		return fmt.Errorf("failed to create graph: %w", err)
	}
	defer func() { _ = graph.Close() }()

	graph.SetLabel(d.Company.Name)
	graph.SetRankDir(cgraph.LRRank)

	company, err := graph.CreateNodeByName("company_" + d.Company.ID)
	if err != nil {
		return fmt.Errorf("failed to create company node: %w", err)
	}
	company.SetLabel(fmt.Sprintf("%s\n%d orders, %s", d.Company.Name, d.Company.OrderCount, rollup.FormatCents(d.Company.TotalValueCents)))
	company.SetShape("box")
	company.SetStyle("filled")
	company.SetFillColor("lightblue")

	for _, c := range d.Contacts {
		node, err := graph.CreateNodeByName("contact_" + c.ID)
		if err != nil {
			return fmt.Errorf("failed to create contact node: %w", err)
		}
		label := c.FullName
		if c.Email != "" {
			label += "\n" + c.Email
		}
		node.SetLabel(label)
		node.SetShape("ellipse")
		node.SetStyle("filled")
		node.SetFillColor("lightgreen")

		edge, err := graph.CreateEdgeByName("works_at_"+c.ID, node, company)
		if err != nil {
			return fmt.Errorf("failed to create edge: %w", err)
		}
		edge.SetLabel("works at")
		edge.SetStyle("dashed")
	}

	for _, o := range d.Orders {
		node, err := graph.CreateNodeByName("order_" + o.ID)
		if err != nil {
			return fmt.Errorf("failed to create order node: %w", err)
		}
		node.SetLabel(fmt.Sprintf("%s\n%s\n%s", o.OrderName, rollup.FormatCents(o.ValueCents), o.StartDate))
		node.SetShape("diamond")
		node.SetStyle("filled")
		node.SetFillColor("lightyellow")

		edge, err := graph.CreateEdgeByName("order_"+o.ID, company, node)
		if err != nil {
			return fmt.Errorf("failed to create edge: %w", err)
		}
		edge.SetLabel("order")
	}

	for _, n := range d.Notes {
		node, err := graph.CreateNodeByName("note_" + n.ID)
		if err != nil {
			return fmt.Errorf("failed to create note node: %w", err)
		}
		node.SetLabel(fmt.Sprintf("%s\n%s", n.Date, truncate(n.Content, 40)))
		node.SetShape("note")

		edge, err := graph.CreateEdgeByName("note_"+n.ID, company, node)
		if err != nil {
			return fmt.Errorf("failed to create edge: %w", err)
		}
		edge.SetStyle("dotted")
	}

	if err := gv.Render(ctx, graph, format, w); err != nil {
		return fmt.Errorf("failed to render graph: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
