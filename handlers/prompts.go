// ABOUTME: MCP prompt handlers
// ABOUTME: Builds a company overview prompt from orders, contacts and notes
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/stoneledger/models"
	"github.com/harperreed/stoneledger/rollup"
)

// recentEvents caps how much of the timeline goes into a prompt.
const recentEvents = 10

type PromptHandlers struct {
	data DataSource
}

func NewPromptHandlers(data DataSource) *PromptHandlers {
	return &PromptHandlers{data: data}
}

// GetPrompt generates the prompt message based on the template
func (h *PromptHandlers) GetPrompt(ctx context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	switch request.Params.Name {
	case "company-overview":
		return h.getCompanyOverviewPrompt(ctx, request.Params.Arguments)
	default:
		return nil, fmt.Errorf("unknown prompt: %s", request.Params.Name)
	}
}

func (h *PromptHandlers) getCompanyOverviewPrompt(ctx context.Context, args map[string]string) (*mcp.GetPromptResult, error) {
	ref, ok := args["company"]
	if !ok || strings.TrimSpace(ref) == "" {
		return nil, fmt.Errorf("company is required")
	}

	payload, err := h.data.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheets: %w", err)
	}
	detail, ok := rollup.DetailFor(payload, ref)
	if !ok {
		return nil, fmt.Errorf("company not found: %s", ref)
	}

	c := detail.Company
	var promptText strings.Builder
	promptText.WriteString("Please provide an overview of this customer and suggest next steps:\n\n")
	fmt.Fprintf(&promptText, "Company: %s\n", c.Name)
	fmt.Fprintf(&promptText, "Orders: %d, total value %s, last order %s\n",
		c.OrderCount, rollup.FormatCents(c.TotalValueCents), rollup.FormatDate(c.LastOrderDate))

	if len(detail.Contacts) > 0 {
		promptText.WriteString("\nContacts:\n")
		for _, contact := range detail.Contacts {
			fmt.Fprintf(&promptText, "- %s", contact.FullName)
			if contact.Email != "" {
				fmt.Fprintf(&promptText, " <%s>", contact.Email)
			}
			promptText.WriteString("\n")
		}
	}

	if len(detail.Timeline) > 0 {
		promptText.WriteString("\nRecent activity:\n")
		for i, e := range detail.Timeline {
			if i == recentEvents {
				break
			}
			fmt.Fprintf(&promptText, "- %s %s: %s", e.Date, e.Kind, e.Title)
			if e.Kind == models.EventOrder && e.ValueCents > 0 {
				fmt.Fprintf(&promptText, " (%s)", rollup.FormatCents(e.ValueCents))
			}
			if e.Summary != "" {
				fmt.Fprintf(&promptText, " - %s", e.Summary)
			}
			promptText.WriteString("\n")
		}
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Overview for company: %s", c.Name),
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: promptText.String(),
				},
			},
		},
	}, nil
}
