// ABOUTME: Company MCP tool handlers
// ABOUTME: Implements list_companies and get_company over a fresh pipeline run
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/stoneledger/models"
	"github.com/harperreed/stoneledger/rollup"
)

type CompanyHandlers struct {
	data DataSource
}

func NewCompanyHandlers(data DataSource) *CompanyHandlers {
	return &CompanyHandlers{data: data}
}

type ListCompaniesInput struct {
	Query     string `json:"query,omitempty" jsonschema:"Case-insensitive substring of the company name"`
	Sort      string `json:"sort,omitempty" jsonschema:"Sort field: name, orderCount, totalValueCents (default) or lastOrderDate"`
	Direction string `json:"direction,omitempty" jsonschema:"asc or desc (default desc)"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 25)"`
}

type CompanyOutput struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	OrderCount      int    `json:"order_count"`
	TotalValueCents int64  `json:"total_value_cents"`
	TotalValue      string `json:"total_value"`
	LastOrderDate   string `json:"last_order_date,omitempty"`
}

type ListCompaniesOutput struct {
	Companies []CompanyOutput `json:"companies"`
	Total     int             `json:"total"`
}

func (h *CompanyHandlers) ListCompanies(ctx context.Context, _ *mcp.CallToolRequest, input ListCompaniesInput) (*mcp.CallToolResult, ListCompaniesOutput, error) {
	field, err := rollup.ParseSortField(input.Sort)
	if err != nil {
		return nil, ListCompaniesOutput{}, err
	}
	ascending, err := rollup.ParseDirection(input.Direction)
	if err != nil {
		return nil, ListCompaniesOutput{}, err
	}
	limit := input.Limit
	if limit <= 0 {
		limit = 25
	}

	payload, err := h.data.Run(ctx)
	if err != nil {
		return nil, ListCompaniesOutput{}, fmt.Errorf("failed to fetch sheets: %w", err)
	}

	matched := rollup.FilterCompanies(payload.Companies, rollup.ListOptions{
		Query:     input.Query,
		SortField: field,
		Ascending: ascending,
	})

	out := ListCompaniesOutput{Companies: []CompanyOutput{}, Total: len(matched)}
	for i, c := range matched {
		if i == limit {
			break
		}
		out.Companies = append(out.Companies, companyToOutput(c))
	}
	return nil, out, nil
}

type GetCompanyInput struct {
	Company string `json:"company" jsonschema:"Company id or name (required)"`
}

type GetCompanyOutput struct {
	Company  CompanyOutput          `json:"company"`
	Contacts []ContactOutput        `json:"contacts"`
	Timeline []models.TimelineEvent `json:"timeline"`
}

func (h *CompanyHandlers) GetCompany(ctx context.Context, _ *mcp.CallToolRequest, input GetCompanyInput) (*mcp.CallToolResult, GetCompanyOutput, error) {
	if input.Company == "" {
		return nil, GetCompanyOutput{}, fmt.Errorf("company is required")
	}

	payload, err := h.data.Run(ctx)
	if err != nil {
		return nil, GetCompanyOutput{}, fmt.Errorf("failed to fetch sheets: %w", err)
	}

	detail, ok := rollup.DetailFor(payload, input.Company)
	if !ok {
		return nil, GetCompanyOutput{}, fmt.Errorf("company not found: %s", input.Company)
	}

	out := GetCompanyOutput{
		Company:  companyToOutput(detail.Company),
		Contacts: make([]ContactOutput, 0, len(detail.Contacts)),
		Timeline: detail.Timeline,
	}
	for _, c := range detail.Contacts {
		out.Contacts = append(out.Contacts, contactToOutput(c))
	}
	return nil, out, nil
}

func companyToOutput(c models.Company) CompanyOutput {
	return CompanyOutput{
		ID:              c.ID,
		Name:            c.Name,
		OrderCount:      c.OrderCount,
		TotalValueCents: c.TotalValueCents,
		TotalValue:      rollup.FormatCents(c.TotalValueCents),
		LastOrderDate:   c.LastOrderDate,
	}
}
