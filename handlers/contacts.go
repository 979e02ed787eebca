// ABOUTME: Contact MCP tool handlers
// ABOUTME: Implements find_contacts over a fresh pipeline run
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/stoneledger/models"
)

type ContactHandlers struct {
	data DataSource
}

func NewContactHandlers(data DataSource) *ContactHandlers {
	return &ContactHandlers{data: data}
}

type FindContactsInput struct {
	Query   string `json:"query,omitempty" jsonschema:"Search query (matches name, email and phone)"`
	Company string `json:"company,omitempty" jsonschema:"Restrict to a company id or name"`
	Limit   int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 25)"`
}

type ContactOutput struct {
	ID          string `json:"id"`
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

type FindContactsOutput struct {
	Contacts []ContactOutput `json:"contacts"`
}

func (h *ContactHandlers) FindContacts(ctx context.Context, _ *mcp.CallToolRequest, input FindContactsInput) (*mcp.CallToolResult, FindContactsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 25
	}

	payload, err := h.data.Run(ctx)
	if err != nil {
		return nil, FindContactsOutput{}, fmt.Errorf("failed to fetch sheets: %w", err)
	}

	companyID := ""
	if input.Company != "" {
		company, ok := payload.FindCompany(input.Company)
		if !ok {
			return nil, FindContactsOutput{}, fmt.Errorf("company not found: %s", input.Company)
		}
		companyID = company.ID
	}

	query := strings.ToLower(strings.TrimSpace(input.Query))
	out := FindContactsOutput{Contacts: []ContactOutput{}}
	for _, c := range payload.Contacts {
		if companyID != "" && c.CompanyID != companyID {
			continue
		}
		if query != "" && !contactMatches(c, query) {
			continue
		}
		out.Contacts = append(out.Contacts, contactToOutput(c))
		if len(out.Contacts) == limit {
			break
		}
	}
	return nil, out, nil
}

func contactMatches(c models.Contact, query string) bool {
	for _, field := range []string{c.FullName, c.Email, c.Phone, c.PhoneRaw} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func contactToOutput(c models.Contact) ContactOutput {
	return ContactOutput{
		ID:          c.ID,
		CompanyID:   c.CompanyID,
		CompanyName: c.CompanyName,
		Name:        c.FullName,
		Email:       c.Email,
		Phone:       c.Phone,
	}
}
