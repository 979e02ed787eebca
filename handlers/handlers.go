// ABOUTME: MCP server assembly for StoneLedger
// ABOUTME: Registers company, contact and note tools plus resources and prompts
package handlers

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/stoneledger/models"
)

// DataSource produces a fresh payload per call. Tools never cache.
type DataSource interface {
	Run(ctx context.Context) (*models.Payload, error)
}

// NewServer builds the MCP server with every tool, resource and prompt.
func NewServer(data DataSource, version string) *mcp.Server {
	companyHandlers := NewCompanyHandlers(data)
	contactHandlers := NewContactHandlers(data)
	noteHandlers := NewNoteHandlers(data)
	resourceHandlers := NewResourceHandlers(data)
	promptHandlers := NewPromptHandlers(data)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "stoneledger",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_companies",
		Description: "List companies rolled up from orders, with optional name search and sorting",
	}, companyHandlers.ListCompanies)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_company",
		Description: "Get one company by id or name with its contacts and timeline of orders and notes",
	}, companyHandlers.GetCompany)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_contacts",
		Description: "Search contacts by name, email or phone, optionally within one company",
	}, contactHandlers.FindContacts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_notes",
		Description: "List notes, newest first, optionally for one company",
	}, noteHandlers.ListNotes)

	server.AddResource(&mcp.Resource{
		URI:         companiesURI,
		Name:        "companies",
		Description: "All companies with order rollups",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: companiesURI + "/{id}",
		Name:        "company",
		Description: "One company with contacts and timeline",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	server.AddPrompt(&mcp.Prompt{
		Name:        "company-overview",
		Description: "Summarize a company's order history and recent activity",
		Arguments: []*mcp.PromptArgument{
			{Name: "company", Description: "Company id or name", Required: true},
		},
	}, promptHandlers.GetPrompt)

	return server
}
