// ABOUTME: MCP resource handlers exposing company data by URI
// ABOUTME: Serves stoneledger://companies and stoneledger://companies/{id}
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/stoneledger/rollup"
)

const companiesURI = "stoneledger://companies"

type ResourceHandlers struct {
	data DataSource
}

func NewResourceHandlers(data DataSource) *ResourceHandlers {
	return &ResourceHandlers{data: data}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(ctx context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, companiesURI) {
		return nil, mcp.ResourceNotFoundError(uri)
	}
	id := strings.TrimPrefix(strings.TrimPrefix(uri, companiesURI), "/")

	payload, err := h.data.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheets: %w", err)
	}

	var body any = payload.Companies
	if id != "" {
		detail, ok := rollup.DetailFor(payload, id)
		if !ok {
			return nil, mcp.ResourceNotFoundError(uri)
		}
		body = detail
	}

	data, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource: %w", err)
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}
