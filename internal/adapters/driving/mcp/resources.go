package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for virta resources.
	uriScheme = "virta://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource summarising the knowledge base.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "summary",
		Name:        "summary",
		Description: "Knowledge base document counts per collection",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// handleSummaryResource returns knowledge base statistics.
func (s *Server) handleSummaryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Knowledge == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "{}",
			}},
		}, nil
	}

	stats, err := s.ports.Knowledge.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading knowledge stats: %w", err)
	}

	type summaryInfo struct {
		Documents   int            `json:"documents"`
		Collections map[string]int `json:"collections"`
		LastUpdated string         `json:"last_updated,omitempty"`
	}

	info := summaryInfo{Collections: make(map[string]int, len(stats.Counts))}
	for collection, n := range stats.Counts {
		info.Collections[string(collection)] = n
		info.Documents += n
	}
	if !stats.LastUpdated.IsZero() {
		info.LastUpdated = stats.LastUpdated.UTC().Format(time.RFC3339)
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling summary: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
