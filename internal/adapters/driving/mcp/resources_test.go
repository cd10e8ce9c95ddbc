package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Helper to create a ReadResourceRequest with the given URI.
func newReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}
