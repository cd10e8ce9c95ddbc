// Package mcp provides an MCP (Model Context Protocol) server adapter for
// virta. It lets AI assistants ask course questions and inspect the
// knowledge base over the protocol.
package mcp

import "errors"

// ErrMissingAnswerService is returned when the answer service is not provided.
var ErrMissingAnswerService = errors.New("mcp: answer service is required")
