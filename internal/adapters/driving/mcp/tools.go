package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/opencourse-labs/virta/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the course question to answer"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer   string       `json:"answer"`
	Links    []LinkOutput `json:"links"`
	Degraded bool         `json:"degraded,omitempty"`
}

// LinkOutput is a citation link in an answer.
type LinkOutput struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// MatchInput is the input schema for the match tool.
type MatchInput struct {
	Question string `json:"question" jsonschema:"the question to match against the knowledge base"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of documents to return (default 5)"`
}

// MatchOutput is the output schema for the match tool.
type MatchOutput struct {
	Matches []MatchResultOutput `json:"matches"`
	Count   int                 `json:"count"`
}

// MatchResultOutput represents a single matched document.
type MatchResultOutput struct {
	DocumentID string `json:"document_id"`
	Collection string `json:"collection"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	Score      int    `json:"score"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a course question using the knowledge base and cite sources",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "match",
		Description: "List the knowledge base documents a question would retrieve, without answering",
	}, s.handleMatch)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Answer.Ask(ctx, domain.Query{Question: input.Question})
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:   answer.Text,
		Links:    make([]LinkOutput, len(answer.Links)),
		Degraded: answer.Degraded,
	}
	for i, link := range answer.Links {
		output.Links[i] = LinkOutput{URL: link.URL, Text: link.Text}
	}

	return nil, output, nil
}

// handleMatch handles the match tool invocation.
func (s *Server) handleMatch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MatchInput,
) (*mcp.CallToolResult, MatchOutput, error) {
	matches, err := s.ports.Answer.Match(ctx, input.Question, input.Limit)
	if err != nil {
		return nil, MatchOutput{}, err
	}

	output := MatchOutput{
		Matches: make([]MatchResultOutput, len(matches)),
		Count:   len(matches),
	}
	for i := range matches {
		output.Matches[i] = MatchResultOutput{
			DocumentID: matches[i].Document.ID,
			Collection: string(matches[i].Document.Collection),
			Title:      matches[i].Document.Title,
			URL:        matches[i].Document.URL,
			Score:      matches[i].Score,
		}
	}

	return nil, output, nil
}
