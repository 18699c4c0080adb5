package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/reel-labs/reelsearch/internal/core/domain"
)

// SemanticSearchInput is the input schema for the semantic_search tool.
// ScoreThreshold is a pointer so an explicit 0 (no threshold) is
// distinguishable from an omitted field (default 0.8).
type SemanticSearchInput struct {
	Query          string   `json:"query" jsonschema:"natural-language description of the movie or TV show to find"`
	Limit          int      `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 5)"`
	TypeFilter     string   `json:"type_filter,omitempty" jsonschema:"restrict results to 'Movie' or 'TV Show'"`
	ScoreThreshold *float64 `json:"score_threshold,omitempty" jsonschema:"minimum similarity score between 0 and 1 (default 0.8, 0 disables)"`
}

// SemanticSearchOutput is the output schema for the semantic_search tool.
type SemanticSearchOutput struct {
	Results []domain.MediaHit `json:"results"`
	Count   int               `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "semantic_search",
		Description: "Find movies and TV shows in the catalog by meaning rather than exact title match",
	}, s.handleSemanticSearch)
}

// handleSemanticSearch handles the semantic_search tool invocation.
func (s *Server) handleSemanticSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SemanticSearchInput,
) (*mcp.CallToolResult, SemanticSearchOutput, error) {
	opts := domain.SearchOptions{
		Limit:          input.Limit,
		TypeFilter:     input.TypeFilter,
		ScoreThreshold: domain.DefaultScoreThreshold,
	}
	if opts.Limit <= 0 {
		opts.Limit = domain.DefaultSearchLimit
	}
	if input.ScoreThreshold != nil {
		opts.ScoreThreshold = *input.ScoreThreshold
	}

	hits, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SemanticSearchOutput{}, err
	}

	if hits == nil {
		hits = []domain.MediaHit{}
	}
	return nil, SemanticSearchOutput{Results: hits, Count: len(hits)}, nil
}
