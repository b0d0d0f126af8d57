package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/codescope-dev/codescope/internal/search"
)

// SymbolsResponse is the JSON payload returned by codescope_symbols.
type SymbolsResponse struct {
	Results []search.Result `json:"results"`
	Total   int             `json:"total"`
}

// AddSymbolsTool registers the codescope_symbols tool with an MCP server.
func AddSymbolsTool(s *server.MCPServer, srv *Server) {
	tool := mcp.NewTool(
		"codescope_symbols",
		mcp.WithDescription("Search extracted symbols by name, signature, or doc comment text. Returns matching functions, types, and constants ranked by relevance."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query (e.g., 'add_numbers', 'parse config')")),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results to return (1-100, default: 15)")),
		mcp.WithString("kind",
			mcp.Description("Filter by symbol kind. Options: 'function', 'nested-function', 'struct', 'typedef', 'macro-constant', 'module-constant'.")),
		mcp.WithString("language",
			mcp.Description("Filter by language identifier (e.g., 'c', 'python', 'go').")),
	)

	s.AddTool(tool, createSymbolsHandler(srv))
}

// createSymbolsHandler creates the handler function for codescope_symbols.
func createSymbolsHandler(srv *Server) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		query, ok := argsMap["query"].(string)
		if !ok || query == "" {
			return mcp.NewToolResultError("query parameter is required"), nil
		}

		opts := search.Options{}
		if limit, ok := argsMap["limit"].(float64); ok {
			opts.Limit = int(limit)
		}
		if kind, ok := argsMap["kind"].(string); ok {
			opts.Kind = kind
		}
		if language, ok := argsMap["language"].(string); ok {
			opts.Language = language
		}

		results, err := srv.index.Search(ctx, query, opts)
		if err != nil {
			return nil, fmt.Errorf("search failed: %w", err)
		}

		response := &SymbolsResponse{
			Results: results,
			Total:   len(results),
		}

		jsonData, err := json.Marshal(response)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}
		return mcp.NewToolResultText(string(jsonData)), nil
	}
}
