package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/codescope-dev/codescope/internal/assemble"
)

// AddContextTool registers the codescope_context tool with an MCP server.
// This function is composable - it can be combined with other tool registrations.
func AddContextTool(s *server.MCPServer, srv *Server) {
	tool := mcp.NewTool(
		"codescope_context",
		mcp.WithDescription("Get structured context for a source file: imports, scope tree, and symbols. With a line range, returns only the import directives plus the top-level blocks enclosing the changed lines."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Project-relative path of the source file (e.g., 'src/parser.c')")),
		mcp.WithNumber("start_line",
			mcp.Description("First changed line (1-based). When set, the result is a context selection instead of the full file payload.")),
		mcp.WithNumber("end_line",
			mcp.Description("Last changed line (1-based, inclusive). Defaults to start_line.")),
	)

	s.AddTool(tool, createContextHandler(srv))
}

// createContextHandler creates the handler function for codescope_context.
func createContextHandler(srv *Server) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		path, ok := argsMap["path"].(string)
		if !ok || path == "" {
			return mcp.NewToolResultError("path parameter is required"), nil
		}

		fc, source, found := srv.fileContext(path)
		if !found {
			return mcp.NewToolResultError(fmt.Sprintf("unknown file: %s", path)), nil
		}

		startLine, haveRange := argsMap["start_line"].(float64)
		if !haveRange {
			jsonData, err := assemble.Marshal(fc)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal payload: %w", err)
			}
			return mcp.NewToolResultText(string(jsonData)), nil
		}

		endLine := startLine
		if v, ok := argsMap["end_line"].(float64); ok {
			endLine = v
		}
		if startLine < 1 || endLine < startLine {
			return mcp.NewToolResultError("invalid line range"), nil
		}

		selection := assemble.Select(fc, source, []assemble.LineRange{
			{Start: int(startLine), End: int(endLine)},
		})

		jsonData, err := json.Marshal(selection)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal selection: %w", err)
		}
		return mcp.NewToolResultText(string(jsonData)), nil
	}
}
