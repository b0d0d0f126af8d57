package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// GraphResponse is the JSON payload returned by codescope_graph.
type GraphResponse struct {
	Operation    string     `json:"operation"`
	Path         string     `json:"path,omitempty"`
	Dependencies []string   `json:"dependencies,omitempty"`
	Dependents   []string   `json:"dependents,omitempty"`
	Cycles       [][]string `json:"cycles,omitempty"`
}

// AddGraphTool registers the codescope_graph tool with an MCP server.
func AddGraphTool(s *server.MCPServer, srv *Server) {
	tool := mcp.NewTool(
		"codescope_graph",
		mcp.WithDescription("Query the project's import graph. Operations: 'dependencies' (what a file imports), 'dependents' (which files import a target), 'cycles' (import cycles across the project)."),
		mcp.WithString("operation",
			mcp.Required(),
			mcp.Description("One of 'dependencies', 'dependents', 'cycles'.")),
		mcp.WithString("path",
			mcp.Description("Project-relative file path or import target. Required for 'dependencies' and 'dependents'.")),
	)

	s.AddTool(tool, createGraphHandler(srv))
}

// createGraphHandler creates the handler function for codescope_graph.
func createGraphHandler(srv *Server) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		operation, ok := argsMap["operation"].(string)
		if !ok || operation == "" {
			return mcp.NewToolResultError("operation parameter is required"), nil
		}

		srv.mu.RLock()
		ig := srv.importGraph
		srv.mu.RUnlock()
		if ig == nil {
			return mcp.NewToolResultError("no project loaded"), nil
		}

		response := &GraphResponse{Operation: operation}

		switch operation {
		case "dependencies", "dependents":
			path, ok := argsMap["path"].(string)
			if !ok || path == "" {
				return mcp.NewToolResultError(fmt.Sprintf("path parameter is required for %s", operation)), nil
			}
			if _, found := ig.Node(path); !found {
				return mcp.NewToolResultError(fmt.Sprintf("unknown file: %s", path)), nil
			}
			response.Path = path
			if operation == "dependencies" {
				response.Dependencies = ig.Dependencies(path)
			} else {
				response.Dependents = ig.Dependents(path)
			}

		case "cycles":
			cycles, err := ig.Cycles()
			if err != nil {
				return nil, fmt.Errorf("cycle detection failed: %w", err)
			}
			response.Cycles = cycles

		default:
			return mcp.NewToolResultError(fmt.Sprintf("unsupported operation: %s (valid: dependencies, dependents, cycles)", operation)), nil
		}

		jsonData, err := json.Marshal(response)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}
		return mcp.NewToolResultText(string(jsonData)), nil
	}
}
