package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codescope-dev/codescope/internal/config"
	"github.com/codescope-dev/codescope/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for structured code context",
	Long: `Start the Model Context Protocol (MCP) server that enables LLM-powered
coding assistants to query your codebase.

The MCP server:
- Extracts and indexes the project at startup
- Provides context assembly via the codescope_context tool
- Provides symbol search via the codescope_symbols tool
- Provides import-graph queries via the codescope_graph tool
- Communicates via stdio (standard MCP transport)

Example:
  codescope mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rootDir, err := projectRoot()
	if err != nil {
		return err
	}
	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Codescope MCP Server\n")
	fmt.Fprintf(os.Stderr, "Project Root: %s\n\n", rootDir)

	server, err := mcp.NewServer(rootDir, cfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer server.Close()

	report, err := server.LoadProject(ctx)
	if err != nil {
		return fmt.Errorf("failed to load project: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Indexed %s files (%s failed)\n",
		formatNumber(len(report.Results)), formatNumber(report.Failed))

	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}

	return nil
}
