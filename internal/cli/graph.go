package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codescope-dev/codescope/internal/config"
	"github.com/codescope-dev/codescope/internal/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Query the project's import graph",
}

var graphCyclesCmd = &cobra.Command{
	Use:   "cycles",
	Short: "Report import cycles across the project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ig, err := buildProjectGraph(cmd)
		if err != nil {
			return err
		}

		cycles, err := ig.Cycles()
		if err != nil {
			return fmt.Errorf("cycle detection failed: %w", err)
		}
		if len(cycles) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No import cycles.")
			return nil
		}
		for i, cycle := range cycles {
			fmt.Fprintf(cmd.OutOrStdout(), "Cycle %d:\n", i+1)
			for _, member := range cycle {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", member)
			}
		}
		return nil
	},
}

var graphDepsCmd = &cobra.Command{
	Use:   "deps <file>",
	Short: "List what a file imports",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ig, err := buildProjectGraph(cmd)
		if err != nil {
			return err
		}
		return printNeighbors(cmd, ig, args[0], ig.Dependencies(args[0]))
	},
}

var graphDependentsCmd = &cobra.Command{
	Use:   "dependents <file>",
	Short: "List which files import a target",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ig, err := buildProjectGraph(cmd)
		if err != nil {
			return err
		}
		return printNeighbors(cmd, ig, args[0], ig.Dependents(args[0]))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.AddCommand(graphCyclesCmd)
	graphCmd.AddCommand(graphDepsCmd)
	graphCmd.AddCommand(graphDependentsCmd)
}

// buildProjectGraph extracts the project and assembles its import graph.
func buildProjectGraph(cmd *cobra.Command) (*graph.ImportGraph, error) {
	rootDir, err := projectRoot()
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	report, _, err := extractProject(cmd.Context(), rootDir, cfg, true)
	if err != nil {
		return nil, err
	}

	ig, err := graph.Build(contextsFrom(report))
	if err != nil {
		return nil, fmt.Errorf("failed to build import graph: %w", err)
	}
	return ig, nil
}

func printNeighbors(cmd *cobra.Command, ig *graph.ImportGraph, id string, neighbors []string) error {
	if _, ok := ig.Node(id); !ok {
		return fmt.Errorf("unknown file: %s", id)
	}
	if len(neighbors) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "None.")
		return nil
	}
	for _, n := range neighbors {
		fmt.Fprintln(cmd.OutOrStdout(), n)
	}
	return nil
}
