// Package cli implements the codescope command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	rootFlag  string
	quietFlag bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "codescope",
	Short: "Codescope - structured context extraction for source code",
	Long: `Codescope parses source files into structured context: imports, scope
trees, and symbols with signatures and doc comments. The results feed
diff-aware context assembly, symbol search, and an MCP server for
LLM-powered coding assistants.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "project root directory (default is the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "disable progress bars and non-error output")
}

// projectRoot resolves the project root from the --root flag, falling back
// to the working directory.
func projectRoot() (string, error) {
	if rootFlag != "" {
		return rootFlag, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return wd, nil
}
