package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codescope-dev/codescope/internal/config"
	"github.com/codescope-dev/codescope/internal/search"
)

var (
	searchLimit    int
	searchKind     string
	searchLanguage string
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over extracted symbols",
	Long: `Search runs a full-text query over the project's symbols: names,
signatures, and doc comments all match. The project is extracted fresh,
so results always reflect the working tree.

Examples:
  # Find a symbol by name
  codescope search add_numbers

  # Only functions, at most five results
  codescope search "parse config" --kind function --limit 5

  # Restrict to one language
  codescope search helper --language python
`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default 15)")
	searchCmd.Flags().StringVarP(&searchKind, "kind", "k", "", "filter by symbol kind")
	searchCmd.Flags().StringVarP(&searchLanguage, "language", "l", "", "filter by language")
}

func runSearch(cmd *cobra.Command, args []string) error {
	rootDir, err := projectRoot()
	if err != nil {
		return err
	}
	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	report, _, err := extractProject(cmd.Context(), rootDir, cfg, true)
	if err != nil {
		return err
	}

	index, err := search.NewIndex()
	if err != nil {
		return fmt.Errorf("failed to create search index: %w", err)
	}
	defer index.Close()

	for _, fc := range contextsFrom(report) {
		if err := index.IndexFileContext(cmd.Context(), fc); err != nil {
			return fmt.Errorf("failed to index %s: %w", fc.Path, err)
		}
	}

	results, err := index.Search(cmd.Context(), args[0], search.Options{
		Limit:    searchLimit,
		Kind:     searchKind,
		Language: searchLanguage,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No results.")
		return nil
	}

	for _, res := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n", res.FilePath, res.Kind, res.Name)
		if res.Signature != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", res.Signature)
		}
		if res.Doc != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", res.Doc)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d result(s)\n", len(results))

	return nil
}
