package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/codescope-dev/codescope/internal/config"
	"github.com/codescope-dev/codescope/internal/storage"
)

var symbolsFile string

// symbolsCmd represents the symbols command
var symbolsCmd = &cobra.Command{
	Use:   "symbols <name>",
	Short: "Look up symbols by exact name in the symbol database",
	Long: `Symbols queries the indexed symbol database for an exact name, across all
files. Run 'codescope index' first to populate the database.

Examples:
  # Every definition of a name
  codescope symbols add_numbers

  # Every symbol of one file
  codescope symbols --file src/parser.c ""
`,
	Args: cobra.ExactArgs(1),
	RunE: runSymbols,
}

func init() {
	rootCmd.AddCommand(symbolsCmd)
	symbolsCmd.Flags().StringVarP(&symbolsFile, "file", "f", "", "list the symbols of one file instead of matching a name")
}

func runSymbols(cmd *cobra.Command, args []string) error {
	rootDir, err := projectRoot()
	if err != nil {
		return err
	}
	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := storage.Open(filepath.Join(rootDir, cfg.Storage.Location))
	if err != nil {
		return fmt.Errorf("failed to open symbol database (run 'codescope index' first): %w", err)
	}
	defer db.Close()

	reader := storage.NewReader(db)

	var rows []storage.SymbolRow
	if symbolsFile != "" {
		rows, err = reader.SymbolsForFile(symbolsFile)
	} else {
		rows, err = reader.SymbolsByName(args[0])
	}
	if err != nil {
		return fmt.Errorf("symbol lookup failed: %w", err)
	}

	if len(rows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No symbols found.")
		return nil
	}

	for _, row := range rows {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n", row.FilePath, row.Kind, row.ScopePath)
		if row.Signature != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", row.Signature)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d symbol(s)\n", len(rows))

	return nil
}
