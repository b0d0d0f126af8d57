package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codescope-dev/codescope/internal/assemble"
	"github.com/codescope-dev/codescope/internal/config"
	"github.com/codescope-dev/codescope/internal/extract"
	"github.com/codescope-dev/codescope/internal/files"
)

var extractLanguage string

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <file> [files...]",
	Short: "Extract structured context from source files",
	Long: `Extract parses source files and prints their structured context as JSON:
import directives, the scope tree, and symbols with signatures and doc
comments.

Examples:
  # Extract one file
  codescope extract src/parser.c

  # Extract several files
  codescope extract src/*.c

  # Force a language instead of detecting from the extension
  codescope extract --language c include/api.inc
`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVarP(&extractLanguage, "language", "l", "", "language identifier, overrides extension detection")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadCommandConfig()
	if err != nil {
		return err
	}

	extractor := extract.New(extract.Options{
		DocCommentBlankLines: cfg.Extraction.DocCommentBlankLines,
	})

	for _, path := range args {
		unit, err := files.Load(path)
		if err != nil {
			return err
		}
		unit.Language = extractLanguage

		fc, err := extractor.Extract(cmd.Context(), unit)
		if err != nil {
			return fmt.Errorf("extraction failed for %s: %w", path, err)
		}

		jsonData, err := assemble.Marshal(fc)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	}

	return nil
}

// loadCommandConfig loads the project configuration for a command run.
func loadCommandConfig() (*config.Config, error) {
	rootDir, err := projectRoot()
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
