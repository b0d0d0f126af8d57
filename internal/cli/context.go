package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codescope-dev/codescope/internal/assemble"
	"github.com/codescope-dev/codescope/internal/extract"
	"github.com/codescope-dev/codescope/internal/files"
)

var (
	contextStartLine int
	contextEndLine   int
)

// contextCmd represents the context command
var contextCmd = &cobra.Command{
	Use:   "context <file>",
	Short: "Select context blocks around changed lines",
	Long: `Context picks the code a reader needs around a change: every import
directive plus the top-level blocks enclosing the changed lines. A change
inside a nested function selects the whole enclosing top-level function.

Examples:
  # Context for a single changed line
  codescope context src/parser.c --start-line 120

  # Context for a changed hunk
  codescope context src/parser.c --start-line 120 --end-line 140
`,
	Args: cobra.ExactArgs(1),
	RunE: runContext,
}

func init() {
	rootCmd.AddCommand(contextCmd)
	contextCmd.Flags().IntVar(&contextStartLine, "start-line", 0, "first changed line (1-based)")
	contextCmd.Flags().IntVar(&contextEndLine, "end-line", 0, "last changed line (1-based, inclusive; defaults to start-line)")
	contextCmd.MarkFlagRequired("start-line")
}

func runContext(cmd *cobra.Command, args []string) error {
	cfg, err := loadCommandConfig()
	if err != nil {
		return err
	}

	endLine := contextEndLine
	if endLine == 0 {
		endLine = contextStartLine
	}
	if contextStartLine < 1 || endLine < contextStartLine {
		return fmt.Errorf("invalid line range %d:%d", contextStartLine, endLine)
	}

	unit, err := files.Load(args[0])
	if err != nil {
		return err
	}

	extractor := extract.New(extract.Options{
		DocCommentBlankLines: cfg.Extraction.DocCommentBlankLines,
	})
	fc, err := extractor.Extract(cmd.Context(), unit)
	if err != nil {
		return fmt.Errorf("extraction failed for %s: %w", args[0], err)
	}

	selection := assemble.Select(fc, unit.Text, []assemble.LineRange{
		{Start: contextStartLine, End: endLine},
	})

	jsonData, err := json.MarshalIndent(selection, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal selection: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))

	return nil
}
