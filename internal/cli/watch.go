package cli

import (
	"github.com/spf13/cobra"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Index the project and re-index on file changes",
	Long: `Watch runs a full indexing pass and then keeps watching the project,
re-extracting changed files into the symbol database until interrupted.
Equivalent to 'codescope index --watch'.

Example:
  codescope watch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		watchFlag = true
		return runIndex(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
