package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/expense-tracker/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for browsing and
recording expenses.

Controls:
  ↑/k, ↓/j   - Navigate
  Tab        - Next field
  Enter      - Select / Submit
  e          - Edit the date range
  Esc        - Back to menu
  Ctrl+C     - Quit`,
	Args:        cobra.NoArgs,
	Annotations: needsAll,
	RunE:        runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := tui.NewApp(&tui.Ports{Expense: expenseService})
	if err != nil {
		return err
	}

	return app.WithContext(cmd.Context()).Run()
}
