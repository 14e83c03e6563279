package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/expense-tracker/internal/core/domain"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:         "list <start-date> <end-date>",
	Short:       "List expenses in a date range",
	Long:        `List expenses dated between start and end, inclusive, in the order they were recorded.`,
	Args:        cobra.ExactArgs(2),
	Annotations: needsAll,
	RunE:        runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if expenseService == nil {
		return errors.New("expense service not configured")
	}

	expenses, err := expenseService.List(cmd.Context(), domain.DateRange{Start: args[0], End: args[1]})
	if err != nil {
		return fmt.Errorf("failed to list expenses: %w", err)
	}

	if listJSON {
		if expenses == nil {
			expenses = []domain.Expense{}
		}
		return outputJSON(cmd, expenses)
	}

	outputExpenseTable(cmd, expenses)
	return nil
}
