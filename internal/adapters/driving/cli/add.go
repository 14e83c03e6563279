package cli

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/expense-tracker/internal/core/domain"
)

var (
	addSubcategory string
	addNote        string
)

var addCmd = &cobra.Command{
	Use:   "add <date> <amount> <category>",
	Short: "Record an expense",
	Long: `Record a new expense and print its ID.

Dates are stored as given and compared as text, so use YYYY-MM-DD
to keep range queries meaningful.`,
	Example:     `  expense-tracker add 2024-01-05 12.50 food --subcategory dining --note lunch`,
	Args:        cobra.ExactArgs(3),
	Annotations: needsAll,
	RunE:        runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addSubcategory, "subcategory", "s", "", "optional subcategory")
	addCmd.Flags().StringVarP(&addNote, "note", "n", "", "optional note")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	if expenseService == nil {
		return errors.New("expense service not configured")
	}

	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[1], err)
	}
	if math.IsInf(amount, 0) || math.IsNaN(amount) {
		return fmt.Errorf("invalid amount %q: must be a finite number", args[1])
	}

	id, err := expenseService.Add(cmd.Context(), domain.NewExpense{
		Date:        args[0],
		Amount:      amount,
		Category:    args[2],
		Subcategory: addSubcategory,
		Note:        addNote,
	})
	if err != nil {
		return fmt.Errorf("failed to add expense: %w", err)
	}

	cmd.Printf("Added expense %d\n", id)
	return nil
}
