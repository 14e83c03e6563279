package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/expense-tracker/internal/core/domain"
)

var (
	summarizeCategory string
	summarizeJSON     bool
)

var summarizeCmd = &cobra.Command{
	Use:         "summarize <start-date> <end-date>",
	Short:       "Total expenses per category",
	Long:        `Sum expenses per category between start and end, inclusive. Categories without expenses are omitted.`,
	Args:        cobra.ExactArgs(2),
	Annotations: needsAll,
	RunE:        runSummarize,
}

func init() {
	summarizeCmd.Flags().StringVarP(&summarizeCategory, "category", "c", "", "only summarize this category")
	summarizeCmd.Flags().BoolVar(&summarizeJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	if expenseService == nil {
		return errors.New("expense service not configured")
	}

	totals, err := expenseService.Summarize(cmd.Context(),
		domain.DateRange{Start: args[0], End: args[1]},
		domain.SummaryFilter{Category: summarizeCategory})
	if err != nil {
		return fmt.Errorf("failed to summarize expenses: %w", err)
	}

	if summarizeJSON {
		if totals == nil {
			totals = []domain.CategoryTotal{}
		}
		return outputJSON(cmd, totals)
	}

	outputTotalsTable(cmd, totals)
	return nil
}
