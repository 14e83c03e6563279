package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/expense-tracker/internal/core/domain"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func outputExpenseTable(cmd *cobra.Command, expenses []domain.Expense) {
	if len(expenses) == 0 {
		cmd.Println("No expenses found.")
		return
	}

	rows := make([][]string, len(expenses))
	for i, e := range expenses {
		rows[i] = []string{
			strconv.FormatInt(e.ID, 10),
			e.Date,
			formatAmount(e.Amount),
			e.Category,
			e.Subcategory,
			e.Note,
		}
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(out, []string{"ID", "DATE", "AMOUNT", "CATEGORY", "SUBCATEGORY", "NOTE"}, rows))
}

func outputTotalsTable(cmd *cobra.Command, totals []domain.CategoryTotal) {
	if len(totals) == 0 {
		cmd.Println("No expenses found.")
		return
	}

	rows := make([][]string, len(totals))
	for i, t := range totals {
		rows[i] = []string{t.Category, formatAmount(t.TotalAmount)}
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(out, []string{"CATEGORY", "TOTAL"}, rows))
}

func renderTable(w io.Writer, headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	if width, ok := terminalWidth(w); ok {
		t = t.Width(width)
	}
	return t.String()
}

// terminalWidth reports the width of w when it is a terminal.
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 0, false
	}
	return width, true
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
