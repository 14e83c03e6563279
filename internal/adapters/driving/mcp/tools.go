package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/expense-tracker/internal/core/domain"
)

// AddExpenseInput is the input schema for the add_expense tool.
type AddExpenseInput struct {
	Date        string  `json:"date" jsonschema:"date of the expense, ideally YYYY-MM-DD"`
	Amount      float64 `json:"amount" jsonschema:"amount spent"`
	Category    string  `json:"category" jsonschema:"primary category such as food or transport"`
	Subcategory string  `json:"subcategory,omitempty" jsonschema:"optional refinement of the category"`
	Note        string  `json:"note,omitempty" jsonschema:"optional free text"`
}

// AddExpenseOutput is the output schema for the add_expense tool.
type AddExpenseOutput struct {
	Status string `json:"status"`
	ID     int64  `json:"id"`
}

// ListExpensesInput is the input schema for the list_expenses tool.
type ListExpensesInput struct {
	StartDate string `json:"start_date" jsonschema:"first date of the range, inclusive"`
	EndDate   string `json:"end_date" jsonschema:"last date of the range, inclusive"`
}

// ListExpensesOutput is the output schema for the list_expenses tool.
type ListExpensesOutput struct {
	Expenses []ExpenseOutput `json:"expenses"`
}

// ExpenseOutput represents a single stored expense.
type ExpenseOutput struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
	Note        string  `json:"note"`
}

// SummarizeInput is the input schema for the summarize tool.
type SummarizeInput struct {
	StartDate string  `json:"start_date" jsonschema:"first date of the range, inclusive"`
	EndDate   string  `json:"end_date" jsonschema:"last date of the range, inclusive"`
	Category  *string `json:"category,omitempty" jsonschema:"restrict the summary to this category"`
}

// SummarizeOutput is the output schema for the summarize tool.
type SummarizeOutput struct {
	Totals []CategoryTotalOutput `json:"totals"`
}

// CategoryTotalOutput is the total spent in one category.
type CategoryTotalOutput struct {
	Category    string  `json:"category"`
	TotalAmount float64 `json:"total_amount"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_expense",
		Description: "Add a new expense entry to the database",
	}, instrument(s.metrics, "add_expense", s.handleAddExpense))

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_expenses",
		Description: "List expense entries within an inclusive date range",
	}, instrument(s.metrics, "list_expenses", s.handleListExpenses))

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "summarize",
		Description: "Summarize expenses by category within an inclusive date range",
	}, instrument(s.metrics, "summarize", s.handleSummarize))
}

// handleAddExpense handles the add_expense tool invocation.
func (s *Server) handleAddExpense(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddExpenseInput,
) (*mcp.CallToolResult, AddExpenseOutput, error) {
	id, err := s.ports.Expense.Add(ctx, domain.NewExpense{
		Date:        input.Date,
		Amount:      input.Amount,
		Category:    input.Category,
		Subcategory: input.Subcategory,
		Note:        input.Note,
	})
	if err != nil {
		return nil, AddExpenseOutput{}, err
	}

	return nil, AddExpenseOutput{Status: "ok", ID: id}, nil
}

// handleListExpenses handles the list_expenses tool invocation.
func (s *Server) handleListExpenses(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListExpensesInput,
) (*mcp.CallToolResult, ListExpensesOutput, error) {
	expenses, err := s.ports.Expense.List(ctx, domain.DateRange{Start: input.StartDate, End: input.EndDate})
	if err != nil {
		return nil, ListExpensesOutput{}, err
	}

	output := ListExpensesOutput{
		Expenses: make([]ExpenseOutput, len(expenses)),
	}
	for i := range expenses {
		output.Expenses[i] = ExpenseOutput{
			ID:          expenses[i].ID,
			Date:        expenses[i].Date,
			Amount:      expenses[i].Amount,
			Category:    expenses[i].Category,
			Subcategory: expenses[i].Subcategory,
			Note:        expenses[i].Note,
		}
	}

	res, err := arrayResult(output.Expenses)
	if err != nil {
		return nil, ListExpensesOutput{}, err
	}
	return res, output, nil
}

// handleSummarize handles the summarize tool invocation.
func (s *Server) handleSummarize(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SummarizeInput,
) (*mcp.CallToolResult, SummarizeOutput, error) {
	var filter domain.SummaryFilter
	if input.Category != nil {
		filter.Category = *input.Category
	}

	totals, err := s.ports.Expense.Summarize(ctx, domain.DateRange{Start: input.StartDate, End: input.EndDate}, filter)
	if err != nil {
		return nil, SummarizeOutput{}, err
	}

	output := SummarizeOutput{
		Totals: make([]CategoryTotalOutput, len(totals)),
	}
	for i, total := range totals {
		output.Totals[i] = CategoryTotalOutput{
			Category:    total.Category,
			TotalAmount: total.TotalAmount,
		}
	}

	res, err := arrayResult(output.Totals)
	if err != nil {
		return nil, SummarizeOutput{}, err
	}
	return res, output, nil
}

// arrayResult renders a sequence as the bare JSON array clients expect in
// the text content. Structured content still carries the wrapping object.
func arrayResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshalling result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil
}
