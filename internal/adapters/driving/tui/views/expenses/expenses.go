// Package expenses provides the expense list view for the TUI.
package expenses

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/expense-tracker/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/expense-tracker/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/expense-tracker/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/expense-tracker/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/expense-tracker/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/expense-tracker/internal/core/domain"
	"github.com/custodia-labs/expense-tracker/internal/core/ports/driving"
)

// ErrNoExpenseService is returned when the view has no expense service.
var ErrNoExpenseService = errors.New("expense service not available")

const (
	fieldStart = iota
	fieldEnd
)

// View shows a date range form above the matching expenses.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	form      *input.Form
	table     table.Model
	statusbar *status.Bar

	service driving.ExpenseService
	ctx     context.Context

	expenses []domain.Expense
	width    int
	height   int
	ready    bool
	err      error
}

// NewView creates a new expense list view. The range defaults to the
// current month up to today.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.ExpenseService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	today := time.Now()
	form := input.NewForm(s,
		input.FieldSpec{Label: "Start date", Placeholder: "YYYY-MM-DD", Value: today.Format("2006-01") + "-01"},
		input.FieldSpec{Label: "End date", Placeholder: "YYYY-MM-DD", Value: today.Format("2006-01-02")},
	)

	t := table.New(
		table.WithColumns(columns(80)),
		table.WithHeight(10),
		table.WithStyles(s.Table()),
	)

	bar := status.NewBar(s, "expenses")
	bar.SetBindings(km.FormHelp())

	return &View{
		styles:    s,
		keymap:    km,
		form:      form,
		table:     t,
		statusbar: bar,
		service:   service,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Activate focuses the range form.
func (v *View) Activate() tea.Cmd {
	v.table.Blur()
	v.statusbar.SetBindings(v.keymap.FormHelp())
	return v.form.Activate()
}

// Update handles messages for the expense view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ExpensesLoaded:
		v.handleLoaded(msg)
		return v, nil
	}

	var cmd tea.Cmd
	if v.form.Active() {
		v.form, cmd = v.form.Update(msg)
	}
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	if keymap.Matches(keyStr, v.keymap.Back) {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if !v.form.Active() {
		if keymap.Matches(keyStr, v.keymap.Edit) {
			return v, v.Activate()
		}
		var cmd tea.Cmd
		v.table, cmd = v.table.Update(msg)
		return v, cmd
	}

	switch {
	case keymap.Matches(keyStr, v.keymap.NextField):
		return v, v.form.Next()
	case keymap.Matches(keyStr, v.keymap.PrevField):
		return v, v.form.Prev()
	case keymap.Matches(keyStr, v.keymap.Submit):
		v.statusbar.SetState(status.StateLoading)
		return v, v.load(v.Range())
	}

	var cmd tea.Cmd
	v.form, cmd = v.form.Update(msg)
	return v, cmd
}

// Range returns the date range currently entered in the form.
func (v *View) Range() domain.DateRange {
	return domain.DateRange{Start: v.form.Value(fieldStart), End: v.form.Value(fieldEnd)}
}

// SetRange fills the form.
func (v *View) SetRange(r domain.DateRange) {
	v.form.SetValue(fieldStart, r.Start)
	v.form.SetValue(fieldEnd, r.End)
}

func (v *View) load(r domain.DateRange) tea.Cmd {
	return func() tea.Msg {
		if v.service == nil {
			return messages.ExpensesLoaded{Range: r, Err: ErrNoExpenseService}
		}
		expenses, err := v.service.List(v.ctx, r)
		return messages.ExpensesLoaded{Range: r, Expenses: expenses, Err: err}
	}
}

func (v *View) handleLoaded(msg messages.ExpensesLoaded) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.Error(msg.Err)
		return
	}

	v.err = nil
	v.expenses = msg.Expenses
	rows := make([]table.Row, len(msg.Expenses))
	for i, e := range msg.Expenses {
		rows[i] = table.Row{
			strconv.FormatInt(e.ID, 10),
			e.Date,
			strconv.FormatFloat(e.Amount, 'f', 2, 64),
			e.Category,
			e.Subcategory,
			e.Note,
		}
	}
	v.table.SetRows(rows)
	v.table.GotoTop()

	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetCount(len(msg.Expenses))
	v.statusbar.SetBindings(v.keymap.ResultsHelp())

	v.form.Deactivate()
	v.table.Focus()
}

// View renders the expense view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{
		v.styles.Title.Render("Expenses"),
		"",
		v.form.View(),
		"",
		v.table.View(),
		"",
		v.statusbar.View(),
	}
	return strings.Join(sections, "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.table.SetColumns(columns(width))
	// Title, form and status bar take roughly twelve lines.
	v.table.SetHeight(max(height-12, 3))
	v.statusbar.SetWidth(width)
}

// Expenses returns the last loaded expenses.
func (v *View) Expenses() []domain.Expense {
	return v.expenses
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

// FormActive reports whether the range form has focus.
func (v *View) FormActive() bool {
	return v.form.Active()
}

func columns(width int) []table.Column {
	note := max(width-6-12-12-14-14-12, 10)
	return []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Date", Width: 12},
		{Title: "Amount", Width: 12},
		{Title: "Category", Width: 14},
		{Title: "Subcategory", Width: 14},
		{Title: "Note", Width: note},
	}
}
