// Package summary provides the per-category totals view for the TUI.
package summary

import (
	"context"
	"errors"
	"fmt"
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
	fieldCategory
)

// View shows a range and category form above per-category totals.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	form      *input.Form
	table     table.Model
	statusbar *status.Bar

	service driving.ExpenseService
	ctx     context.Context

	totals []domain.CategoryTotal
	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new summary view. The range defaults to the current
// month up to today.
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
		input.FieldSpec{Label: "Category", Placeholder: "all categories"},
	)

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Category", Width: 24},
			{Title: "Total", Width: 14},
		}),
		table.WithHeight(10),
		table.WithStyles(s.Table()),
	)

	bar := status.NewBar(s, "categories")
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

// Activate focuses the form.
func (v *View) Activate() tea.Cmd {
	v.table.Blur()
	v.statusbar.SetBindings(v.keymap.FormHelp())
	return v.form.Activate()
}

// Update handles messages for the summary view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SummaryLoaded:
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
		return v, v.load(v.Range(), v.Filter())
	}

	var cmd tea.Cmd
	v.form, cmd = v.form.Update(msg)
	return v, cmd
}

// Range returns the date range currently entered in the form.
func (v *View) Range() domain.DateRange {
	return domain.DateRange{Start: v.form.Value(fieldStart), End: v.form.Value(fieldEnd)}
}

// Filter returns the category filter currently entered in the form.
func (v *View) Filter() domain.SummaryFilter {
	return domain.SummaryFilter{Category: v.form.Value(fieldCategory)}
}

// SetQuery fills the form.
func (v *View) SetQuery(r domain.DateRange, filter domain.SummaryFilter) {
	v.form.SetValue(fieldStart, r.Start)
	v.form.SetValue(fieldEnd, r.End)
	v.form.SetValue(fieldCategory, filter.Category)
}

func (v *View) load(r domain.DateRange, filter domain.SummaryFilter) tea.Cmd {
	return func() tea.Msg {
		if v.service == nil {
			return messages.SummaryLoaded{Range: r, Err: ErrNoExpenseService}
		}
		totals, err := v.service.Summarize(v.ctx, r, filter)
		return messages.SummaryLoaded{Range: r, Totals: totals, Err: err}
	}
}

func (v *View) handleLoaded(msg messages.SummaryLoaded) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.Error(msg.Err)
		return
	}

	v.err = nil
	v.totals = msg.Totals
	rows := make([]table.Row, len(msg.Totals))
	for i, t := range msg.Totals {
		rows[i] = table.Row{t.Category, strconv.FormatFloat(t.TotalAmount, 'f', 2, 64)}
	}
	v.table.SetRows(rows)
	v.table.GotoTop()

	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetCount(len(msg.Totals))
	v.statusbar.SetBindings(v.keymap.ResultsHelp())

	v.form.Deactivate()
	v.table.Focus()
}

// GrandTotal sums the loaded category totals.
func (v *View) GrandTotal() float64 {
	var sum float64
	for _, t := range v.totals {
		sum += t.TotalAmount
	}
	return sum
}

// View renders the summary view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{
		v.styles.Title.Render("Summary"),
		"",
		v.form.View(),
		"",
		v.table.View(),
	}
	if len(v.totals) > 0 {
		sections = append(sections, v.styles.Subtitle.Render(fmt.Sprintf("Total: %.2f", v.GrandTotal())))
	}
	sections = append(sections, "", v.statusbar.View())
	return strings.Join(sections, "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.table.SetHeight(max(height-14, 3))
	v.statusbar.SetWidth(width)
}

// Totals returns the last loaded totals.
func (v *View) Totals() []domain.CategoryTotal {
	return v.totals
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

// FormActive reports whether the form has focus.
func (v *View) FormActive() bool {
	return v.form.Active()
}
