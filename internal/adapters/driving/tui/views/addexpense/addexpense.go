// Package addexpense provides the form for recording an expense.
package addexpense

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/expense-tracker/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/expense-tracker/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/expense-tracker/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/expense-tracker/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/expense-tracker/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/expense-tracker/internal/core/domain"
	"github.com/custodia-labs/expense-tracker/internal/core/ports/driving"
)

// Form errors.
var (
	ErrNoExpenseService = errors.New("expense service not available")
	ErrMissingDate      = errors.New("date is required")
	ErrMissingCategory  = errors.New("category is required")
	ErrInvalidAmount    = errors.New("amount must be a finite number")
)

const (
	fieldDate = iota
	fieldAmount
	fieldCategory
	fieldSubcategory
	fieldNote
)

// View is the add expense form.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	form      *input.Form
	statusbar *status.Bar

	service driving.ExpenseService
	ctx     context.Context

	lastID int64
	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new add expense view with today's date filled in.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.ExpenseService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, "")
	bar.SetBindings(km.FormHelp())

	return &View{
		styles:    s,
		keymap:    km,
		form:      newForm(s),
		statusbar: bar,
		service:   service,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

func newForm(s *styles.Styles) *input.Form {
	return input.NewForm(s,
		input.FieldSpec{Label: "Date", Placeholder: "YYYY-MM-DD", Value: time.Now().Format("2006-01-02")},
		input.FieldSpec{Label: "Amount", Placeholder: "12.50"},
		input.FieldSpec{Label: "Category", Placeholder: "food"},
		input.FieldSpec{Label: "Subcategory", Placeholder: "optional"},
		input.FieldSpec{Label: "Note", Placeholder: "optional"},
	)
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Activate focuses the form.
func (v *View) Activate() tea.Cmd {
	return v.form.Activate()
}

// Update handles messages for the add expense view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ExpenseAdded:
		v.handleAdded(msg)
		return v, nil
	}

	var cmd tea.Cmd
	v.form, cmd = v.form.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keymap.Matches(keyStr, v.keymap.NextField):
		return v, v.form.Next()
	case keymap.Matches(keyStr, v.keymap.PrevField):
		return v, v.form.Prev()
	case keymap.Matches(keyStr, v.keymap.Submit):
		expense, err := v.Expense()
		if err != nil {
			v.err = err
			v.statusbar.Error(err)
			return v, nil
		}
		v.statusbar.SetState(status.StateLoading)
		return v, v.save(expense)
	}

	var cmd tea.Cmd
	v.form, cmd = v.form.Update(msg)
	return v, cmd
}

// Expense builds the expense described by the form. Only presence of the
// date and a finite numeric amount are checked.
func (v *View) Expense() (domain.NewExpense, error) {
	date := v.form.Value(fieldDate)
	if date == "" {
		return domain.NewExpense{}, ErrMissingDate
	}
	amount, err := strconv.ParseFloat(v.form.Value(fieldAmount), 64)
	if err != nil || math.IsInf(amount, 0) || math.IsNaN(amount) {
		return domain.NewExpense{}, ErrInvalidAmount
	}
	category := v.form.Value(fieldCategory)
	if category == "" {
		return domain.NewExpense{}, ErrMissingCategory
	}

	return domain.NewExpense{
		Date:        date,
		Amount:      amount,
		Category:    category,
		Subcategory: v.form.Value(fieldSubcategory),
		Note:        v.form.Value(fieldNote),
	}, nil
}

// SetField fills field i of the form, in display order.
func (v *View) SetField(i int, value string) {
	v.form.SetValue(i, value)
}

func (v *View) save(expense domain.NewExpense) tea.Cmd {
	return func() tea.Msg {
		if v.service == nil {
			return messages.ExpenseAdded{Err: ErrNoExpenseService}
		}
		id, err := v.service.Add(v.ctx, expense)
		return messages.ExpenseAdded{ID: id, Err: err}
	}
}

func (v *View) handleAdded(msg messages.ExpenseAdded) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.Error(msg.Err)
		return
	}

	v.err = nil
	v.lastID = msg.ID
	v.statusbar.SetState(status.StateSaved)
	v.statusbar.SetMessage(fmt.Sprintf("Added expense %d", msg.ID))

	// Keep the date so several expenses for one day are quick to enter.
	date := v.form.Value(fieldDate)
	v.form.Reset()
	v.form.SetValue(fieldDate, date)
}

// View renders the add expense view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{
		v.styles.Title.Render("Add expense"),
		"",
		v.form.View(),
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
	v.statusbar.SetWidth(width)
}

// LastID returns the ID of the most recently added expense.
func (v *View) LastID() int64 {
	return v.lastID
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
