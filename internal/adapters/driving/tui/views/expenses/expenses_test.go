package expenses

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/expense-tracker/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/expense-tracker/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/expense-tracker/internal/core/domain"
	"github.com/custodia-labs/expense-tracker/internal/core/services"
)

func newTestView(t *testing.T) *View {
	t.Helper()
	service := services.NewExpenseService(memory.NewExpenseStore())
	for _, e := range []domain.NewExpense{
		{Date: "2024-01-05", Amount: 12.5, Category: "food", Note: "lunch"},
		{Date: "2024-01-10", Amount: 40, Category: "transport"},
		{Date: "2024-02-01", Amount: 3, Category: "food"},
	} {
		_, err := service.Add(context.Background(), e)
		require.NoError(t, err)
	}

	view := NewView(nil, nil, service)
	view.SetDimensions(100, 30)
	view.Activate()
	return view
}

func submit(t *testing.T, view *View) {
	t.Helper()
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	view.Update(cmd())
}

func TestNewView_DefaultRange(t *testing.T) {
	view := NewView(nil, nil, nil)

	r := view.Range()
	assert.Len(t, r.Start, len("2006-01-02"))
	assert.Len(t, r.End, len("2006-01-02"))
	assert.LessOrEqual(t, r.Start, r.End)
}

func TestView_SubmitLoadsExpenses(t *testing.T) {
	view := newTestView(t)
	view.SetRange(domain.DateRange{Start: "2024-01-01", End: "2024-01-31"})

	submit(t, view)

	require.NoError(t, view.Err())
	require.Len(t, view.Expenses(), 2)
	assert.Equal(t, int64(1), view.Expenses()[0].ID)
	assert.Equal(t, int64(2), view.Expenses()[1].ID)
	assert.False(t, view.FormActive(), "results take focus after loading")

	out := view.View()
	assert.Contains(t, out, "lunch")
	assert.Contains(t, out, "40.00")
	assert.Contains(t, out, "2 expenses")
}

func TestView_EditReturnsToForm(t *testing.T) {
	view := newTestView(t)
	view.SetRange(domain.DateRange{Start: "2024-01-01", End: "2024-01-31"})
	submit(t, view)

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})

	assert.True(t, view.FormActive())
}

func TestView_TabMovesBetweenFields(t *testing.T) {
	view := newTestView(t)
	view.SetRange(domain.DateRange{})

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2024-01-01")})
	view.Update(tea.KeyMsg{Type: tea.KeyTab})
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2024-01-09")})

	assert.Equal(t, domain.DateRange{Start: "2024-01-01", End: "2024-01-09"}, view.Range())

	submit(t, view)
	require.Len(t, view.Expenses(), 1)
}

func TestView_EmptyRange(t *testing.T) {
	view := newTestView(t)
	view.SetRange(domain.DateRange{Start: "2030-01-01", End: "2030-12-31"})

	submit(t, view)

	require.NoError(t, view.Err())
	assert.Empty(t, view.Expenses())
	assert.Contains(t, view.View(), "0 expenses")
}

func TestView_LoadError(t *testing.T) {
	view := newTestView(t)

	view.Update(messages.ExpensesLoaded{Err: errors.New("database is locked")})

	assert.EqualError(t, view.Err(), "database is locked")
	assert.True(t, view.FormActive())
	assert.Contains(t, view.View(), "database is locked")
}

func TestView_NoService(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 24)
	view.Activate()

	submit(t, view)

	assert.ErrorIs(t, view.Err(), ErrNoExpenseService)
}

func TestView_EscGoesBack(t *testing.T) {
	view := newTestView(t)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}
