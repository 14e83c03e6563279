package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/expense-tracker/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/expense-tracker/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/expense-tracker/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/expense-tracker/internal/adapters/driving/tui/views/addexpense"
	"github.com/custodia-labs/expense-tracker/internal/adapters/driving/tui/views/expenses"
	"github.com/custodia-labs/expense-tracker/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/expense-tracker/internal/adapters/driving/tui/views/summary"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	menuView     *menu.View
	expensesView *expenses.View
	summaryView  *summary.View
	addView      *addexpense.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		menuView:     menu.NewView(s),
		expensesView: expenses.NewView(s, km, ports.Expense),
		summaryView:  summary.NewView(s, km, ports.Expense),
		addView:      addexpense.NewView(s, km, ports.Expense),
		currentView:  messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.expensesView.WithContext(ctx)
	a.summaryView.WithContext(ctx)
	a.addView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle("expense-tracker")
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.expensesView.SetDimensions(msg.Width, msg.Height)
		a.summaryView.SetDimensions(msg.Width, msg.Height)
		a.addView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case messages.ViewChanged:
		return a, a.switchView(msg.View)
	}

	return a, a.forward(msg)
}

// switchView activates view and returns its focus command.
func (a *App) switchView(view messages.ViewType) tea.Cmd {
	a.currentView = view
	switch view {
	case messages.ViewExpenses:
		return a.expensesView.Activate()
	case messages.ViewSummary:
		return a.summaryView.Activate()
	case messages.ViewAddExpense:
		return a.addView.Activate()
	case messages.ViewMenu:
	}
	return nil
}

// forward delivers msg to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewExpenses:
		a.expensesView, cmd = a.expensesView.Update(msg)
	case messages.ViewSummary:
		a.summaryView, cmd = a.summaryView.Update(msg)
	case messages.ViewAddExpense:
		a.addView, cmd = a.addView.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewExpenses:
		return a.expensesView.View()
	case messages.ViewSummary:
		return a.summaryView.View()
	case messages.ViewAddExpense:
		return a.addView.View()
	case messages.ViewMenu:
	}
	return a.menuView.View()
}

// CurrentView returns the active view.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Run starts the TUI and blocks until the user quits.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && a.ctx.Err() != nil {
		return nil
	}
	return err
}
