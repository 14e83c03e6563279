package input

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/expense-tracker/internal/adapters/driving/tui/styles"
)

// FieldSpec describes one field of a Form.
type FieldSpec struct {
	Label       string
	Placeholder string
	Value       string
}

// Form is an ordered set of fields with a single focused field.
type Form struct {
	fields  []*Field
	focused int
	active  bool
}

// NewForm creates a form. The first field is focused once the form is
// activated.
func NewForm(s *styles.Styles, specs ...FieldSpec) *Form {
	fields := make([]*Field, len(specs))
	for i, spec := range specs {
		fields[i] = NewField(s, spec.Label, spec.Placeholder)
		if spec.Value != "" {
			fields[i].SetValue(spec.Value)
		}
	}
	return &Form{fields: fields}
}

// Activate focuses the current field.
func (f *Form) Activate() tea.Cmd {
	f.active = true
	if len(f.fields) == 0 {
		return nil
	}
	return f.fields[f.focused].Focus()
}

// Deactivate blurs every field.
func (f *Form) Deactivate() {
	f.active = false
	for _, field := range f.fields {
		field.Blur()
	}
}

// Active reports whether the form has focus.
func (f *Form) Active() bool {
	return f.active
}

// Next moves focus to the following field, wrapping around.
func (f *Form) Next() tea.Cmd {
	return f.move(1)
}

// Prev moves focus to the preceding field, wrapping around.
func (f *Form) Prev() tea.Cmd {
	return f.move(-1)
}

func (f *Form) move(delta int) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	f.fields[f.focused].Blur()
	f.focused = (f.focused + delta + len(f.fields)) % len(f.fields)
	if !f.active {
		return nil
	}
	return f.fields[f.focused].Focus()
}

// Focused returns the index of the focused field.
func (f *Form) Focused() int {
	return f.focused
}

// Update forwards msg to the focused field.
func (f *Form) Update(msg tea.Msg) (*Form, tea.Cmd) {
	if !f.active || len(f.fields) == 0 {
		return f, nil
	}
	var cmd tea.Cmd
	f.fields[f.focused], cmd = f.fields[f.focused].Update(msg)
	return f, cmd
}

// Value returns the trimmed value of field i.
func (f *Form) Value(i int) string {
	if i < 0 || i >= len(f.fields) {
		return ""
	}
	return strings.TrimSpace(f.fields[i].Value())
}

// SetValue sets the value of field i.
func (f *Form) SetValue(i int, value string) {
	if i < 0 || i >= len(f.fields) {
		return
	}
	f.fields[i].SetValue(value)
}

// Reset clears every field and focuses the first.
func (f *Form) Reset() {
	for _, field := range f.fields {
		field.Reset()
		field.Blur()
	}
	f.focused = 0
	if f.active && len(f.fields) > 0 {
		f.fields[0].Focus()
	}
}

// View renders the fields one per line.
func (f *Form) View() string {
	lines := make([]string, len(f.fields))
	for i, field := range f.fields {
		lines[i] = field.View()
	}
	return strings.Join(lines, "\n")
}
