package components

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// NotesEditor wraps bubbles/textarea with StudyBuddy styling.
type NotesEditor struct {
	Model textarea.Model
}

// NewNotesEditor creates a focused, empty editor.
func NewNotesEditor(placeholder string) NotesEditor {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Focus()
	return NotesEditor{Model: ta}
}

// Init returns the initial command.
func (n NotesEditor) Init() tea.Cmd {
	return n.Model.Focus()
}

// Update handles messages.
func (n NotesEditor) Update(msg tea.Msg) (NotesEditor, tea.Cmd) {
	var cmd tea.Cmd
	n.Model, cmd = n.Model.Update(msg)
	return n, cmd
}

// SetSize resizes the editor.
func (n *NotesEditor) SetSize(width, height int) {
	n.Model.SetWidth(width)
	n.Model.SetHeight(height)
}

// Focus gives the editor keyboard focus.
func (n *NotesEditor) Focus() tea.Cmd { return n.Model.Focus() }

// Blur removes keyboard focus.
func (n *NotesEditor) Blur() { n.Model.Blur() }

// Focused reports whether the editor has focus.
func (n NotesEditor) Focused() bool { return n.Model.Focused() }

// View renders the editor in a card.
func (n NotesEditor) View() string {
	border := theme.Border
	if n.Model.Focused() {
		border = theme.Primary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Render(n.Model.View())
}

// Value returns the notes text.
func (n NotesEditor) Value() string {
	return n.Model.Value()
}

// SetValue replaces the notes text.
func (n *NotesEditor) SetValue(s string) {
	n.Model.SetValue(s)
}
