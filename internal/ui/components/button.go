package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// Button renders a key prompt such as "[Enter] Next". Screens handle the
// key themselves; the button only shows it.
type Button struct {
	Key    string
	Label  string
	Active bool
}

// NewButton creates an active button.
func NewButton(key, label string) Button {
	return Button{Key: key, Label: label, Active: true}
}

func (b Button) View() string {
	style := theme.ButtonInactive
	if b.Active {
		style = theme.ButtonActive
	}
	key := lipgloss.NewStyle().Bold(true).Render("[" + b.Key + "]")
	return style.Render(" " + key + " " + b.Label + " ")
}
