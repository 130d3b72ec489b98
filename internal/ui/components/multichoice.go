package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// MultiChoice asks one quiz question. The cursor moves with the arrow keys
// (wrapping at both ends); enter, a letter or a digit locks in an answer.
// Once answered it ignores further input until Reset.
type MultiChoice struct {
	Question string
	Options  []string
	// Correct is the index of the right option, or -1 to hide the
	// right/wrong colouring after answering.
	Correct int

	cursor int
	chosen int
}

// NewMultiChoice creates an unanswered question.
func NewMultiChoice(question string, options []string, correct int) MultiChoice {
	return MultiChoice{Question: question, Options: options, Correct: correct, chosen: -1}
}

// Update handles navigation and selection keys.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || m.Answered() || len(m.Options) == 0 {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		m.cursor = (m.cursor + len(m.Options) - 1) % len(m.Options)
	case "down", "j":
		m.cursor = (m.cursor + 1) % len(m.Options)
	case "enter":
		m.chosen = m.cursor
	default:
		if i, ok := shortcutIndex(key); ok && i < len(m.Options) {
			m.cursor, m.chosen = i, i
		}
	}
	return m, nil
}

// shortcutIndex maps "a".."z" and "1".."9" to option indexes.
func shortcutIndex(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	switch c := key[0]; {
	case c >= 'a' && c <= 'z':
		return int(c - 'a'), true
	case c >= '1' && c <= '9':
		return int(c - '1'), true
	}
	return 0, false
}

// Answered reports whether an option has been locked in.
func (m MultiChoice) Answered() bool { return m.chosen >= 0 }

// Chosen returns the text of the locked-in option.
func (m MultiChoice) Chosen() (string, bool) {
	if !m.Answered() {
		return "", false
	}
	return m.Options[m.chosen], true
}

// IsCorrect reports whether the locked-in option is the right one.
func (m MultiChoice) IsCorrect() bool {
	return m.Answered() && m.chosen == m.Correct
}

// Reset reopens the question with the cursor on the first option.
func (m *MultiChoice) Reset() {
	m.cursor, m.chosen = 0, -1
}

func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n")

	for i, opt := range m.Options {
		marker := "  "
		if i == m.cursor && !m.Answered() {
			marker = "▸ "
		}
		line := marker + string(rune('A'+i)) + ")  " + opt
		b.WriteString("\n")
		b.WriteString(m.optionStyle(i).Render(line))
	}
	return b.String()
}

func (m MultiChoice) optionStyle(i int) lipgloss.Style {
	s := lipgloss.NewStyle()
	switch {
	case !m.Answered() && i == m.cursor:
		return s.Foreground(theme.Primary).Bold(true)
	case !m.Answered():
		return s.Foreground(theme.Text)
	case m.Correct >= 0 && i == m.Correct:
		return s.Foreground(theme.Success).Bold(true)
	case i == m.chosen:
		return s.Foreground(theme.Error).Bold(true)
	}
	return s.Foreground(theme.TextDim)
}
