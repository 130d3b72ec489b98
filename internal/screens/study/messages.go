package study

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/studygen"
)

// generatedMsg carries the result of one generation request. It reaches the
// study page even when rewards or settings are open on top of it.
type generatedMsg struct {
	Kind       studygen.Kind
	Flashcards []studygen.Flashcard
	Summary    string
	Quiz       []studygen.QuizQuestion
	Err        error
}

func (generatedMsg) Broadcast() {}

// spinnerTickMsg keeps the loading spinner turning while the page is
// covered.
type spinnerTickMsg struct {
	spinner.TickMsg
}

func (spinnerTickMsg) Broadcast() {}

func wrapSpinnerTick(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		msg := cmd()
		if tick, ok := msg.(spinner.TickMsg); ok {
			return spinnerTickMsg{tick}
		}
		return msg
	}
}
