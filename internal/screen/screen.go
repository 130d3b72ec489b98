package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Overlay is implemented by screens drawn over the current page, such as
// settings. The page underneath stays the current page.
type Overlay interface {
	Overlay() bool
}

// StudyPage is implemented by the page whose visibility drives the study
// timer.
type StudyPage interface {
	StudyPage() bool
}

// Broadcast is implemented by messages addressed to a screen that may not
// be on top, such as the result of a background request. The router hands
// them to every open screen.
type Broadcast interface {
	Broadcast()
}
