package theme

import (
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"
)

// Mode names a palette.
type Mode string

const (
	Dark  Mode = "dark"
	Light Mode = "light"
)

// Palette is one full set of colors.
type Palette struct {
	Primary, Secondary, Accent color.Color
	Success, Error             color.Color
	Text, TextDim              color.Color
	BgDark, BgCard, Border     color.Color
	ArcadeYellow, ArcadeCyan   color.Color
}

var palettes = map[Mode]Palette{
	Dark: {
		Primary:      lipgloss.Color("#8B5CF6"),
		Secondary:    lipgloss.Color("#14B8A6"),
		Accent:       lipgloss.Color("#F97316"),
		Success:      lipgloss.Color("#22C55E"),
		Error:        lipgloss.Color("#F43F5E"),
		Text:         lipgloss.Color("#F8FAFC"),
		TextDim:      lipgloss.Color("#94A3B8"),
		BgDark:       lipgloss.Color("#0F172A"),
		BgCard:       lipgloss.Color("#1E293B"),
		Border:       lipgloss.Color("#334155"),
		ArcadeYellow: lipgloss.Color("#FACC15"),
		ArcadeCyan:   lipgloss.Color("#22D3EE"),
	},
	Light: {
		Primary:      lipgloss.Color("#6D28D9"),
		Secondary:    lipgloss.Color("#0F766E"),
		Accent:       lipgloss.Color("#C2410C"),
		Success:      lipgloss.Color("#15803D"),
		Error:        lipgloss.Color("#BE123C"),
		Text:         lipgloss.Color("#0F172A"),
		TextDim:      lipgloss.Color("#475569"),
		BgDark:       lipgloss.Color("#F8FAFC"),
		BgCard:       lipgloss.Color("#E2E8F0"),
		Border:       lipgloss.Color("#CBD5E1"),
		ArcadeYellow: lipgloss.Color("#CA8A04"),
		ArcadeCyan:   lipgloss.Color("#0E7490"),
	},
}

// Active colors. Set swaps them; styles built from them are rebuilt too.
var (
	Primary      color.Color
	Secondary    color.Color
	Accent       color.Color
	Success      color.Color
	Error        color.Color
	Text         color.Color
	TextDim      color.Color
	BgDark       color.Color
	BgCard       color.Color
	Border       color.Color
	ArcadeYellow color.Color
	ArcadeCyan   color.Color
)

var current = Dark

// Styles derived from the active colors.
var (
	Correct        lipgloss.Style
	Incorrect      lipgloss.Style
	ButtonActive   lipgloss.Style
	ButtonInactive lipgloss.Style
)

func init() {
	apply(palettes[Dark])
}

// ParseMode validates a stored or user supplied theme name.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if _, ok := palettes[m]; !ok {
		return "", fmt.Errorf("unknown theme %q (want dark or light)", s)
	}
	return m, nil
}

// Set switches the active palette.
func Set(m Mode) error {
	p, ok := palettes[m]
	if !ok {
		return fmt.Errorf("unknown theme %q", m)
	}
	current = m
	apply(p)
	return nil
}

// Current returns the active mode.
func Current() Mode { return current }

// Toggle flips between dark and light and returns the new mode.
func Toggle() Mode {
	next := Light
	if current == Light {
		next = Dark
	}
	Set(next)
	return next
}

func apply(p Palette) {
	Primary, Secondary, Accent = p.Primary, p.Secondary, p.Accent
	Success, Error = p.Success, p.Error
	Text, TextDim = p.Text, p.TextDim
	BgDark, BgCard, Border = p.BgDark, p.BgCard, p.Border
	ArcadeYellow, ArcadeCyan = p.ArcadeYellow, p.ArcadeCyan

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)
	Incorrect = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	ButtonActive = lipgloss.NewStyle().
		Background(Primary).
		Foreground(Text).
		Bold(true).
		Padding(0, 2)
	ButtonInactive = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
}
