package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// Meter shows a whole-number quantity against its maximum, one block per
// point when it fits. Health bars and other small counters use it.
type Meter struct {
	Label string
	Value int
	Max   int
	Width int
}

// NewMeter creates a meter. Value is clamped into [0, max].
func NewMeter(label string, value, maxValue, width int) Meter {
	return Meter{Label: label, Value: min(max(value, 0), maxValue), Max: maxValue, Width: width}
}

// fill is the meter colour, which turns from healthy to warning to critical.
func (m Meter) fill() lipgloss.Style {
	s := lipgloss.NewStyle()
	switch {
	case m.Max <= 0 || m.Value*3 <= m.Max:
		return s.Background(theme.Error)
	case m.Value*3 <= m.Max*2:
		return s.Background(theme.ArcadeYellow)
	}
	return s.Background(theme.Success)
}

func (m Meter) View() string {
	label := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Label)
	count := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(" %d/%d", m.Value, m.Max))

	barWidth := max(m.Width-lipgloss.Width(label)-lipgloss.Width(count)-2, 4)
	filled := 0
	if m.Max > 0 {
		filled = barWidth * m.Value / m.Max
	}

	bar := m.fill().Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))
	return label + "  " + bar + count
}
