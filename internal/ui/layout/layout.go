// Package layout draws the chrome around every screen: a header with the
// points balance, the screen content and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// The smallest terminal the app draws in.
const (
	MinWidth  = 60
	MinHeight = 20
)

const hintGap = "   "

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Header is the top bar.
type Header struct {
	Title   string
	Balance int
	// Clock is the study time shown next to the balance; empty hides it.
	Clock string
}

// IsTooSmall reports whether the terminal is below MinWidth x MinHeight.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(fmt.Sprintf(
			"StudyBuddy needs at least %dx%d.\n\nThis terminal is %dx%d.",
			MinWidth, MinHeight, width, height)))
}

func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderHeader draws the app name on the left, the screen title in the
// middle and the balance (with the clock, if any) on the right.
func RenderHeader(h Header, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" StudyBuddy")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(h.Title)

	right := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).
		Render(fmt.Sprintf("★ %d pts ", h.Balance))
	if h.Clock != "" {
		right = lipgloss.NewStyle().Foreground(theme.TextDim).Render("⏱ "+h.Clock+"  ") + right
	}

	inner := max(width-4, 0)
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	gapL := max((inner-cw)/2-lw, 1)
	gapR := max(inner-lw-gapL-cw-rw, 1)

	return bar(width).Render(left + strings.Repeat(" ", gapL) + center + strings.Repeat(" ", gapR) + right)
}

// RenderFooter draws the hints left to right, dropping trailing hints that
// do not fit on one line.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	budget := max(width-6, 0)
	var b strings.Builder
	b.WriteString(" ")
	used := 0
	for i, h := range hints {
		part := keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		w := lipgloss.Width(part)
		if i > 0 {
			w += len(hintGap)
		}
		if used+w > budget {
			break
		}
		if i > 0 {
			b.WriteString(hintGap)
		}
		b.WriteString(part)
		used += w
	}
	return bar(width).Render(b.String())
}

// Compose stacks header, content and footer, padding the content to fill
// the height left between them.
func Compose(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(contentHeight).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
