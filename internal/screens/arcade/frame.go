package arcade

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

const arcadeTitleFull = ` ██████╗ ███████╗██╗    ██╗ █████╗ ██████╗ ██████╗ ███████╗
 ██╔══██╗██╔════╝██║    ██║██╔══██╗██╔══██╗██╔══██╗██╔════╝
 ██████╔╝█████╗  ██║ █╗ ██║███████║██████╔╝██║  ██║███████╗
 ██╔══██╗██╔══╝  ██║███╗██║██╔══██║██╔══██╗██║  ██║╚════██║
 ██║  ██║███████╗╚███╔███╔╝██║  ██║██║  ██║██████╔╝███████║
 ╚═╝  ╚═╝╚══════╝ ╚══╝╚══╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝ ╚══════╝`

const arcadeTitleCompact = "R · E · W · A · R · D · S"

// renderTitle returns the block-letter title, or the compact one when the
// content width cannot fit it.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitleFull
	if compact || cw < lipgloss.Width(arcadeTitleFull) {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar shows the balance, owned armor and the quiz size in a
// double-bordered box.
func renderStatsBar(balance, armor, questions, cw int, compact bool) string {
	pointsStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	armorStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	quizStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			pointsStyle.Render(fmt.Sprintf("★%d", balance)),
			armorStyle.Render(fmt.Sprintf("⛨%d", armor)),
			quizText(questions, true, quizStyle, dimStyle),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			pointsStyle.Render(fmt.Sprintf("★ %d POINTS", balance)),
			armorStyle.Render(fmt.Sprintf("⛨ %d ARMOR", armor)),
			quizText(questions, false, quizStyle, dimStyle),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func quizText(n int, compact bool, active, dim lipgloss.Style) string {
	if n == 0 {
		if compact {
			return dim.Render("?0")
		}
		return dim.Render("? NO QUIZ")
	}
	if compact {
		return active.Render(fmt.Sprintf("?%d", n))
	}
	return active.Render(fmt.Sprintf("? %d QUESTIONS", n))
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 30

func renderMenu(items []string, selected int, cw int, compact bool) string {
	var rows []string
	for i, label := range items {
		if compact {
			rows = append(rows, compactRow(label, i == selected))
			continue
		}
		rows = append(rows, components.ArcadeButton(label, i == selected, buttonWidth))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(rows, "\n"))
}

// compactRow renders a menu row without borders for very small terminals.
func compactRow(label string, selected bool) string {
	if selected {
		return lipgloss.NewStyle().
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			Bold(true).
			Render(" ▸ " + label + " ")
	}
	return lipgloss.NewStyle().
		Foreground(theme.Text).
		Render("   " + label)
}

func renderNotice(text string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ " + text)
}

func renderChestBox(variant ChestVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderChest(variant))
}
