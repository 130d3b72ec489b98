package arena

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/battle"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

const bossArt = `   ▄▀▀▀▀▀▀▀▄
  █  ▀▄ ▄▀  █
  █   ▄▄▄   █
   ▀▄▄▄▄▄▄▄▀
   ╱╱ ▐█▌ ╲╲`

const bossDefeated = `   ▄▀▀▀▀▀▀▀▄
  █  ✕   ✕  █
  █   ───   █
   ▀▄▄▄▄▄▄▄▀`

func (a *ArenaScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var sections []string

	art, fg := bossArt, theme.Error
	if a.enc.State() == battle.StateWon {
		art, fg = bossDefeated, theme.TextDim
	}
	sections = append(sections, lipgloss.NewStyle().Foreground(fg).Render(art))

	sections = append(sections, a.renderHealth(cw))

	if msg := a.enc.Message(); msg != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Accent).Italic(true).Render(msg))
	}

	switch {
	case a.enc.Over():
		sections = append(sections, a.renderOutcome())
	case a.enc.Phase() == battle.PhaseResolving:
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.TextDim).Render("The blow lands..."))
	case a.enc.Phase() == battle.PhaseResolved:
		sections = append(sections, components.NewButton("Enter", "Next").View())
	default:
		header := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			fmt.Sprintf("Question %d of %d", a.enc.QuestionIndex()+1, a.enc.QuestionCount()))
		sections = append(sections, header, a.mc.View())
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, strings.Join(sections, "\n\n")))
}

func (a *ArenaScreen) renderHealth(cw int) string {
	barWidth := max(cw-4, 20)
	boss := components.NewMeter("Boss", a.enc.BossHealth(), a.enc.MaxBossHealth(), barWidth)
	player := components.NewMeter("You ", a.enc.PlayerHealth(), a.enc.MaxPlayerHealth(), barWidth)

	armor := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Render(
		fmt.Sprintf("⛨ Armor retries left: %d", a.enc.ArmorRetries()))

	return strings.Join([]string{boss.View(), player.View(), armor}, "\n")
}

func (a *ArenaScreen) renderOutcome() string {
	title := lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("Victory! The boss is defeated.")
	if a.enc.State() == battle.StateLost {
		title = lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("Defeated! Review your notes and try again.")
	}
	hint := lipgloss.NewStyle().Foreground(theme.TextDim).Render("Press r to play again")
	return title + "\n\n" + hint
}
