package study

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/studygen"
	"github.com/abhisek/studybuddy/internal/timer"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

const timerPanelWidth = 34

func (s *StudyScreen) View(width, height int) string {
	mainWidth := width
	var side string
	if s.sess.ShowTimer {
		side = s.renderTimerPanel()
		mainWidth = width - lipgloss.Width(side) - 2
	}

	tabs := s.renderTabs(mainWidth)
	status := s.renderStatus(mainWidth)
	bodyHeight := height - lipgloss.Height(tabs) - lipgloss.Height(status) - 2
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	var body string
	switch s.tab {
	case TabNotes:
		s.editor.SetSize(mainWidth-2, bodyHeight-2)
		body = s.editor.View()
	case TabFlashcards:
		body = s.renderFlashcards(mainWidth)
	case TabSummary:
		body = s.renderSummary(mainWidth, bodyHeight)
	case TabQuiz:
		body = s.renderQuiz(mainWidth)
	}

	main := lipgloss.JoinVertical(lipgloss.Left, tabs, "", body, "", status)
	if side == "" {
		return main
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, main, "  ", side)
}

func (s *StudyScreen) renderTabs(width int) string {
	parts := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		label := name
		if k, ok := kindFor(Tab(i)); ok && s.loading[k] {
			label += " " + s.spinner.View()
		}
		style := lipgloss.NewStyle().Padding(0, 2).Foreground(theme.TextDim)
		if Tab(i) == s.tab {
			style = style.Foreground(theme.BgDark).Background(theme.Primary).Bold(true)
		}
		parts = append(parts, style.Render(label))
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(parts, " "))
}

func kindFor(t Tab) (studygen.Kind, bool) {
	switch t {
	case TabFlashcards:
		return studygen.KindFlashcards, true
	case TabSummary:
		return studygen.KindSummary, true
	case TabQuiz:
		return studygen.KindQuiz, true
	}
	return "", false
}

// renderStatus shows inline generation errors, or a hint when no LLM is
// configured.
func (s *StudyScreen) renderStatus(width int) string {
	var lines []string
	for _, k := range studygen.Kinds {
		if msg := s.errs[k]; msg != "" {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Error).Render("✗ "+msg))
		}
	}
	if len(lines) == 0 && s.opts.Generator == nil {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Accent).
			Render("⚠ Set an LLM API key to generate study material (see studybuddy --help)"))
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

func (s *StudyScreen) renderFlashcards(width int) string {
	cards := s.sess.Materials.Flashcards
	if len(cards) == 0 {
		return emptyState(width, "No flashcards yet. Write some notes and press Ctrl+F.")
	}
	c := cards[s.card]

	side, text, color := "Question", c.Question, theme.Primary
	if s.flipped {
		side, text, color = "Answer", c.Answer, theme.Success
	}

	cw := components.ContentWidth(width)
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(2, 2).
		Render(lipgloss.NewStyle().Foreground(theme.TextDim).Render(side) + "\n\n" +
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(text))

	pos := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Card %d of %d", s.card+1, len(cards)))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, card, "", pos))
}

func (s *StudyScreen) renderSummary(width, height int) string {
	if s.sess.Materials.Summary == "" {
		return emptyState(width, "No summary yet. Write some notes and press Ctrl+S.")
	}
	s.summary.SetWidth(width)
	s.summary.SetHeight(height)
	return s.summary.View()
}

func (s *StudyScreen) renderQuiz(width int) string {
	if s.run == nil {
		return emptyState(width, "No quiz yet. Write some notes and press Ctrl+Q.")
	}

	if s.run.Finished() {
		score := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).
			Render(fmt.Sprintf("You scored %d / %d (%d%%)", s.run.Score(), s.run.Total(), s.run.Percent()))
		hint := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("Press r to try again")
		return components.ArcadeCard(score+"\n\n"+hint, components.ContentWidth(width))
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Question %d of %d", s.run.Index()+1, s.run.Total())))
	b.WriteString("\n\n")
	b.WriteString(s.mc.View())

	if s.run.Answered() {
		b.WriteString("\n")
		if s.mc.IsCorrect() {
			b.WriteString(theme.Correct.Render("Correct!"))
		} else {
			q, _ := s.run.Current()
			b.WriteString(theme.Incorrect.Render("Not quite. The answer is " + q.CorrectAnswer + "."))
		}
		next := "Next"
		if s.run.IsLast() {
			next = "Finish"
		}
		b.WriteString("\n\n")
		b.WriteString(components.NewButton("Enter", next).View())
	}
	return lipgloss.NewStyle().Width(width).Render(b.String())
}

func (s *StudyScreen) renderTimerPanel() string {
	tr := s.sess.Tracker

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Study time"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(timer.FormatClock(tr.Elapsed())))
	b.WriteString("\n\n")

	if tr.PomodoroEnabled() {
		label, color := "Focus", theme.Secondary
		if tr.Mode() == timer.ModeBreak {
			label, color = "Break", theme.Accent
		}
		b.WriteString(lipgloss.NewStyle().Foreground(color).Bold(true).
			Render(fmt.Sprintf("🍅 %s %s", label, timer.FormatCountdown(tr.TimeLeft()))))
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Pomodoro off (Ctrl+P)"))
	}
	b.WriteString("\n\n")

	statusColor := theme.Success
	if !tr.Running() {
		statusColor = theme.Accent
	}
	b.WriteString(lipgloss.NewStyle().Foreground(statusColor).Width(timerPanelWidth - 4).Render(tr.Status()))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(timerPanelWidth).
		Padding(1, 1).
		Render(b.String())
}

func emptyState(width int, msg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Italic(true).
		Render("\n\n" + msg)
}
