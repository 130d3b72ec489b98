// Package armory is the armor shop. Each owned piece grants one retry per
// boss battle.
package armory

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/points"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// ArmoryScreen lists armor pieces for sale.
type ArmoryScreen struct {
	sess     *session.Session
	selected int
	notice   string
	failed   bool
}

var _ screen.Screen = (*ArmoryScreen)(nil)
var _ screen.KeyHintProvider = (*ArmoryScreen)(nil)

// New creates the armory.
func New(sess *session.Session) *ArmoryScreen {
	return &ArmoryScreen{sess: sess}
}

func (s *ArmoryScreen) Init() tea.Cmd {
	return nil
}

func (s *ArmoryScreen) Title() string {
	return "Armory"
}

func (s *ArmoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Browse"},
		{Key: "Enter", Description: "Buy"},
		{Key: "Esc", Description: "Back"},
	}
}

// Notice returns the result of the last purchase attempt.
func (s *ArmoryScreen) Notice() string { return s.notice }

func (s *ArmoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	armor := s.sess.Shop.Catalog().Armor

	switch kmsg.String() {
	case "esc":
		return s, router.Back
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(armor)-1 {
			s.selected++
		}
	case "enter":
		if len(armor) > 0 {
			s.buy(armor[s.selected].ID, armor[s.selected].Name)
		}
	}
	return s, nil
}

func (s *ArmoryScreen) buy(id, name string) {
	bought, err := s.sess.BuyArmor(id)
	switch {
	case errors.Is(err, points.ErrInsufficientPoints):
		s.notice, s.failed = fmt.Sprintf("Not enough points for the %s.", name), true
	case err != nil:
		s.notice, s.failed = err.Error(), true
	case !bought:
		s.notice, s.failed = fmt.Sprintf("You already own the %s.", name), false
	default:
		s.notice, s.failed = fmt.Sprintf("Equipped the %s!", name), false
	}
}

func (s *ArmoryScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).
		Render(fmt.Sprintf("\nBalance: %d points     Armor: %d",
			s.sess.Ledger.Balance(), s.sess.Shop.ArmorCount())))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for i, a := range s.sess.Shop.Catalog().Armor {
		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}
		status := fmt.Sprintf("%d pts", a.Cost)
		if s.sess.Shop.Owns(a.ID) {
			status = "owned"
		}
		line := fmt.Sprintf("%s%-14s %10s", prefix, a.Name, status)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case s.sess.Shop.Owns(a.ID):
			style = style.Foreground(theme.Success)
		case i == s.selected:
			style = style.Foreground(theme.Primary).Bold(true)
		case a.Cost > s.sess.Ledger.Balance():
			style = style.Foreground(theme.TextDim)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	if s.notice != "" {
		fg := theme.Success
		if s.failed {
			fg = theme.Error
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(fg).
			Render(s.notice))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
		Render("Each piece absorbs one wrong answer per battle."))

	return b.String()
}
