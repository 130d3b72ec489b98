// Package history lists the audit trail: points changes, chest rewards and
// battle results.
package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/store"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// Tab is one list of the history screen.
type Tab int

const (
	TabPoints Tab = iota
	TabRewards
	TabBattles
)

var tabNames = []string{"Points", "Rewards", "Battles"}

func (t Tab) String() string { return tabNames[t] }

// limit caps each list.
const limit = 100

type historyLoadedMsg struct {
	Points  []store.PointsEventRecord
	Rewards []store.RewardEventRecord
	Battles []store.BattleEventRecord
	Err     error
}

// line is one rendered row and its color.
type line struct {
	text string
	fg   color.Color
}

// HistoryScreen displays the audit trail, newest first.
type HistoryScreen struct {
	eventRepo    store.EventRepo
	tab          Tab
	lines        [3][]line
	scrollOffset int
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{eventRepo: eventRepo}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		ctx := context.Background()
		opts := store.QueryOpts{Limit: limit}

		pts, err := repo.QueryPointsEvents(ctx, opts)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		rewards, err := repo.QueryRewardEvents(ctx, opts)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		battles, err := repo.QueryBattleEvents(ctx, opts)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Points: pts, Rewards: rewards, Battles: battles}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch list"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

// Tab returns the visible list.
func (s *HistoryScreen) Tab() Tab { return s.tab }

// Lines returns the rows of the visible list.
func (s *HistoryScreen) Lines() []string {
	out := make([]string, len(s.lines[s.tab]))
	for i, l := range s.lines[s.tab] {
		out[i] = l.text
	}
	return out
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.lines[TabPoints] = pointsLines(msg.Points)
			s.lines[TabRewards] = rewardLines(msg.Rewards)
			s.lines[TabBattles] = battleLines(msg.Battles)
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		n := Tab(len(tabNames))
		switch msg.String() {
		case "esc":
			return s, router.Back
		case "tab":
			s.tab = (s.tab + 1) % n
			s.scrollOffset = 0
		case "shift+tab":
			s.tab = (s.tab + n - 1) % n
			s.scrollOffset = 0
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
		case "down", "j":
			if s.scrollOffset < len(s.lines[s.tab])-1 {
				s.scrollOffset++
			}
		}
	}
	return s, nil
}

func pointsLines(recs []store.PointsEventRecord) []line {
	var out []line
	for _, r := range recs {
		fg := theme.Success
		if r.Delta < 0 {
			fg = theme.Error
		}
		out = append(out, line{
			text: fmt.Sprintf("%s  %+6d  %-16s balance %d",
				r.Timestamp.Format("Jan 02 15:04"), r.Delta, r.Reason, r.Balance),
			fg: fg,
		})
	}
	return out
}

func rewardLines(recs []store.RewardEventRecord) []line {
	var out []line
	for _, r := range recs {
		status := "claimed"
		fg := theme.Accent
		if !r.Claimed {
			status, fg = "left", theme.TextDim
		}
		out = append(out, line{
			text: fmt.Sprintf("%s  %-10s %-24s %d → %d  %s",
				r.Timestamp.Format("Jan 02 15:04"), r.Chest, r.Outcome, r.Stake, r.NetValue, status),
			fg: fg,
		})
	}
	return out
}

func battleLines(recs []store.BattleEventRecord) []line {
	var out []line
	for _, r := range recs {
		fg := theme.Success
		if r.Result != "won" {
			fg = theme.Error
		}
		out = append(out, line{
			text: fmt.Sprintf("%s  %-4s  %d questions  armor %d/%d  hp %d vs boss %d",
				r.Timestamp.Format("Jan 02 15:04"), strings.ToUpper(r.Result),
				r.Questions, r.ArmorAbsorbed, r.Armor, r.PlayerHealth, r.BossHealth),
			fg: fg,
		})
	}
	return out
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}

	var b strings.Builder
	b.WriteString("\n")

	var tabs []string
	for i, name := range tabNames {
		label := fmt.Sprintf("%s (%d)", name, len(s.lines[i]))
		if Tab(i) == s.tab {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(label))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "     ")))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 72), 0)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	rows := s.lines[s.tab]
	if len(rows) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("Nothing here yet. Study to earn points!"))
		return b.String()
	}

	maxVisible := max(height-8, 3)
	start := s.scrollOffset
	end := min(start+maxVisible, len(rows))
	for _, r := range rows[start:end] {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(r.fg).Render(r.text)))
		b.WriteString("\n")
	}
	if end < len(rows) {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("... %d more", len(rows)-end)))
	}
	return b.String()
}
