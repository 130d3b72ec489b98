// Package settings is the settings overlay: theme, timer panel and the
// admin points commands.
package settings

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/store"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// Item is one row of the settings list.
type Item int

const (
	ItemTheme Item = iota
	ItemShowTimer
	ItemAdminAdd
	ItemAdminRemove
	ItemAdminReset
	ItemClose
	itemCount
)

type themeSavedMsg struct {
	Mode theme.Mode
	Err  error
}

// SettingsScreen is drawn over the current page, which stays current for
// the study timer.
type SettingsScreen struct {
	sess     *session.Session
	repo     store.SettingsRepo
	logger   *slog.Logger
	selected Item
	status   string
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)
var _ screen.Overlay = (*SettingsScreen)(nil)

// New creates the settings overlay. repo may be nil, in which case theme
// changes last only until exit.
func New(sess *session.Session, repo store.SettingsRepo, logger *slog.Logger) *SettingsScreen {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SettingsScreen{sess: sess, repo: repo, logger: logger}
}

func (s *SettingsScreen) Init() tea.Cmd  { return nil }
func (s *SettingsScreen) Title() string  { return "Settings" }
func (s *SettingsScreen) Overlay() bool  { return true }
func (s *SettingsScreen) Status() string { return s.status }

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Apply"},
		{Key: "Esc", Description: "Close"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case themeSavedMsg:
		if msg.Err != nil {
			s.logger.Warn("failed to save theme", "theme", string(msg.Mode), "error", msg.Err)
			s.status = "Theme applied, but it could not be saved."
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+o":
			return s, router.Back
		case "up", "k":
			s.selected = (s.selected + itemCount - 1) % itemCount
		case "down", "j":
			s.selected = (s.selected + 1) % itemCount
		case "enter", "space":
			return s, s.apply(s.selected)
		}
	}
	return s, nil
}

func (s *SettingsScreen) apply(item Item) tea.Cmd {
	switch item {
	case ItemTheme:
		mode := theme.Toggle()
		s.status = fmt.Sprintf("Switched to the %s theme.", mode)
		s.logger.Info("theme changed", "theme", string(mode))
		return s.saveTheme(mode)
	case ItemShowTimer:
		s.sess.ShowTimer = !s.sess.ShowTimer
		s.status = ""
	case ItemAdminAdd:
		bal := s.sess.AdminAdd()
		s.status = fmt.Sprintf("Added %d points. Balance: %d", session.AdminAddAmount, bal)
	case ItemAdminRemove:
		bal := s.sess.AdminRemove()
		s.status = fmt.Sprintf("Removed up to %d points. Balance: %d", session.AdminRemoveAmount, bal)
	case ItemAdminReset:
		s.sess.AdminReset()
		s.status = "Points reset to 0."
	case ItemClose:
		return router.Back
	}
	return nil
}

func (s *SettingsScreen) saveTheme(mode theme.Mode) tea.Cmd {
	if s.repo == nil {
		return nil
	}
	repo := s.repo
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return themeSavedMsg{Mode: mode, Err: repo.SetTheme(ctx, string(mode))}
	}
}

func (s *SettingsScreen) label(item Item) string {
	switch item {
	case ItemTheme:
		return fmt.Sprintf("Theme            %s", strings.ToUpper(string(theme.Current())))
	case ItemShowTimer:
		state := "OFF"
		if s.sess.ShowTimer {
			state = "ON"
		}
		return fmt.Sprintf("Show timer       %s", state)
	case ItemAdminAdd:
		return fmt.Sprintf("Admin: add %d points", session.AdminAddAmount)
	case ItemAdminRemove:
		return fmt.Sprintf("Admin: remove %d points", session.AdminRemoveAmount)
	case ItemAdminReset:
		return "Admin: reset points"
	default:
		return "Close"
	}
}

func (s *SettingsScreen) View(width, height int) string {
	var rows []string
	for i := range itemCount {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "▸ "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		if i == ItemAdminAdd {
			rows = append(rows, "")
		}
		rows = append(rows, style.Render(prefix+s.label(i)))
	}

	balance := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render(
		fmt.Sprintf("★ %d points", s.sess.Ledger.Balance()))
	body := strings.Join(rows, "\n") + "\n\n" + balance
	if s.status != "" {
		body += "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(s.status)
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(1, 3).
		Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
