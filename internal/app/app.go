// Package app is the root Bubble Tea model. It owns the session, drives the
// one-second study tick and keeps the timer in step with the visible page
// and terminal focus.
package app

import (
	"context"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/battle"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/screens/arcade"
	"github.com/abhisek/studybuddy/internal/screens/settings"
	"github.com/abhisek/studybuddy/internal/screens/study"
	"github.com/abhisek/studybuddy/internal/screens/welcome"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/store"
	"github.com/abhisek/studybuddy/internal/timer"
	"github.com/abhisek/studybuddy/internal/ui/layout"
)

// Options holds the dependencies the screens need.
type Options struct {
	Session *session.Session
	// Events and Settings may be nil when no database is open.
	Events   store.EventRepo
	Settings store.SettingsRepo
	// Generator is nil when no LLM provider is configured.
	Generator         study.Generator
	GenerationTimeout time.Duration
	Resolver          battle.Resolver
	Logger            *slog.Logger
	// SkipWelcome starts directly on the study page.
	SkipWelcome bool
}

type secondTickMsg time.Time

func tickEverySecond() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return secondTickMsg(t) })
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	sess   *session.Session
	logger *slog.Logger
	width  int
	height int
}

// New creates the root model.
func New(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	rewardsPage := func() screen.Screen {
		return arcade.New(arcade.Options{
			Session:  opts.Session,
			Resolver: opts.Resolver,
			Events:   opts.Events,
			Logger:   opts.Logger,
		})
	}
	settingsPage := func() screen.Screen {
		return settings.New(opts.Session, opts.Settings, opts.Logger)
	}
	studyPage := func() screen.Screen {
		return study.New(study.Options{
			Session:   opts.Session,
			Generator: opts.Generator,
			Timeout:   opts.GenerationTimeout,
			Logger:    opts.Logger,
			Rewards:   rewardsPage,
			Settings:  settingsPage,
		})
	}

	var first screen.Screen
	if opts.SkipWelcome {
		first = studyPage()
	} else {
		first = welcome.New(studyPage)
	}

	m := AppModel{
		router: router.New(first),
		sess:   opts.Session,
		logger: opts.Logger,
	}
	m.syncTimer()
	return m
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), tickEverySecond())
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case secondTickMsg:
		m.sess.Tick()
		return m, tickEverySecond()

	case tea.FocusMsg:
		m.sess.SetFocused(true)
		return m, nil

	case tea.BlurMsg:
		m.sess.SetFocused(false)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	m.syncTimer()
	return m, cmd
}

// syncTimer runs the timer only while the study page is the current page.
// Overlays such as settings do not pause it.
func (m AppModel) syncTimer() {
	_, onStudy := m.router.Page().(screen.StudyPage)
	m.sess.SetStudyPageActive(onStudy)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.ReportFocus = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	h := layout.Header{Title: active.Title(), Balance: m.sess.Ledger.Balance()}
	// The study page has its own timer panel.
	if _, onStudy := m.router.Page().(screen.StudyPage); m.sess.ShowTimer && !onStudy {
		h.Clock = timer.FormatClock(m.sess.Tracker.Elapsed())
	}
	header := layout.RenderHeader(h, m.width)

	footerHints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(p.KeyHints(), footerHints...)
	}
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.Compose(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		opts.Logger.Error("program exited with error", "error", err)
		return err
	}
	return nil
}
