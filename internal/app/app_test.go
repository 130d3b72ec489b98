package app

import (
	"encoding/json"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/screens/settings"
	"github.com/abhisek/studybuddy/internal/screens/study"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/studygen"
)

func newTestApp(t *testing.T, skipWelcome bool) (AppModel, *session.Session) {
	t.Helper()
	sess, err := session.New(session.Options{})
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	return New(Options{Session: sess, SkipWelcome: skipWelcome}), sess
}

func update(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func TestTimerOnlyOnStudyPage(t *testing.T) {
	m, sess := newTestApp(t, false)
	if sess.Tracker.Active() {
		t.Fatal("timer should not run on the welcome screen")
	}

	m, cmd := update(m, tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("expected the welcome screen to hand over")
	}
	m, _ = update(m, cmd())
	if m.router.Active().Title() != "Study" {
		t.Fatalf("expected the study page, got %q", m.router.Active().Title())
	}
	if !sess.Tracker.Active() {
		t.Error("timer should run once the study page is shown")
	}
}

func TestTickAwardsOnStudyPage(t *testing.T) {
	m, sess := newTestApp(t, true)
	if !sess.Tracker.Active() {
		t.Fatal("timer should be active on the study page")
	}

	var cmd tea.Cmd
	for i := 0; i < 60; i++ {
		m, cmd = update(m, secondTickMsg(time.Now()))
	}
	if cmd == nil {
		t.Error("the tick should reschedule itself")
	}
	if got := sess.Ledger.Balance(); got != 10 {
		t.Errorf("expected 10 points after a minute, got %d", got)
	}
}

func TestFocusMapsToVisibility(t *testing.T) {
	m, sess := newTestApp(t, true)

	m, _ = update(m, tea.BlurMsg{})
	if sess.Tracker.Visible() {
		t.Error("blur should hide the session")
	}
	for i := 0; i < 60; i++ {
		m, _ = update(m, secondTickMsg(time.Now()))
	}
	if sess.Tracker.Elapsed() != 0 {
		t.Errorf("no time should accrue while blurred, got %d", sess.Tracker.Elapsed())
	}

	m, _ = update(m, tea.FocusMsg{})
	if !sess.Tracker.Visible() {
		t.Error("focus should show the session")
	}
}

func TestOverlayKeepsTimerRunning(t *testing.T) {
	m, sess := newTestApp(t, true)

	m, _ = update(m, router.PushScreenMsg{Screen: settings.New(sess, nil, nil)})
	if !sess.Tracker.Active() {
		t.Error("settings overlay should not pause the timer")
	}

	m, _ = update(m, router.PushScreenMsg{Screen: &pageScreen{}})
	if sess.Tracker.Active() {
		t.Error("another page should pause the timer")
	}

	m, _ = update(m, router.PopScreenMsg{})
	if !sess.Tracker.Active() {
		t.Error("returning to the study page should resume the timer")
	}
}

func TestView(t *testing.T) {
	m, _ := newTestApp(t, true)
	v := m.View()
	if !v.AltScreen || !v.ReportFocus {
		t.Error("expected alt screen and focus reporting")
	}

	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.width != 120 || m.height != 40 {
		t.Errorf("expected 120x40, got %dx%d", m.width, m.height)
	}
	if v := m.View(); !v.ReportFocus {
		t.Error("focus reporting must stay on after a resize")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m, _ := newTestApp(t, true)
	_, cmd := update(m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}
}

// runCmd executes cmd and returns the messages it produces, flattening
// batches one level deep.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		if c != nil {
			out = append(out, c())
		}
	}
	return out
}

func TestGenerationFinishesUnderAnotherScreen(t *testing.T) {
	tests := []struct {
		name string
		open tea.KeyPressMsg
	}{
		{"rewards page", tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl}},
		{"settings overlay", tea.KeyPressMsg{Code: 'o', Mod: tea.ModCtrl}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, err := session.New(session.Options{})
			if err != nil {
				t.Fatalf("session: %v", err)
			}
			mock := llm.NewMockProvider(llm.MockResponse{
				Content: json.RawMessage(`{"questions":[{"question":"2+2?","options":["3","4","5","6"],"correctAnswer":"4"}]}`),
			})
			svc := studygen.NewService(mock, studygen.DefaultConfig())
			m := New(Options{Session: sess, Generator: svc, GenerationTimeout: time.Second, SkipWelcome: true})

			for _, r := range "cells" {
				m, _ = update(m, tea.KeyPressMsg{Code: r, Text: string(r)})
			}
			m, cmd := update(m, tea.KeyPressMsg{Code: 'q', Mod: tea.ModCtrl})
			if cmd == nil {
				t.Fatal("expected a generation command")
			}
			pending := runCmd(cmd)

			m, cmd = update(m, tt.open)
			for _, msg := range runCmd(cmd) {
				m, _ = update(m, msg)
			}
			if m.router.Active().Title() == "Study" {
				t.Fatal("expected another screen on top of the study page")
			}

			for _, msg := range pending {
				m, _ = update(m, msg)
			}

			m, cmd = update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
			for _, msg := range runCmd(cmd) {
				m, _ = update(m, msg)
			}
			page, ok := m.router.Active().(*study.StudyScreen)
			if !ok {
				t.Fatalf("expected the study page back, got %q", m.router.Active().Title())
			}
			if page.Loading(studygen.KindQuiz) {
				t.Error("quiz should not be loading once its result arrived")
			}
			if got := len(sess.Materials.Quiz); got != 1 {
				t.Errorf("expected the quiz to be stored, got %d questions", got)
			}
			if _, cmd := update(m, tea.KeyPressMsg{Code: 'q', Mod: tea.ModCtrl}); cmd == nil {
				t.Error("a new quiz request should start")
			}
		})
	}
}

// pageScreen is a plain page that is not the study page.
type pageScreen struct{}

func (p *pageScreen) Init() tea.Cmd                           { return nil }
func (p *pageScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return p, nil }
func (p *pageScreen) View(int, int) string                    { return "page" }
func (p *pageScreen) Title() string                           { return "Page" }
