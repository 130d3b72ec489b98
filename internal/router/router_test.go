package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/screen"
)

type stubScreen struct {
	title   string
	inits   int
	resumed int
	pings   int
}

// pingMsg is addressed to every open screen.
type pingMsg struct{}

func (pingMsg) Broadcast() {}

// pongMsg only reaches the active screen.
type pongMsg struct{}

func (s *stubScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case ResumedMsg:
		s.resumed++
	case pingMsg, pongMsg:
		s.pings++
		return s, func() tea.Msg { return nil }
	}
	return s, nil
}

func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

type overlayScreen struct{ stubScreen }

func (*overlayScreen) Overlay() bool { return true }

func titles(r *Router) []string {
	out := make([]string, len(r.stack))
	for i, s := range r.stack {
		out[i] = s.Title()
	}
	return out
}

func TestNavigation(t *testing.T) {
	study := &stubScreen{title: "study"}
	rewards := &stubScreen{title: "rewards"}
	reel := &stubScreen{title: "reel"}
	armory := &stubScreen{title: "armory"}

	r := New(study)
	r.Update(PushScreenMsg{Screen: rewards})
	r.Update(PushScreenMsg{Screen: reel})
	if got := titles(r); len(got) != 3 || got[2] != "reel" {
		t.Fatalf("after pushes: %v", got)
	}
	if rewards.inits != 1 || reel.inits != 1 {
		t.Errorf("pushed screens should be initialised once, got %d and %d", rewards.inits, reel.inits)
	}

	r.Update(ReplaceScreenMsg{Screen: armory})
	if r.Depth() != 3 || r.Active() != armory || armory.inits != 1 {
		t.Errorf("replace should swap the top only: %v", titles(r))
	}

	r.Update(PopScreenMsg{})
	if r.Active() != rewards {
		t.Fatalf("expected rewards after pop, got %s", r.Active().Title())
	}
	if rewards.resumed != 1 {
		t.Errorf("revealed screen should be resumed once, got %d", rewards.resumed)
	}

	r.Pop()
	r.Pop()
	r.Pop()
	if r.Depth() != 1 || r.Active() != study {
		t.Errorf("the bottom screen must stay: %v", titles(r))
	}
	if study.resumed != 1 {
		t.Errorf("popping at the bottom should not resume again, got %d", study.resumed)
	}
}

func TestCommands(t *testing.T) {
	s := &stubScreen{title: "x"}
	if msg, ok := Open(s)().(PushScreenMsg); !ok || msg.Screen != s {
		t.Errorf("Open produced %#v", msg)
	}
	if _, ok := Back().(PopScreenMsg); !ok {
		t.Error("Back should produce PopScreenMsg")
	}
}

func TestPageSkipsOverlays(t *testing.T) {
	page := &stubScreen{title: "study"}
	r := New(page)
	r.Push(&overlayScreen{stubScreen{title: "settings"}})

	if r.Active().Title() != "settings" {
		t.Errorf("expected active 'settings', got %q", r.Active().Title())
	}
	if r.Page() != page {
		t.Errorf("expected page 'study', got %q", r.Page().Title())
	}

	rewards := &stubScreen{title: "rewards"}
	r.Push(rewards)
	if r.Page() != rewards {
		t.Errorf("expected page 'rewards', got %q", r.Page().Title())
	}
}

func TestView(t *testing.T) {
	r := New(&stubScreen{title: "study"})
	r.Push(&stubScreen{title: "rewards"})
	if got := r.View(80, 24); got != "rewards" {
		t.Errorf("View = %q", got)
	}
}

func TestBroadcastReachesCoveredScreens(t *testing.T) {
	study := &stubScreen{title: "study"}
	rewards := &stubScreen{title: "rewards"}
	settings := &overlayScreen{stubScreen{title: "settings"}}

	r := New(study)
	r.Update(PushScreenMsg{Screen: rewards})
	r.Update(PushScreenMsg{Screen: settings})

	if cmd := r.Update(pingMsg{}); cmd == nil {
		t.Error("expected the screens' commands to be batched")
	}
	for _, s := range []*stubScreen{study, rewards, &settings.stubScreen} {
		if s.pings != 1 {
			t.Errorf("%s: got %d broadcasts, want 1", s.title, s.pings)
		}
	}

	r.Update(pongMsg{})
	if study.pings != 1 || rewards.pings != 1 {
		t.Error("plain messages should only reach the active screen")
	}
	if settings.pings != 2 {
		t.Errorf("active screen: got %d messages, want 2", settings.pings)
	}
}
