package arcade

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/points"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screens/arena"
	"github.com/abhisek/studybuddy/internal/screens/armory"
	"github.com/abhisek/studybuddy/internal/screens/reel"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/studygen"
)

// Menu rows after the three chests.
const (
	rowArmory  = 3
	rowBattle  = 4
	rowHistory = 5
	rowBack    = 6
)

func newTestRewards(t *testing.T, balance int) *RewardsScreen {
	t.Helper()
	sess, err := session.New(session.Options{})
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	sess.Ledger.Apply(balance, points.ReasonAdminAdd)
	return New(Options{Session: sess})
}

// choose moves to row and presses enter, returning the message produced.
func choose(r *RewardsScreen, row int) tea.Msg {
	for range row {
		r.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	_, cmd := r.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestOpenChest_InsufficientPoints(t *testing.T) {
	r := newTestRewards(t, 40)

	if msg := choose(r, 0); msg != nil {
		t.Fatalf("expected no navigation, got %T", msg)
	}
	want := "You need 50 points for the Beginner Chest. Keep studying!"
	if r.Notice() != want {
		t.Errorf("notice = %q, want %q", r.Notice(), want)
	}
	if r.sess.Ledger.Balance() != 40 {
		t.Errorf("balance changed to %d", r.sess.Ledger.Balance())
	}
}

func TestOpenChest_PushesReel(t *testing.T) {
	r := newTestRewards(t, 60)

	push, ok := choose(r, 0).(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected a push")
	}
	if _, ok := push.Screen.(*reel.ReelScreen); !ok {
		t.Errorf("expected the reel, got %T", push.Screen)
	}
	if r.sess.Ledger.Balance() != 10 {
		t.Errorf("expected the chest to cost 50, balance %d", r.sess.Ledger.Balance())
	}
}

func TestDigitShortcut(t *testing.T) {
	r := newTestRewards(t, 60)

	_, cmd := r.Update(tea.KeyPressMsg{Code: '1', Text: "1"})
	if cmd == nil {
		t.Fatal("expected 1 to open the first chest")
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Error("expected a push")
	}
}

func TestBattle(t *testing.T) {
	r := newTestRewards(t, 0)

	if msg := choose(r, rowBattle); msg != nil {
		t.Fatalf("no quiz should not start a battle, got %T", msg)
	}
	if !strings.Contains(r.Notice(), "Generate a quiz") {
		t.Errorf("unexpected notice %q", r.Notice())
	}

	r.sess.Materials.Quiz = []studygen.QuizQuestion{
		{Question: "Q?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a"},
	}
	_, cmd := r.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected a push")
	}
	if _, ok := push.Screen.(*arena.ArenaScreen); !ok {
		t.Errorf("expected the arena, got %T", push.Screen)
	}
	if r.Notice() != "" {
		t.Errorf("notice should clear, got %q", r.Notice())
	}
}

func TestArmoryAndBack(t *testing.T) {
	r := newTestRewards(t, 0)

	push, ok := choose(r, rowArmory).(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected a push")
	}
	if _, ok := push.Screen.(*armory.ArmoryScreen); !ok {
		t.Errorf("expected the armory, got %T", push.Screen)
	}

	if _, ok := choose(r, rowBack-rowArmory).(router.PopScreenMsg); !ok {
		t.Error("BACK TO STUDY should pop")
	}

	_, cmd := r.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("esc should pop")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("esc should pop")
	}
}

func TestHistoryWithoutStore(t *testing.T) {
	r := newTestRewards(t, 0)

	if msg := choose(r, rowHistory); msg != nil {
		t.Fatalf("expected no navigation, got %T", msg)
	}
	if !strings.Contains(r.Notice(), "History needs the database") {
		t.Errorf("unexpected notice %q", r.Notice())
	}

	r.Update(router.ResumedMsg{})
	if r.Notice() != "" {
		t.Errorf("resuming should clear the notice, got %q", r.Notice())
	}
}

func TestView_Renders(t *testing.T) {
	r := newTestRewards(t, 120)
	out := r.View(100, 40)
	for _, want := range []string{"BEGINNER CHEST · 50", "ARMORY", "BOSS BATTLE", "120"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
