package armory

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/points"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/session"
)

func newTestArmory(t *testing.T, balance int) (*ArmoryScreen, *session.Session) {
	t.Helper()
	sess, err := session.New(session.Options{})
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	sess.Ledger.Apply(balance, points.ReasonAdminAdd)
	return New(sess), sess
}

func TestBuySelected(t *testing.T) {
	s, sess := newTestArmory(t, 150)

	// First piece in the catalog is the helmet.
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !sess.Shop.Owns("helmet") {
		t.Fatal("expected the helmet to be owned")
	}
	if got := sess.Ledger.Balance(); got != 50 {
		t.Errorf("expected balance 50, got %d", got)
	}
	if s.Notice() != "Equipped the Helmet!" {
		t.Errorf("unexpected notice %q", s.Notice())
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if got := sess.Ledger.Balance(); got != 50 {
		t.Errorf("buying twice should be a no-op, balance %d", got)
	}
	if s.Notice() != "You already own the Helmet." {
		t.Errorf("unexpected notice %q", s.Notice())
	}
}

func TestBuyInsufficient(t *testing.T) {
	s, sess := newTestArmory(t, 10)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if sess.Shop.ArmorCount() != 0 {
		t.Error("nothing should be bought")
	}
	if !s.failed {
		t.Error("expected a failure notice")
	}
	if sess.Ledger.Balance() != 10 {
		t.Errorf("balance should be untouched, got %d", sess.Ledger.Balance())
	}
}

func TestEscPops(t *testing.T) {
	s, _ := newTestArmory(t, 0)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}
