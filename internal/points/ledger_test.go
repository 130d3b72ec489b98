package points

import (
	"errors"
	"sync"
	"testing"
)

// withBalance opens the ledger with n points.
func withBalance(n int) Option {
	return func(l *Ledger) { l.balance = n }
}

func TestApply(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		delta     int
		want      int
		wantDelta int
	}{
		{"add", 0, 10, 10, 10},
		{"remove", 100, -50, 50, -50},
		{"remove clamps at zero", 30, -50, 0, -30},
		{"remove from zero records nothing", 0, -50, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var recorded []Entry
			l := New(withBalance(tt.start), WithRecorder(func(e Entry) { recorded = append(recorded, e) }))

			got := l.Apply(tt.delta, ReasonAdminRemove)
			if got != tt.want {
				t.Fatalf("Apply() = %d, want %d", got, tt.want)
			}
			if l.Balance() != tt.want {
				t.Fatalf("Balance() = %d, want %d", l.Balance(), tt.want)
			}
			if tt.wantDelta == 0 {
				if len(recorded) != 0 {
					t.Fatalf("expected no recorded entries, got %d", len(recorded))
				}
				return
			}
			if len(recorded) != 1 || recorded[0].Delta != tt.wantDelta {
				t.Fatalf("recorded = %+v, want one entry with delta %d", recorded, tt.wantDelta)
			}
		})
	}
}

func TestSpend(t *testing.T) {
	l := New(withBalance(150))

	if err := l.Spend(100, ReasonArmorPurchase); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Balance() != 50 {
		t.Fatalf("balance = %d, want 50", l.Balance())
	}

	err := l.Spend(100, ReasonArmorPurchase)
	if !errors.Is(err, ErrInsufficientPoints) {
		t.Fatalf("expected ErrInsufficientPoints, got %v", err)
	}
	if l.Balance() != 50 {
		t.Fatalf("balance changed on failed spend: %d", l.Balance())
	}
}

func TestReset(t *testing.T) {
	l := New()
	l.Apply(200, ReasonAdminAdd)
	l.Reset(ReasonAdminReset)

	if l.Balance() != 0 {
		t.Fatalf("balance = %d, want 0", l.Balance())
	}
	h := l.History()
	if len(h) != 2 {
		t.Fatalf("history length = %d, want 2", len(h))
	}
	if h[1].Delta != -200 || h[1].Reason != ReasonAdminReset {
		t.Fatalf("unexpected reset entry: %+v", h[1])
	}
}

func TestApplyOrderingUnderConcurrency(t *testing.T) {
	l := New()
	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Apply(10, ReasonStudyTime)
		}()
	}
	wg.Wait()

	if l.Balance() != 1000 {
		t.Fatalf("balance = %d, want 1000", l.Balance())
	}
	for i, e := range l.History() {
		if e.Balance != (i+1)*10 {
			t.Fatalf("entry %d balance = %d, want %d", i, e.Balance, (i+1)*10)
		}
	}
}
