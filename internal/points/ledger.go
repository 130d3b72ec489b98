package points

import (
	"errors"
	"sync"
	"time"
)

// ErrInsufficientPoints is returned by Spend when the balance cannot cover
// the cost. The balance is left untouched.
var ErrInsufficientPoints = errors.New("not enough points")

// Reason labels why a delta was applied.
type Reason string

const (
	ReasonStudyTime     Reason = "study-time"
	ReasonRewardClaim   Reason = "reward-claim"
	ReasonChestPurchase Reason = "chest-purchase"
	ReasonArmorPurchase Reason = "armor-purchase"
	ReasonAdminAdd      Reason = "admin-add"
	ReasonAdminRemove   Reason = "admin-remove"
	ReasonAdminReset    Reason = "admin-reset"
)

// Entry is one applied delta.
type Entry struct {
	Delta     int
	Balance   int
	Reason    Reason
	Timestamp time.Time
}

// Recorder receives every applied entry, e.g. to append it to the event log.
// It is called while the ledger lock is held, so it must not call back into
// the ledger.
type Recorder func(Entry)

// Ledger is the single owner of the points balance. Every mutation goes
// through Apply, Spend or Reset. The balance never drops below zero.
type Ledger struct {
	mu       sync.Mutex
	balance  int
	history  []Entry
	recorder Recorder
	now      func() time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithRecorder registers a hook invoked for every applied entry.
func WithRecorder(r Recorder) Option {
	return func(l *Ledger) { l.recorder = r }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// New creates a Ledger with a zero balance.
func New(opts ...Option) *Ledger {
	l := &Ledger{now: time.Now}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Apply adds delta to the balance and returns the new balance. A negative
// delta larger than the balance clamps to zero; the recorded delta is the
// amount actually removed. A zero effective delta records nothing.
func (l *Ledger) Apply(delta int, reason Reason) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.applyLocked(delta, reason)
}

// Spend removes cost from the balance, or returns ErrInsufficientPoints.
func (l *Ledger) Spend(cost int, reason Reason) error {
	if cost < 0 {
		return errors.New("negative cost")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if cost > l.balance {
		return ErrInsufficientPoints
	}
	l.applyLocked(-cost, reason)
	return nil
}

// Reset sets the balance to zero.
func (l *Ledger) Reset(reason Reason) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.applyLocked(-l.balance, reason)
}

// Balance returns the current balance.
func (l *Ledger) Balance() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// History returns a copy of the applied entries, oldest first.
func (l *Ledger) History() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.history))
	copy(out, l.history)
	return out
}

func (l *Ledger) applyLocked(delta int, reason Reason) int {
	if l.balance+delta < 0 {
		delta = -l.balance
	}
	if delta == 0 {
		return l.balance
	}
	l.balance += delta

	e := Entry{Delta: delta, Balance: l.balance, Reason: reason, Timestamp: l.now()}
	l.history = append(l.history, e)
	if l.recorder != nil {
		l.recorder(e)
	}
	return l.balance
}
