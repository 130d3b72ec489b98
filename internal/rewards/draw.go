package rewards

import (
	"errors"

	"github.com/abhisek/studybuddy/internal/points"
)

const (
	// ReelLength is the number of entries shown in the spinning reel.
	ReelLength = 50
	// WinnerSlot is the reel index the animation lands on.
	WinnerSlot = 45
)

// Result is a resolved draw.
type Result struct {
	Outcome  Outcome
	Index    int
	Stake    int
	NetValue int
	// Fallback is set when r exceeded the table's total probability and
	// the first outcome was chosen.
	Fallback bool
}

// Draw picks one outcome by cumulative-probability sampling and computes its
// net value for stake. The table must not be empty.
func Draw(t Table, stake int, rng RandomSource) Result {
	idx, fallback := pick(t, rng)
	o := t.Outcomes[idx]
	return Result{
		Outcome:  o,
		Index:    idx,
		Stake:    stake,
		NetValue: o.Rule.Compute(stake),
		Fallback: fallback,
	}
}

func pick(t Table, rng RandomSource) (int, bool) {
	r := rng.Float64()
	var cum float64
	for i, o := range t.Outcomes {
		cum += o.Probability
		if cum > r {
			return i, false
		}
	}
	return 0, true
}

// Spin is a draw plus the reel shown while it is revealed.
type Spin struct {
	Result Result
	Reel   []Outcome
}

// NewSpin draws the winner, then fills the reel with independent draws and
// places the winner at WinnerSlot.
func NewSpin(t Table, stake int, rng RandomSource) (Spin, error) {
	if err := t.Validate(); err != nil {
		return Spin{}, err
	}
	res := Draw(t, stake, rng)

	reel := make([]Outcome, ReelLength)
	for i := range reel {
		idx, _ := pick(t, rng)
		reel[i] = t.Outcomes[idx]
	}
	reel[WinnerSlot] = res.Outcome

	return Spin{Result: res, Reel: reel}, nil
}

// Winner returns the outcome the reel lands on.
func (s Spin) Winner() Outcome {
	return s.Reel[WinnerSlot]
}

var (
	ErrAlreadyClaimed = errors.New("reward already claimed")
	ErrDiscarded      = errors.New("reward was discarded")
)

// Pending is a revealed reward waiting to be claimed. Claiming applies the
// net value to the ledger exactly once.
type Pending struct {
	Spin      Spin
	claimed   bool
	discarded bool
}

// NewPending wraps a spin for claiming.
func NewPending(s Spin) *Pending {
	return &Pending{Spin: s}
}

// Claim credits the net value and returns the new balance.
func (p *Pending) Claim(l *points.Ledger) (int, error) {
	switch {
	case p.claimed:
		return l.Balance(), ErrAlreadyClaimed
	case p.discarded:
		return l.Balance(), ErrDiscarded
	}
	p.claimed = true
	return l.Apply(p.Spin.Result.NetValue, points.ReasonRewardClaim), nil
}

// Discard closes the reward without applying anything.
func (p *Pending) Discard() {
	if !p.claimed {
		p.discarded = true
	}
}

// Claimed reports whether Claim succeeded.
func (p *Pending) Claimed() bool { return p.claimed }

// Open reports whether the reward can still be claimed.
func (p *Pending) Open() bool { return !p.claimed && !p.discarded }
