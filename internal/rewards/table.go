package rewards

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
)

// Kind classifies an outcome for presentation.
type Kind string

const (
	KindWin        Kind = "win"
	KindLoss       Kind = "loss"
	KindMultiplier Kind = "multiplier"
)

// RuleType tags the value computation of an outcome.
type RuleType string

const (
	RuleHalve    RuleType = "halve"
	RuleAdd      RuleType = "add"
	RuleMultiply RuleType = "multiply"
)

// ValueRule computes the points an outcome pays out for a stake.
type ValueRule struct {
	Type   RuleType `yaml:"type"`
	Amount int      `yaml:"amount,omitempty"`
	Factor float64  `yaml:"factor,omitempty"`
}

// Halve pays back half the stake, rounded toward zero.
func Halve() ValueRule { return ValueRule{Type: RuleHalve} }

// AddFixed pays back the stake plus n.
func AddFixed(n int) ValueRule { return ValueRule{Type: RuleAdd, Amount: n} }

// Multiply pays back the stake times k, rounded half away from zero.
func Multiply(k float64) ValueRule { return ValueRule{Type: RuleMultiply, Factor: k} }

// Compute returns the net points for stake.
func (r ValueRule) Compute(stake int) int {
	switch r.Type {
	case RuleHalve:
		return stake / 2
	case RuleAdd:
		return stake + r.Amount
	case RuleMultiply:
		return int(math.Round(float64(stake) * r.Factor))
	default:
		return 0
	}
}

// Validate checks the rule tag and parameters.
func (r ValueRule) Validate() error {
	switch r.Type {
	case RuleHalve, RuleAdd:
		return nil
	case RuleMultiply:
		if r.Factor < 0 {
			return fmt.Errorf("negative multiply factor %v", r.Factor)
		}
		return nil
	default:
		return fmt.Errorf("unknown rule type %q", r.Type)
	}
}

func (r ValueRule) String() string {
	switch r.Type {
	case RuleHalve:
		return "half back"
	case RuleAdd:
		if r.Amount >= 0 {
			return fmt.Sprintf("stake +%d", r.Amount)
		}
		return fmt.Sprintf("stake %d", r.Amount)
	case RuleMultiply:
		return fmt.Sprintf("x%g", r.Factor)
	default:
		return string(r.Type)
	}
}

// Outcome is one row of a reward table.
type Outcome struct {
	Label       string    `yaml:"label"`
	Rule        ValueRule `yaml:"rule"`
	Probability float64   `yaml:"probability"`
	Kind        Kind      `yaml:"kind"`
}

// Table is an ordered list of outcomes whose probabilities are expected,
// but not required, to sum to 1.
type Table struct {
	Name     string    `yaml:"name"`
	Outcomes []Outcome `yaml:"outcomes"`
}

var ErrEmptyTable = errors.New("reward table has no outcomes")

const sumTolerance = 1e-9

// Validate rejects empty tables, bad rules and probabilities outside [0,1].
func (t Table) Validate() error {
	if len(t.Outcomes) == 0 {
		return ErrEmptyTable
	}
	for i, o := range t.Outcomes {
		if o.Probability < 0 || o.Probability > 1 {
			return fmt.Errorf("outcome %d (%s): probability %v out of range", i, o.Label, o.Probability)
		}
		if err := o.Rule.Validate(); err != nil {
			return fmt.Errorf("outcome %d (%s): %w", i, o.Label, err)
		}
	}
	return nil
}

// Sum returns the total probability mass.
func (t Table) Sum() float64 {
	var s float64
	for _, o := range t.Outcomes {
		s += o.Probability
	}
	return s
}

// CheckSum logs a warning when the probabilities do not add up to 1.
// Draws against such a table still work: a short table falls back to the
// first outcome.
func (t Table) CheckSum(logger *slog.Logger) bool {
	sum := t.Sum()
	if math.Abs(sum-1) <= sumTolerance {
		return true
	}
	if logger != nil {
		logger.Warn("reward table probabilities do not sum to 1",
			"table", t.Name, "sum", sum)
	}
	return false
}
