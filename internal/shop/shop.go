package shop

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/studybuddy/internal/points"
	"github.com/abhisek/studybuddy/internal/rewards"
)

// ErrUnknownItem is returned for ids not in the catalog.
var ErrUnknownItem = errors.New("no such item in the shop")

// Shop sells chests and armor against the points ledger.
type Shop struct {
	catalog *Catalog
	ledger  *points.Ledger
	rng     rewards.RandomSource
	logger  *slog.Logger

	owned map[string]bool
}

// Option configures a Shop.
type Option func(*Shop)

// WithRNG sets the random source used for chest draws.
func WithRNG(rng rewards.RandomSource) Option {
	return func(s *Shop) { s.rng = rng }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Shop) { s.logger = l }
}

// New creates a Shop. Reward tables that do not sum to 1 are reported once.
func New(c *Catalog, ledger *points.Ledger, opts ...Option) *Shop {
	s := &Shop{
		catalog: c,
		ledger:  ledger,
		rng:     rewards.DefaultRNG(),
		logger:  slog.New(slog.DiscardHandler),
		owned:   make(map[string]bool),
	}
	for _, o := range opts {
		o(s)
	}
	for _, ch := range c.Chests {
		ch.Table.CheckSum(s.logger)
	}
	return s
}

// Catalog returns the catalog on sale.
func (s *Shop) Catalog() *Catalog { return s.catalog }

// BuyArmor purchases a piece. Buying a piece already owned is a no-op and
// returns false.
func (s *Shop) BuyArmor(id string) (bool, error) {
	piece, ok := s.catalog.ArmorPiece(id)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	if s.owned[id] {
		return false, nil
	}
	if err := s.ledger.Spend(piece.Cost, points.ReasonArmorPurchase); err != nil {
		return false, err
	}
	s.owned[id] = true
	s.logger.Info("armor purchased", "armor", id, "cost", piece.Cost, "balance", s.ledger.Balance())
	return true, nil
}

// OpenChest pays for a chest and draws its reward. The returned reward
// still has to be claimed.
func (s *Shop) OpenChest(id string) (*rewards.Pending, error) {
	chest, ok := s.catalog.Chest(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	if err := s.ledger.Spend(chest.Cost, points.ReasonChestPurchase); err != nil {
		return nil, err
	}
	spin, err := rewards.NewSpin(chest.Table, chest.Cost, s.rng)
	if err != nil {
		// Refund: the table was validated at load, so this only happens with
		// a hand-built catalog.
		s.ledger.Apply(chest.Cost, points.ReasonChestPurchase)
		return nil, fmt.Errorf("draw %s: %w", id, err)
	}
	s.logger.Info("chest opened",
		"chest", id, "outcome", spin.Result.Outcome.Label, "net", spin.Result.NetValue, "fallback", spin.Result.Fallback)
	return rewards.NewPending(spin), nil
}

// Owns reports whether the armor piece was bought.
func (s *Shop) Owns(id string) bool { return s.owned[id] }

// ArmorCount is the number of owned pieces.
func (s *Shop) ArmorCount() int { return len(s.owned) }

// Inventory returns owned pieces in catalog order.
func (s *Shop) Inventory() []ArmorPiece {
	var out []ArmorPiece
	for _, a := range s.catalog.Armor {
		if s.owned[a.ID] {
			out = append(out, a)
		}
	}
	return out
}
