// Package session holds the state shared by every page during one run of
// the app: the study timer, the points ledger, the shop and the material
// generated from the notes. A Session is owned by the UI goroutine.
package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/studybuddy/internal/battle"
	"github.com/abhisek/studybuddy/internal/points"
	"github.com/abhisek/studybuddy/internal/rewards"
	"github.com/abhisek/studybuddy/internal/shop"
	"github.com/abhisek/studybuddy/internal/store"
	"github.com/abhisek/studybuddy/internal/timer"
)

// Admin adjustments offered by the settings page.
const (
	AdminAddAmount    = 200
	AdminRemoveAmount = 50
)

// Options configures a Session.
type Options struct {
	Timer   timer.Config
	Cue     timer.Cue
	Catalog *shop.Catalog
	// Events receives the audit trail. Nil disables it.
	Events store.EventRepo
	Logger *slog.Logger
	RNG    rewards.RandomSource
	Now    func() time.Time
}

// Session is one run of the app.
type Session struct {
	ID        string
	Tracker   *timer.Tracker
	Ledger    *points.Ledger
	Shop      *shop.Shop
	Materials Materials

	// ShowTimer hides the timer panel without stopping the timer.
	ShowTimer bool

	events  store.EventRepo
	logger  *slog.Logger
	now     func() time.Time
	started time.Time
	earned  int
}

// New creates a Session. The catalog defaults to the embedded one.
func New(opts Options) (*Session, error) {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Catalog == nil {
		c, err := shop.DefaultCatalog()
		if err != nil {
			return nil, err
		}
		opts.Catalog = c
	}

	s := &Session{
		ID:        uuid.NewString(),
		Tracker:   timer.New(opts.Timer, opts.Cue),
		ShowTimer: true,
		events:    opts.Events,
		logger:    opts.Logger,
		now:       opts.Now,
		started:   opts.Now(),
	}
	s.Ledger = points.New(points.WithRecorder(s.recordPoints), points.WithClock(opts.Now))

	shopOpts := []shop.Option{shop.WithLogger(opts.Logger)}
	if opts.RNG != nil {
		shopOpts = append(shopOpts, shop.WithRNG(opts.RNG))
	}
	s.Shop = shop.New(opts.Catalog, s.Ledger, shopOpts...)
	return s, nil
}

// Tick advances the study timer by one second and banks any minute award.
func (s *Session) Tick() timer.TickResult {
	res := s.Tracker.Tick()
	if res.Points > 0 {
		s.Ledger.Apply(res.Points, points.ReasonStudyTime)
		s.earned += res.Points
	}
	if res.Switched {
		s.logger.Info("pomodoro switched", "mode", string(res.Mode))
	}
	return res
}

// SetStudyPageActive marks whether the study page is the page on screen.
func (s *Session) SetStudyPageActive(active bool) { s.Tracker.SetActive(active) }

// SetFocused maps terminal focus to timer visibility.
func (s *Session) SetFocused(focused bool) { s.Tracker.SetVisible(focused) }

// OpenChest buys and draws a chest. The reward still needs ClaimReward or
// DiscardReward.
func (s *Session) OpenChest(chestID string) (*rewards.Pending, error) {
	return s.Shop.OpenChest(chestID)
}

// ClaimReward credits a revealed reward and records it.
func (s *Session) ClaimReward(chestID string, p *rewards.Pending) (int, error) {
	bal, err := p.Claim(s.Ledger)
	if err != nil {
		return bal, err
	}
	s.recordReward(chestID, p, true)
	return bal, nil
}

// DiscardReward closes a revealed reward without crediting it.
func (s *Session) DiscardReward(chestID string, p *rewards.Pending) {
	if !p.Open() {
		return
	}
	p.Discard()
	s.recordReward(chestID, p, false)
}

// BuyArmor purchases an armor piece.
func (s *Session) BuyArmor(id string) (bool, error) {
	return s.Shop.BuyArmor(id)
}

// NewBattle starts an encounter over the generated quiz with every owned
// armor piece.
func (s *Session) NewBattle() (*battle.Encounter, error) {
	e := battle.NewEncounter()
	if err := e.Start(s.Materials.Quiz, s.Shop.ArmorCount()); err != nil {
		return nil, err
	}
	return e, nil
}

// RecordBattle appends the result of a finished encounter.
func (s *Session) RecordBattle(e *battle.Encounter) {
	if !e.Over() {
		return
	}
	s.logger.Info("battle finished",
		"encounter_id", e.ID.String(), "result", string(e.State()), "armor_absorbed", e.ArmorAbsorbed())
	if s.events == nil {
		return
	}
	err := s.events.AppendBattleEvent(context.Background(), store.BattleEventData{
		EncounterID:   e.ID.String(),
		Result:        string(e.State()),
		Questions:     e.QuestionCount(),
		Armor:         e.Armor(),
		ArmorAbsorbed: e.ArmorAbsorbed(),
		PlayerHealth:  e.PlayerHealth(),
		BossHealth:    e.BossHealth(),
	})
	if err != nil {
		s.logger.Warn("failed to record battle", "error", err)
	}
}

// AdminAdd grants AdminAddAmount points.
func (s *Session) AdminAdd() int { return s.Ledger.Apply(AdminAddAmount, points.ReasonAdminAdd) }

// AdminRemove takes AdminRemoveAmount points, stopping at zero.
func (s *Session) AdminRemove() int {
	return s.Ledger.Apply(-AdminRemoveAmount, points.ReasonAdminRemove)
}

// AdminReset empties the balance.
func (s *Session) AdminReset() { s.Ledger.Reset(points.ReasonAdminReset) }

func (s *Session) recordPoints(e points.Entry) {
	if s.events == nil {
		return
	}
	err := s.events.AppendPointsEvent(context.Background(), store.PointsEventData{
		Delta:   e.Delta,
		Balance: e.Balance,
		Reason:  string(e.Reason),
	})
	if err != nil {
		s.logger.Warn("failed to record points", "reason", string(e.Reason), "error", err)
	}
}

func (s *Session) recordReward(chestID string, p *rewards.Pending, claimed bool) {
	res := p.Spin.Result
	s.logger.Info("reward closed",
		"chest", chestID, "outcome", res.Outcome.Label, "net_value", res.NetValue, "claimed", claimed)
	if s.events == nil {
		return
	}
	err := s.events.AppendRewardEvent(context.Background(), store.RewardEventData{
		Chest:    chestID,
		Outcome:  res.Outcome.Label,
		Kind:     string(res.Outcome.Kind),
		Stake:    res.Stake,
		NetValue: res.NetValue,
		Claimed:  claimed,
	})
	if err != nil {
		s.logger.Warn("failed to record reward", "chest", chestID, "error", err)
	}
}
