// Package arcade implements the rewards page: treasure chests, the armory,
// the boss battle and the history of past rewards.
package arcade

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/battle"
	"github.com/abhisek/studybuddy/internal/points"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/screens/arena"
	"github.com/abhisek/studybuddy/internal/screens/armory"
	"github.com/abhisek/studybuddy/internal/screens/history"
	"github.com/abhisek/studybuddy/internal/screens/reel"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/store"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
)

// Options wires the rewards page.
type Options struct {
	Session  *session.Session
	Resolver battle.Resolver
	// Events backs the history screen. Nil hides history.
	Events store.EventRepo
	Logger *slog.Logger
}

// RewardsScreen is the rewards page.
type RewardsScreen struct {
	opts   Options
	sess   *session.Session
	logger *slog.Logger

	menu   components.Menu
	labels []string
	notice string
}

var _ screen.Screen = (*RewardsScreen)(nil)
var _ screen.KeyHintProvider = (*RewardsScreen)(nil)

// New creates the rewards page.
func New(opts Options) *RewardsScreen {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Resolver == nil {
		opts.Resolver = battle.LocalRules{}
	}
	r := &RewardsScreen{opts: opts, sess: opts.Session, logger: opts.Logger}

	var items []components.MenuItem
	for _, ch := range r.sess.Shop.Catalog().Chests {
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("%s · %d", strings.ToUpper(ch.Name), ch.Cost),
			Action: func() tea.Cmd { return r.openChest(ch.ID, ch.Name, ch.Cost) },
		})
	}
	items = append(items,
		components.MenuItem{Label: "ARMORY", Action: func() tea.Cmd {
			return router.Open(armory.New(r.sess))
		}},
		components.MenuItem{Label: "BOSS BATTLE", Action: r.startBattle},
		components.MenuItem{Label: "HISTORY", Action: func() tea.Cmd {
			if r.opts.Events == nil {
				r.notice = "History needs the database, which is not open."
				return nil
			}
			return router.Open(history.New(r.opts.Events))
		}},
		components.MenuItem{Label: "BACK TO STUDY", Action: func() tea.Cmd {
			return router.Back
		}},
	)

	r.menu = components.NewMenu(items)
	for _, it := range items {
		r.labels = append(r.labels, it.Label)
	}
	return r
}

func (r *RewardsScreen) openChest(id, name string, cost int) tea.Cmd {
	pending, err := r.sess.OpenChest(id)
	if errors.Is(err, points.ErrInsufficientPoints) {
		r.notice = fmt.Sprintf("You need %d points for the %s. Keep studying!", cost, name)
		return nil
	}
	if err != nil {
		r.logger.Error("open chest failed", "chest", id, "error", err)
		r.notice = "Something went wrong opening that chest."
		return nil
	}
	r.notice = ""
	return router.Open(reel.New(r.sess, id, name, pending))
}

func (r *RewardsScreen) startBattle() tea.Cmd {
	enc, err := r.sess.NewBattle()
	if errors.Is(err, battle.ErrNoQuestions) {
		r.notice = "Generate a quiz on the study page to summon the boss."
		return nil
	}
	if err != nil {
		r.logger.Error("start battle failed", "error", err)
		return nil
	}
	r.notice = ""
	return router.Open(arena.New(arena.Options{
		Session:   r.sess,
		Encounter: enc,
		Resolver:  r.opts.Resolver,
		Logger:    r.logger,
	}))
}

// Notice returns the inline message from the last action.
func (r *RewardsScreen) Notice() string { return r.notice }

func (r *RewardsScreen) Init() tea.Cmd {
	return nil
}

func (r *RewardsScreen) Title() string {
	return "Rewards"
}

func (r *RewardsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Study"},
	}
}

func (r *RewardsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case router.ResumedMsg:
		// Notices describe the last action here, which is stale once the
		// player has been elsewhere.
		r.notice = ""
		return r, nil
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return r, router.Back
		}
	}
	var cmd tea.Cmd
	r.menu, cmd = r.menu.Update(msg)
	return r, cmd
}

func (r *RewardsScreen) View(width, height int) string {
	termHeight := height + 8
	compact := termHeight < 34 || width < 90
	cw := components.ContentWidth(width)

	balance := r.sess.Ledger.Balance()
	variant := ChestClosed
	for _, ch := range r.sess.Shop.Catalog().Chests {
		if balance >= ch.Cost {
			variant = ChestReady
			break
		}
	}

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderChestBox(variant, cw))
	}
	sections = append(sections, renderStatsBar(
		balance, r.sess.Shop.ArmorCount(), len(r.sess.Materials.Quiz), cw, compact))
	if r.notice != "" {
		sections = append(sections, renderNotice(r.notice, cw))
	}
	sections = append(sections, renderMenu(r.labels, r.menu.Selected, cw, compact))

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}
