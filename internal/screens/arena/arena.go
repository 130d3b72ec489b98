// Package arena runs a boss battle over the generated quiz. Turns are
// resolved by a battle.Resolver off the UI goroutine.
package arena

import (
	"context"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/battle"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
)

// Options wires a battle.
type Options struct {
	Session   *session.Session
	Encounter *battle.Encounter
	Resolver  battle.Resolver
	// Timeout bounds one resolve-turn round trip.
	Timeout time.Duration
	Logger  *slog.Logger
}

type turnResolvedMsg struct {
	Turn *battle.Turn
	Resp battle.ResolveResponse
	Err  error
}

// ArenaScreen is one boss battle.
type ArenaScreen struct {
	opts     Options
	sess     *session.Session
	enc      *battle.Encounter
	logger   *slog.Logger
	mc       components.MultiChoice
	recorded bool
}

var _ screen.Screen = (*ArenaScreen)(nil)
var _ screen.KeyHintProvider = (*ArenaScreen)(nil)

// New creates the battle screen for an encounter that has been started.
func New(opts Options) *ArenaScreen {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Resolver == nil {
		opts.Resolver = battle.LocalRules{}
	}
	a := &ArenaScreen{opts: opts, sess: opts.Session, enc: opts.Encounter, logger: opts.Logger}
	a.resetChoice()
	return a
}

func (a *ArenaScreen) Init() tea.Cmd {
	return nil
}

func (a *ArenaScreen) Title() string {
	return "Boss Battle"
}

func (a *ArenaScreen) KeyHints() []layout.KeyHint {
	switch {
	case a.enc.Over():
		return []layout.KeyHint{
			{Key: "R", Description: "Play Again"},
			{Key: "Esc", Description: "Leave"},
		}
	case a.enc.Phase() == battle.PhaseResolved:
		return []layout.KeyHint{{Key: "Enter", Description: "Next"}, {Key: "Esc", Description: "Flee"}}
	case a.enc.Phase() == battle.PhaseResolving:
		return []layout.KeyHint{{Key: "", Description: "Resolving..."}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Attack"},
		{Key: "Esc", Description: "Flee"},
	}
}

// Encounter returns the battle being played.
func (a *ArenaScreen) Encounter() *battle.Encounter { return a.enc }

func (a *ArenaScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case turnResolvedMsg:
		a.handleResolved(msg)
		return a, nil
	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}
	return a, nil
}

func (a *ArenaScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "esc" && a.enc.Phase() != battle.PhaseResolving {
		return router.Back
	}

	if a.enc.Over() {
		if key == "r" {
			if err := a.enc.Restart(); err != nil {
				a.logger.Warn("battle restart failed", "error", err)
				return nil
			}
			a.recorded = false
			a.resetChoice()
		}
		return nil
	}

	switch a.enc.Phase() {
	case battle.PhaseResolved:
		if key == "enter" || key == "n" {
			if err := a.enc.Next(); err == nil {
				a.afterTransition()
			}
		}
		return nil

	case battle.PhaseAwaitingAnswer:
		var cmd tea.Cmd
		a.mc, cmd = a.mc.Update(msg)
		choice, ok := a.mc.Chosen()
		if !ok {
			return cmd
		}
		return a.answer(choice)
	}
	return nil
}

// answer submits choice. Turns that need the server return a command that
// resolves them; turns absorbed by armor are finished immediately.
func (a *ArenaScreen) answer(choice string) tea.Cmd {
	turn, err := a.enc.Answer(choice)
	if err != nil {
		a.logger.Warn("answer rejected", "error", err)
		a.resetChoice()
		return nil
	}
	if turn == nil {
		a.afterTransition()
		return nil
	}

	resolver, timeout := a.opts.Resolver, a.opts.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		resp, err := resolver.ResolveTurn(ctx, turn.Request)
		return turnResolvedMsg{Turn: turn, Resp: resp, Err: err}
	}
}

func (a *ArenaScreen) handleResolved(msg turnResolvedMsg) {
	if msg.Err != nil {
		a.logger.Warn("resolve turn failed", "error", msg.Err)
		if err := a.enc.Fail(msg.Turn, msg.Err); err != nil {
			return
		}
		a.resetChoice()
		return
	}
	if err := a.enc.Resolve(msg.Turn, msg.Resp); err != nil {
		a.logger.Warn("stale turn dropped", "error", err)
		return
	}
	a.afterTransition()
}

func (a *ArenaScreen) afterTransition() {
	if a.enc.Over() {
		if !a.recorded {
			a.sess.RecordBattle(a.enc)
			a.recorded = true
		}
		return
	}
	if a.enc.Phase() == battle.PhaseAwaitingAnswer {
		a.resetChoice()
	}
}

func (a *ArenaScreen) resetChoice() {
	q, ok := a.enc.Question()
	if !ok {
		return
	}
	a.mc = components.NewMultiChoice(q.Question, q.Options, q.CorrectIndex())
}
