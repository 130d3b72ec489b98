// Package reel reveals a chest reward: a short countdown, then a reel of
// outcomes that lands on the winning slot.
package reel

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/rewards"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	countdownDur = 3 * time.Second
	spinDur      = 2 * time.Second

	// visibleSlots is how many reel entries are on screen at once.
	visibleSlots = 5
)

// Phase is where the reveal is.
type Phase int

const (
	PhaseCountdown Phase = iota
	PhaseSpinning
	PhaseLanded
	PhaseClosed
)

type tickMsg time.Time

// ReelScreen reveals one pending reward.
type ReelScreen struct {
	sess      *session.Session
	chestID   string
	chestName string
	pending   *rewards.Pending

	elapsed time.Duration
	phase   Phase
	balance int
	errMsg  string
}

var _ screen.Screen = (*ReelScreen)(nil)
var _ screen.KeyHintProvider = (*ReelScreen)(nil)

// New creates a reveal for a chest that has already been paid for.
func New(sess *session.Session, chestID, chestName string, pending *rewards.Pending) *ReelScreen {
	return &ReelScreen{
		sess:      sess,
		chestID:   chestID,
		chestName: chestName,
		pending:   pending,
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (s *ReelScreen) Init() tea.Cmd {
	return tick()
}

func (s *ReelScreen) Title() string {
	return s.chestName
}

func (s *ReelScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case PhaseLanded:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Claim Reward"},
			{Key: "Esc", Description: "Leave it"},
		}
	case PhaseClosed:
		return []layout.KeyHint{{Key: "Enter", Description: "Back"}}
	}
	return nil
}

// Phase returns the current reveal phase.
func (s *ReelScreen) Phase() Phase { return s.phase }

func (s *ReelScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if s.phase >= PhaseLanded {
			return s, nil
		}
		s.elapsed += tickInterval
		switch {
		case s.elapsed >= countdownDur+spinDur:
			s.phase = PhaseLanded
			return s, nil
		case s.elapsed >= countdownDur:
			s.phase = PhaseSpinning
		}
		return s, tick()

	case tea.KeyMsg:
		return s, s.handleKey(msg.String())
	}
	return s, nil
}

func (s *ReelScreen) handleKey(key string) tea.Cmd {
	switch s.phase {
	case PhaseLanded:
		switch key {
		case "enter", "space", "c":
			bal, err := s.sess.ClaimReward(s.chestID, s.pending)
			if err != nil && !errors.Is(err, rewards.ErrAlreadyClaimed) {
				s.errMsg = err.Error()
			}
			s.balance = bal
			s.phase = PhaseClosed
		case "esc":
			s.sess.DiscardReward(s.chestID, s.pending)
			s.phase = PhaseClosed
			return router.Back
		}
	case PhaseClosed:
		switch key {
		case "enter", "esc", "space":
			return router.Back
		}
	}
	return nil
}

// position is the reel index under the pointer. It eases out so the reel
// slows down before stopping on the winner.
func (s *ReelScreen) position() int {
	switch s.phase {
	case PhaseCountdown:
		return 0
	case PhaseSpinning:
		p := float64(s.elapsed-countdownDur) / float64(spinDur)
		p = min(max(p, 0), 1)
		eased := 1 - (1-p)*(1-p)*(1-p)
		return int(eased * float64(rewards.WinnerSlot))
	}
	return rewards.WinnerSlot
}

func (s *ReelScreen) View(width, height int) string {
	var sections []string

	if s.phase == PhaseCountdown {
		left := int((countdownDur - s.elapsed + time.Second - 1) / time.Second)
		sections = append(sections,
			lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).Render("Revealing your reward..."),
			"",
			lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(fmt.Sprintf("%d", max(left, 1))),
		)
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
	}

	sections = append(sections, s.renderReel())

	if s.phase >= PhaseLanded {
		res := s.pending.Spin.Result
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Result:"),
			lipgloss.NewStyle().
				Foreground(kindColor(res.Outcome.Kind)).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(kindColor(res.Outcome.Kind)).
				Padding(0, 2).
				Render(ResultText(res)),
		)
	}

	switch s.phase {
	case PhaseLanded:
		sections = append(sections, "", components.ArcadeButton("Claim Reward", true, 20))
	case PhaseClosed:
		msg := fmt.Sprintf("Claimed! Balance: %d points", s.balance)
		if s.errMsg != "" {
			msg = "Error: " + s.errMsg
		}
		sections = append(sections, "", lipgloss.NewStyle().Foreground(theme.Success).Render(msg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}

func (s *ReelScreen) renderReel() string {
	reel := s.pending.Spin.Reel
	pos := s.position()
	half := visibleSlots / 2

	var cells []string
	for i := pos - half; i <= pos+half; i++ {
		label := ""
		var fg color.Color = theme.TextDim
		if i >= 0 && i < len(reel) {
			label = reel[i].Label
			if i == pos {
				fg = kindColor(reel[i].Kind)
			}
		}
		border := theme.Border
		if i == pos {
			border = theme.ArcadeYellow
		}
		cells = append(cells, lipgloss.NewStyle().
			Width(14).
			Align(lipgloss.Center).
			Foreground(fg).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Render(label))
	}

	pointer := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render("▼")
	row := lipgloss.JoinHorizontal(lipgloss.Center, cells...)
	return lipgloss.JoinVertical(lipgloss.Center, pointer, row)
}

// ResultText describes what the draw is worth against its stake.
func ResultText(r rewards.Result) string {
	switch r.Outcome.Kind {
	case rewards.KindLoss:
		return fmt.Sprintf("%s. You get %d of your %d points back.", r.Outcome.Label, r.NetValue, r.Stake)
	case rewards.KindMultiplier:
		return fmt.Sprintf("%s! Your %d points became %d.", r.Outcome.Label, r.Stake, r.NetValue)
	default:
		return fmt.Sprintf("%s! You win %d points.", r.Outcome.Label, r.NetValue)
	}
}

func kindColor(k rewards.Kind) color.Color {
	switch k {
	case rewards.KindLoss:
		return theme.Error
	case rewards.KindMultiplier:
		return theme.Accent
	default:
		return theme.Success
	}
}
