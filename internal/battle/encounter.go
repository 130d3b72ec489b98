package battle

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/abhisek/studybuddy/internal/studygen"
)

// State is the encounter lifecycle state.
type State string

const (
	StateIdle    State = "idle"
	StateOngoing State = "ongoing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Phase is the per-question sub-state while ongoing.
type Phase string

const (
	PhaseAwaitingAnswer Phase = "awaiting-answer"
	PhaseResolving      Phase = "resolving"
	PhaseResolved       Phase = "resolved"
)

const (
	MessageArmorAbsorbed   = "Your armor absorbed the blow! Try again."
	MessageConnectionError = "Connection error: could not reach the battle server."
)

var (
	ErrNoQuestions       = errors.New("a battle needs at least one quiz question")
	ErrNotAwaitingAnswer = errors.New("not waiting for an answer")
	ErrNotResolved       = errors.New("current turn is not resolved")
	ErrStaleTurn         = errors.New("turn is not the one being resolved")
)

// Turn is an answer that must be resolved by a Resolver.
type Turn struct {
	QuestionIndex int
	Choice        string
	Correct       bool
	Request       ResolveRequest
}

// Encounter is one quiz-driven boss battle.
type Encounter struct {
	ID uuid.UUID

	questions []studygen.QuizQuestion
	armor     int

	player    int
	maxPlayer int
	boss      int
	maxBoss   int
	index     int
	retries   int
	absorbed  int

	state   State
	phase   Phase
	message string
	pending *Turn
}

// NewEncounter returns an idle encounter.
func NewEncounter() *Encounter {
	return &Encounter{state: StateIdle}
}

// Start begins a battle. The player gets one heart plus one per armor
// piece; the boss gets one heart per question.
func (e *Encounter) Start(questions []studygen.QuizQuestion, armor int) error {
	if len(questions) == 0 {
		return ErrNoQuestions
	}
	if armor < 0 {
		armor = 0
	}

	*e = Encounter{
		ID:        uuid.New(),
		questions: questions,
		armor:     armor,
		player:    1 + armor,
		maxPlayer: 1 + armor,
		boss:      max(len(questions), 1),
		maxBoss:   max(len(questions), 1),
		retries:   armor,
		state:     StateOngoing,
		phase:     PhaseAwaitingAnswer,
	}
	return nil
}

// Restart replays the battle with the same questions and armor.
func (e *Encounter) Restart() error {
	return e.Start(e.questions, e.armor)
}

// Answer submits choice for the current question. A wrong answer with an
// armor retry left is absorbed locally and returns a nil Turn; otherwise the
// returned Turn must be passed to Resolve or Fail.
func (e *Encounter) Answer(choice string) (*Turn, error) {
	if e.state != StateOngoing || e.phase != PhaseAwaitingAnswer {
		return nil, ErrNotAwaitingAnswer
	}

	q := e.questions[e.index]
	correct := q.IsCorrect(choice)

	if !correct && e.retries > 0 {
		e.retries--
		e.absorbed++
		e.player--
		e.message = MessageArmorAbsorbed
		if e.player <= 0 {
			e.player = 0
			e.end(StateLost)
		}
		return nil, nil
	}

	turn := &Turn{
		QuestionIndex: e.index,
		Choice:        choice,
		Correct:       correct,
		Request: ResolveRequest{
			WasAnswerCorrect: correct,
			PlayerHealth:     e.player,
			BossHealth:       e.boss,
		},
	}
	e.pending = turn
	e.phase = PhaseResolving
	return turn, nil
}

// Resolve applies the authoritative result of turn.
func (e *Encounter) Resolve(turn *Turn, resp ResolveResponse) error {
	if e.phase != PhaseResolving || turn == nil || turn != e.pending {
		return ErrStaleTurn
	}
	e.pending = nil

	if turn.Correct {
		e.boss = clamp(resp.NewBossHealth, 0, e.maxBoss)
	} else {
		e.player = clamp(resp.NewPlayerHealth, 0, e.maxPlayer)
	}
	e.message = resp.Message

	switch {
	case e.player <= 0:
		e.end(StateLost)
	case e.boss <= 0:
		e.end(StateWon)
	default:
		e.phase = PhaseResolved
	}
	return nil
}

// Fail records that turn could not be resolved. Health is untouched and the
// same question is open for another attempt.
func (e *Encounter) Fail(turn *Turn, _ error) error {
	if e.phase != PhaseResolving || turn == nil || turn != e.pending {
		return ErrStaleTurn
	}
	e.pending = nil
	e.phase = PhaseAwaitingAnswer
	e.message = MessageConnectionError
	return nil
}

// Next advances to the following question. Surviving the last question
// wins the battle.
func (e *Encounter) Next() error {
	if e.state != StateOngoing || e.phase != PhaseResolved {
		return ErrNotResolved
	}
	if e.index+1 >= len(e.questions) {
		e.end(StateWon)
		return nil
	}
	e.index++
	e.phase = PhaseAwaitingAnswer
	e.message = ""
	return nil
}

// Submit answers and, when needed, resolves the turn synchronously.
func (e *Encounter) Submit(ctx context.Context, r Resolver, choice string) error {
	turn, err := e.Answer(choice)
	if err != nil || turn == nil {
		return err
	}
	resp, err := r.ResolveTurn(ctx, turn.Request)
	if err != nil {
		if ferr := e.Fail(turn, err); ferr != nil {
			return errors.Join(err, ferr)
		}
		return err
	}
	return e.Resolve(turn, resp)
}

func (e *Encounter) end(s State) {
	e.state = s
	e.phase = PhaseResolved
}

func (e *Encounter) State() State         { return e.state }
func (e *Encounter) Phase() Phase         { return e.phase }
func (e *Encounter) Message() string      { return e.message }
func (e *Encounter) PlayerHealth() int    { return e.player }
func (e *Encounter) MaxPlayerHealth() int { return e.maxPlayer }
func (e *Encounter) BossHealth() int      { return e.boss }
func (e *Encounter) MaxBossHealth() int   { return e.maxBoss }
func (e *Encounter) QuestionIndex() int   { return e.index }
func (e *Encounter) QuestionCount() int   { return len(e.questions) }
func (e *Encounter) ArmorRetries() int    { return e.retries }
func (e *Encounter) ArmorAbsorbed() int   { return e.absorbed }
func (e *Encounter) Armor() int           { return e.armor }

// Question returns the current question.
func (e *Encounter) Question() (studygen.QuizQuestion, bool) {
	if e.state == StateIdle || e.index >= len(e.questions) {
		return studygen.QuizQuestion{}, false
	}
	return e.questions[e.index], true
}

// Over reports whether the battle has ended.
func (e *Encounter) Over() bool {
	return e.state == StateWon || e.state == StateLost
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
