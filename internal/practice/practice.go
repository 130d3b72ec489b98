// Package practice tracks a self-check run through a generated quiz: each
// question can be answered once, then the learner moves on until the
// score is shown.
package practice

import (
	"errors"

	"github.com/abhisek/studybuddy/internal/studygen"
)

var (
	ErrAlreadyAnswered = errors.New("question already answered")
	ErrNotAnswered     = errors.New("answer the question first")
	ErrFinished        = errors.New("quiz finished")
)

// Run is one pass through a quiz.
type Run struct {
	questions []studygen.QuizQuestion
	index     int
	chosen    string
	answered  bool
	score     int
	finished  bool
}

// New starts a run over questions.
func New(questions []studygen.QuizQuestion) *Run {
	return &Run{questions: questions}
}

// Current returns the question on screen.
func (r *Run) Current() (studygen.QuizQuestion, bool) {
	if r.finished || r.index >= len(r.questions) {
		return studygen.QuizQuestion{}, false
	}
	return r.questions[r.index], true
}

// Answer records choice for the current question and reports whether it
// was correct.
func (r *Run) Answer(choice string) (bool, error) {
	if r.finished {
		return false, ErrFinished
	}
	if r.answered {
		return false, ErrAlreadyAnswered
	}
	q, ok := r.Current()
	if !ok {
		return false, ErrFinished
	}
	r.chosen = choice
	r.answered = true
	correct := q.IsCorrect(choice)
	if correct {
		r.score++
	}
	return correct, nil
}

// Next moves to the next question, finishing the run after the last one.
func (r *Run) Next() error {
	if r.finished {
		return ErrFinished
	}
	if !r.answered {
		return ErrNotAnswered
	}
	r.answered = false
	r.chosen = ""
	if r.index+1 >= len(r.questions) {
		r.finished = true
		return nil
	}
	r.index++
	return nil
}

// Restart clears all answers.
func (r *Run) Restart() {
	*r = Run{questions: r.questions}
}

func (r *Run) Index() int     { return r.index }
func (r *Run) Total() int     { return len(r.questions) }
func (r *Run) Answered() bool { return r.answered }
func (r *Run) Chosen() string { return r.chosen }
func (r *Run) Score() int     { return r.score }
func (r *Run) Finished() bool { return r.finished }
func (r *Run) IsLast() bool   { return r.index == len(r.questions)-1 }

// Percent returns the rounded score percentage.
func (r *Run) Percent() int {
	if len(r.questions) == 0 {
		return 0
	}
	return (r.score*100 + len(r.questions)/2) / len(r.questions)
}
