package studygen

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyNotes is returned when generation is requested with blank notes.
var ErrEmptyNotes = errors.New("notes are empty")

// Kind identifies one of the three generation operations.
type Kind string

const (
	KindFlashcards Kind = "flashcards"
	KindSummary    Kind = "summary"
	KindQuiz       Kind = "quiz"
)

// Kinds lists every generation kind in display order.
var Kinds = []Kind{KindFlashcards, KindSummary, KindQuiz}

// ParseKind maps a user-supplied name to a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown generation kind %q (want flashcards, summary or quiz)", s)
}

// Purpose is the llm purpose label for this kind.
func (k Kind) Purpose() string {
	return "study-" + string(k)
}

// EmptyNotesMessage is the inline message shown when notes are blank.
func (k Kind) EmptyNotesMessage() string {
	noun := string(k)
	if k == KindSummary {
		noun = "a summary"
	} else if k == KindQuiz {
		noun = "a quiz"
	}
	return fmt.Sprintf("Please enter some notes before generating %s.", noun)
}

// FailureMessage is the generic message shown when generation fails for
// any reason, network or malformed output alike.
func (k Kind) FailureMessage() string {
	noun := string(k)
	if k == KindSummary {
		noun = "summary"
	}
	return fmt.Sprintf("Failed to generate %s. Please check your API key and try again.", noun)
}

// Flashcard is a question/answer pair.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QuizQuestion is a four-option multiple choice question.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// OptionCount is the number of options every quiz question carries.
const OptionCount = 4

// Validate checks the option count and that the correct answer is one of
// the options.
func (q QuizQuestion) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return errors.New("question text is empty")
	}
	if len(q.Options) != OptionCount {
		return fmt.Errorf("question %q has %d options, want %d", q.Question, len(q.Options), OptionCount)
	}
	if q.CorrectIndex() < 0 {
		return fmt.Errorf("question %q: correct answer %q is not one of the options", q.Question, q.CorrectAnswer)
	}
	return nil
}

// CorrectIndex returns the index of the correct option, or -1.
func (q QuizQuestion) CorrectIndex() int {
	for i, o := range q.Options {
		if o == q.CorrectAnswer {
			return i
		}
	}
	return -1
}

// IsCorrect reports whether choice matches the correct answer.
func (q QuizQuestion) IsCorrect(choice string) bool {
	return choice == q.CorrectAnswer
}
