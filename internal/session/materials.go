package session

import "github.com/abhisek/studybuddy/internal/studygen"

// Materials is the latest output of each generation kind. A new result
// replaces the previous one of the same kind.
type Materials struct {
	Flashcards []studygen.Flashcard
	Summary    string
	Quiz       []studygen.QuizQuestion
}

// HasQuiz reports whether a battle can be started.
func (m Materials) HasQuiz() bool { return len(m.Quiz) > 0 }
