package studygen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a study assistant. You turn a student's raw notes into study material. Stay strictly within the content of the notes; do not invent facts that are not supported by them.`

func buildUserMessage(kind Kind, notes string, cfg Config) string {
	var b strings.Builder

	switch kind {
	case KindFlashcards:
		b.WriteString(fmt.Sprintf("Based on the following notes, generate between %d and %d flashcards.\n", cfg.MinItems, cfg.MaxItems))
		b.WriteString("Each flashcard should have a clear question and a concise answer.\n")
	case KindSummary:
		b.WriteString("Summarize the following notes for revision.\n")
		b.WriteString("Keep the most important definitions, facts and relationships. Aim for under 250 words.\n")
	case KindQuiz:
		b.WriteString(fmt.Sprintf("Based on the following notes, write a multiple-choice quiz with between %d and %d questions.\n", cfg.MinItems, cfg.MaxItems))
		b.WriteString("Each question must have exactly four options. The correctAnswer must be copied exactly from one of the options. Only one option may be correct.\n")
	}

	b.WriteString("\nNotes:\n---\n")
	b.WriteString(truncateNotes(notes, cfg.MaxNotesChars))
	b.WriteString("\n---\n")

	return b.String()
}

func truncateNotes(notes string, limit int) string {
	notes = strings.TrimSpace(notes)
	if limit <= 0 {
		return notes
	}
	r := []rune(notes)
	if len(r) <= limit {
		return notes
	}
	return string(r[:limit]) + "\n[notes truncated]"
}
