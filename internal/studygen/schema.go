package studygen

import "github.com/abhisek/studybuddy/internal/llm"

// FlashcardsSchema defines the JSON schema for flashcard generation.
var FlashcardsSchema = &llm.Schema{
	Name:        "flashcards",
	Description: "A deck of question and answer flashcards covering the notes",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"flashcards": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question or term for the front of the card",
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "The answer or definition for the back of the card",
						},
					},
					"required":             []any{"question", "answer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"flashcards"},
		"additionalProperties": false,
	},
}

// SummarySchema defines the JSON schema for note summaries.
var SummarySchema = &llm.Schema{
	Name:        "summary",
	Description: "A concise study summary of the notes",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "Summary of the key points, formatted as short paragraphs or bullet lines",
			},
		},
		"required":             []any{"summary"},
		"additionalProperties": false,
	},
}

// QuizSchema defines the JSON schema for multiple-choice quizzes.
var QuizSchema = &llm.Schema{
	Name:        "quiz",
	Description: "A multiple-choice quiz testing the notes",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question text",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly four answer options",
						},
						"correctAnswer": map[string]any{
							"type":        "string",
							"description": "The correct option, copied verbatim from options",
						},
					},
					"required":             []any{"question", "options", "correctAnswer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
