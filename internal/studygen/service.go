package studygen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/studybuddy/internal/llm"
)

// Config controls generation requests.
type Config struct {
	MaxTokens     int
	Temperature   float64
	MinItems      int
	MaxItems      int
	MaxNotesChars int
}

// DefaultConfig returns the defaults used by the app.
func DefaultConfig() Config {
	return Config{
		MaxTokens:     4096,
		Temperature:   0.3,
		MinItems:      5,
		MaxItems:      10,
		MaxNotesChars: 20000,
	}
}

// Service generates flashcards, summaries and quizzes from notes.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a generation service over provider.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

type flashcardsOutput struct {
	Flashcards []Flashcard `json:"flashcards"`
}

type summaryOutput struct {
	Summary string `json:"summary"`
}

type quizOutput struct {
	Questions []QuizQuestion `json:"questions"`
}

// GenerateFlashcards returns a flashcard deck for notes.
func (s *Service) GenerateFlashcards(ctx context.Context, notes string) ([]Flashcard, error) {
	var out flashcardsOutput
	if err := s.generate(ctx, KindFlashcards, notes, FlashcardsSchema, &out); err != nil {
		return nil, err
	}

	cards := make([]Flashcard, 0, len(out.Flashcards))
	for _, c := range out.Flashcards {
		c.Question = strings.TrimSpace(c.Question)
		c.Answer = strings.TrimSpace(c.Answer)
		if c.Question == "" || c.Answer == "" {
			continue
		}
		cards = append(cards, c)
	}
	if len(cards) == 0 {
		return nil, &llm.ErrInvalidResponse{Err: fmt.Errorf("no usable flashcards in response")}
	}
	return cards, nil
}

// GenerateSummary returns a summary of notes.
func (s *Service) GenerateSummary(ctx context.Context, notes string) (string, error) {
	var out summaryOutput
	if err := s.generate(ctx, KindSummary, notes, SummarySchema, &out); err != nil {
		return "", err
	}
	summary := strings.TrimSpace(out.Summary)
	if summary == "" {
		return "", &llm.ErrInvalidResponse{Err: fmt.Errorf("empty summary in response")}
	}
	return summary, nil
}

// GenerateQuiz returns multiple choice questions for notes. Questions whose
// correct answer is not among their options are dropped.
func (s *Service) GenerateQuiz(ctx context.Context, notes string) ([]QuizQuestion, error) {
	var out quizOutput
	if err := s.generate(ctx, KindQuiz, notes, QuizSchema, &out); err != nil {
		return nil, err
	}

	questions := make([]QuizQuestion, 0, len(out.Questions))
	for _, q := range out.Questions {
		if q.Validate() != nil {
			continue
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return nil, &llm.ErrInvalidResponse{Err: fmt.Errorf("no valid quiz questions in response")}
	}
	return questions, nil
}

func (s *Service) generate(ctx context.Context, kind Kind, notes string, schema *llm.Schema, out any) error {
	if strings.TrimSpace(notes) == "" {
		return ErrEmptyNotes
	}

	ctx = llm.WithPurpose(ctx, kind.Purpose())

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(kind, notes, s.cfg)},
		},
		Schema:      schema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("%s generation: %w", kind, err)
	}

	if err := json.Unmarshal(resp.Content, out); err != nil {
		return fmt.Errorf("parse %s response: %w", kind, err)
	}
	return nil
}
