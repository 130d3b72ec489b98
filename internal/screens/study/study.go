// Package study implements the study page: the notes editor, the generated
// flashcards, summary and quiz, and the study timer panel.
package study

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/practice"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/studygen"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
)

// Tab is one panel of the study page.
type Tab int

const (
	TabNotes Tab = iota
	TabFlashcards
	TabSummary
	TabQuiz
)

var tabNames = []string{"Notes", "Flashcards", "Summary", "Quiz"}

func (t Tab) String() string { return tabNames[t] }

func tabFor(k studygen.Kind) Tab {
	switch k {
	case studygen.KindFlashcards:
		return TabFlashcards
	case studygen.KindSummary:
		return TabSummary
	default:
		return TabQuiz
	}
}

// Generator produces study material from notes. *studygen.Service
// implements it.
type Generator interface {
	GenerateFlashcards(ctx context.Context, notes string) ([]studygen.Flashcard, error)
	GenerateSummary(ctx context.Context, notes string) (string, error)
	GenerateQuiz(ctx context.Context, notes string) ([]studygen.QuizQuestion, error)
}

// Options wires the study page.
type Options struct {
	Session *session.Session
	// Generator is nil when no LLM is configured.
	Generator Generator
	Timeout   time.Duration
	Logger    *slog.Logger
	// Rewards and Settings build the screens opened from this page.
	Rewards  func() screen.Screen
	Settings func() screen.Screen
}

// StudyScreen is the study page.
type StudyScreen struct {
	opts   Options
	sess   *session.Session
	logger *slog.Logger

	tab     Tab
	editor  components.NotesEditor
	spinner spinner.Model
	summary viewport.Model

	loading map[studygen.Kind]bool
	errs    map[studygen.Kind]string

	card    int
	flipped bool

	run *practice.Run
	mc  components.MultiChoice
}

var _ screen.Screen = (*StudyScreen)(nil)
var _ screen.KeyHintProvider = (*StudyScreen)(nil)
var _ screen.StudyPage = (*StudyScreen)(nil)

// New creates the study page.
func New(opts Options) *StudyScreen {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &StudyScreen{
		opts:    opts,
		sess:    opts.Session,
		logger:  opts.Logger,
		editor:  components.NewNotesEditor("Paste or type your notes here..."),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		summary: viewport.New(),
		loading: make(map[studygen.Kind]bool),
		errs:    make(map[studygen.Kind]string),
	}
}

func (s *StudyScreen) Init() tea.Cmd {
	return s.editor.Init()
}

func (s *StudyScreen) Title() string {
	return "Study"
}

// StudyPage marks this screen as the one the timer runs on.
func (s *StudyScreen) StudyPage() bool { return true }

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	common := []layout.KeyHint{
		{Key: "Tab", Description: "Switch"},
		{Key: "^F/^S/^Q", Description: "Generate"},
		{Key: "^P", Description: "Pomodoro"},
		{Key: "^R", Description: "Rewards"},
		{Key: "^O", Description: "Settings"},
	}
	switch s.tab {
	case TabFlashcards:
		return append([]layout.KeyHint{{Key: "Space", Description: "Flip"}, {Key: "←→", Description: "Cards"}}, common...)
	case TabQuiz:
		return append([]layout.KeyHint{{Key: "Enter", Description: "Answer"}}, common...)
	}
	return common
}

// Loading reports whether a request of kind is outstanding.
func (s *StudyScreen) Loading(kind studygen.Kind) bool { return s.loading[kind] }

// Error returns the inline error for kind, if any.
func (s *StudyScreen) Error(kind studygen.Kind) string { return s.errs[kind] }

// Tab returns the active tab.
func (s *StudyScreen) Tab() Tab { return s.tab }

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		return s, s.handleGenerated(msg)

	case spinnerTickMsg:
		if !s.anyLoading() {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg.TickMsg)
		return s, wrapSpinnerTick(cmd)

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}

	if s.tab == TabNotes {
		var cmd tea.Cmd
		s.editor, cmd = s.editor.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *StudyScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+f":
		return s.generate(studygen.KindFlashcards)
	case "ctrl+s":
		return s.generate(studygen.KindSummary)
	case "ctrl+q":
		return s.generate(studygen.KindQuiz)
	case "ctrl+p":
		s.sess.Tracker.SetPomodoro(!s.sess.Tracker.PomodoroEnabled())
		return nil
	case "ctrl+r":
		if s.opts.Rewards == nil {
			return nil
		}
		next := s.opts.Rewards()
		return router.Open(next)
	case "ctrl+o":
		if s.opts.Settings == nil {
			return nil
		}
		next := s.opts.Settings()
		return router.Open(next)
	case "tab":
		return s.setTab((s.tab + 1) % Tab(len(tabNames)))
	case "shift+tab":
		return s.setTab((s.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames)))
	}

	switch s.tab {
	case TabNotes:
		var cmd tea.Cmd
		s.editor, cmd = s.editor.Update(msg)
		return cmd
	case TabFlashcards:
		s.handleFlashcardKey(msg.String())
	case TabSummary:
		var cmd tea.Cmd
		s.summary, cmd = s.summary.Update(msg)
		return cmd
	case TabQuiz:
		return s.handleQuizKey(msg)
	}
	return nil
}

func (s *StudyScreen) setTab(t Tab) tea.Cmd {
	s.tab = t
	if t == TabNotes {
		return s.editor.Focus()
	}
	s.editor.Blur()
	return nil
}

// generate starts a request for kind unless one is already running. Blank
// notes and a missing provider are reported inline without a request.
func (s *StudyScreen) generate(kind studygen.Kind) tea.Cmd {
	if s.loading[kind] {
		return nil
	}
	notes := s.editor.Value()
	if strings.TrimSpace(notes) == "" {
		s.errs[kind] = kind.EmptyNotesMessage()
		return nil
	}
	if s.opts.Generator == nil {
		s.errs[kind] = kind.FailureMessage()
		return nil
	}

	delete(s.errs, kind)
	s.loading[kind] = true
	gen, timeout := s.opts.Generator, s.opts.Timeout
	return tea.Batch(
		wrapSpinnerTick(s.spinner.Tick),
		func() tea.Msg { return runGeneration(gen, kind, notes, timeout) },
	)
}

func runGeneration(gen Generator, kind studygen.Kind, notes string, timeout time.Duration) generatedMsg {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	msg := generatedMsg{Kind: kind}
	switch kind {
	case studygen.KindFlashcards:
		msg.Flashcards, msg.Err = gen.GenerateFlashcards(ctx, notes)
	case studygen.KindSummary:
		msg.Summary, msg.Err = gen.GenerateSummary(ctx, notes)
	case studygen.KindQuiz:
		msg.Quiz, msg.Err = gen.GenerateQuiz(ctx, notes)
	}
	return msg
}

func (s *StudyScreen) handleGenerated(msg generatedMsg) tea.Cmd {
	s.loading[msg.Kind] = false
	if msg.Err != nil {
		s.logger.Warn("generation failed", "kind", string(msg.Kind), "error", msg.Err)
		s.errs[msg.Kind] = msg.Kind.FailureMessage()
		return nil
	}
	delete(s.errs, msg.Kind)

	m := &s.sess.Materials
	switch msg.Kind {
	case studygen.KindFlashcards:
		m.Flashcards = msg.Flashcards
		s.card, s.flipped = 0, false
	case studygen.KindSummary:
		m.Summary = msg.Summary
		s.summary.SetContent(msg.Summary)
		s.summary.GotoTop()
	case studygen.KindQuiz:
		m.Quiz = msg.Quiz
		s.run = practice.New(msg.Quiz)
		s.resetChoice()
	}
	return s.setTab(tabFor(msg.Kind))
}

func (s *StudyScreen) anyLoading() bool {
	for _, v := range s.loading {
		if v {
			return true
		}
	}
	return false
}

func (s *StudyScreen) handleFlashcardKey(key string) {
	cards := s.sess.Materials.Flashcards
	if len(cards) == 0 {
		return
	}
	switch key {
	case "space", "enter", "f":
		s.flipped = !s.flipped
	case "right", "l", "n":
		if s.card < len(cards)-1 {
			s.card++
			s.flipped = false
		}
	case "left", "h", "p":
		if s.card > 0 {
			s.card--
			s.flipped = false
		}
	}
}

func (s *StudyScreen) handleQuizKey(msg tea.KeyMsg) tea.Cmd {
	if s.run == nil {
		return nil
	}
	if s.run.Finished() {
		if msg.String() == "r" {
			s.run.Restart()
			s.resetChoice()
		}
		return nil
	}

	if s.run.Answered() {
		switch msg.String() {
		case "enter", "n":
			if err := s.run.Next(); err == nil {
				s.resetChoice()
			}
		}
		return nil
	}

	var cmd tea.Cmd
	s.mc, cmd = s.mc.Update(msg)
	if choice, ok := s.mc.Chosen(); ok {
		s.run.Answer(choice)
	}
	return cmd
}

func (s *StudyScreen) resetChoice() {
	q, ok := s.run.Current()
	if !ok {
		return
	}
	s.mc = components.NewMultiChoice(q.Question, q.Options, q.CorrectIndex())
}
