package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/abhisek/studybuddy/internal/logging"
	"github.com/abhisek/studybuddy/internal/studygen"
)

// materialGenerator is the subset of studygen.Service used here.
type materialGenerator interface {
	GenerateFlashcards(ctx context.Context, notes string) ([]studygen.Flashcard, error)
	GenerateSummary(ctx context.Context, notes string) (string, error)
	GenerateQuiz(ctx context.Context, notes string) ([]studygen.QuizQuestion, error)
}

var generateCmd = &cobra.Command{
	Use:       "generate <flashcards|summary|quiz>",
	Short:     "Generate study material from a notes file without the TUI",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"flashcards", "summary", "quiz"},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := studygen.ParseKind(args[0])
		if err != nil {
			return err
		}
		notes, err := readNotes(cmd)
		if err != nil {
			return err
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, closer, err := logging.New(logging.Options{
			Level:  "warn",
			Format: cfg.Log.Format,
			W:      cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}
		defer closer.Close()

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		gen, err := newGenerator(cmd.Context(), cfg.LLM, st.EventRepo(), logger)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.LLM.Timeout)
		defer cancel()
		material, err := generateMaterial(ctx, gen, kind, notes)
		if err != nil {
			return fmt.Errorf("%s: %w", kind.FailureMessage(), err)
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		out := cmd.OutOrStdout()
		if !asJSON && !isTerminal(out) {
			asJSON = true
		}
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(material)
		}
		writeMaterial(out, material)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringP("notes", "f", "-", `Notes file, or "-" for stdin`)
	generateCmd.Flags().Bool("json", false, "Print JSON even on a terminal")
}

func readNotes(cmd *cobra.Command) (string, error) {
	path, _ := cmd.Flags().GetString("notes")
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(cmd.InOrStdin())
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read notes: %w", err)
	}
	if strings.TrimSpace(string(b)) == "" {
		return "", studygen.ErrEmptyNotes
	}
	return string(b), nil
}

// material is the JSON shape of one generation. Exactly one field is set.
type material struct {
	Flashcards []studygen.Flashcard    `json:"flashcards,omitempty"`
	Summary    string                  `json:"summary,omitempty"`
	Quiz       []studygen.QuizQuestion `json:"quiz,omitempty"`
}

func generateMaterial(ctx context.Context, gen materialGenerator, kind studygen.Kind, notes string) (material, error) {
	var (
		m   material
		err error
	)
	switch kind {
	case studygen.KindFlashcards:
		m.Flashcards, err = gen.GenerateFlashcards(ctx, notes)
	case studygen.KindSummary:
		m.Summary, err = gen.GenerateSummary(ctx, notes)
	case studygen.KindQuiz:
		m.Quiz, err = gen.GenerateQuiz(ctx, notes)
	default:
		err = errors.New("unsupported kind")
	}
	return m, err
}

// writeMaterial prints a human-readable rendition.
func writeMaterial(w io.Writer, m material) {
	for i, c := range m.Flashcards {
		fmt.Fprintf(w, "%d. Q: %s\n   A: %s\n\n", i+1, c.Question, c.Answer)
	}
	if m.Summary != "" {
		fmt.Fprintln(w, m.Summary)
	}
	for i, q := range m.Quiz {
		fmt.Fprintf(w, "%d. %s\n", i+1, q.Question)
		for j, opt := range q.Options {
			marker := " "
			if j == q.CorrectIndex() {
				marker = "*"
			}
			fmt.Fprintf(w, "   %s %c) %s\n", marker, 'a'+j, opt)
		}
		fmt.Fprintln(w)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
