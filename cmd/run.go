package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/app"
	"github.com/abhisek/studybuddy/internal/battle"
	"github.com/abhisek/studybuddy/internal/config"
	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/logging"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/shop"
	"github.com/abhisek/studybuddy/internal/store"
	"github.com/abhisek/studybuddy/internal/studygen"
	"github.com/abhisek/studybuddy/internal/timer"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// errNoProvider is returned when no LLM API key can be found.
var errNoProvider = errors.New("no LLM API key found (set GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY)")

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Stdout belongs to the TUI, so logs always go to a file.
	logFile := cfg.Log.File
	if logFile == "" {
		logFile = config.DefaultLogPath()
	}
	logger, closer, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, File: logFile})
	if err != nil {
		return err
	}
	defer closer.Close()

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	applyStoredTheme(ctx, st.SettingsRepo(), logger)

	catalog, err := shop.LoadCatalog(cfg.Shop.Catalog)
	if err != nil {
		return err
	}
	var cue timer.Cue = timer.NopCue{}
	if cfg.Timer.Bell {
		cue = timer.BellCue{}
	}

	eventRepo := st.EventRepo()
	sess, err := session.New(session.Options{
		Timer:   cfg.TimerSettings(),
		Cue:     cue,
		Catalog: catalog,
		Events:  eventRepo,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	skipWelcome, _ := cmd.Flags().GetBool("skip-welcome")
	opts := app.Options{
		Session:           sess,
		Events:            eventRepo,
		Settings:          st.SettingsRepo(),
		GenerationTimeout: cfg.LLM.Timeout,
		Resolver:          newResolver(cfg.Battle),
		Logger:            logger,
		SkipWelcome:       skipWelcome,
	}

	gen, err := newGenerator(ctx, cfg.LLM, eventRepo, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI generation will be unavailable.")
	} else {
		opts.Generator = gen
	}

	logger.Info("studybuddy started", "session_id", sess.ID, "run_id", st.RunID())
	if err := app.Run(ctx, opts); err != nil {
		return err
	}

	sum := sess.Summary()
	logger.Info("studybuddy exited",
		"session_id", sess.ID, "study_seconds", sum.StudySeconds, "points_earned", sum.PointsEarned)
	printSummary(cmd.OutOrStdout(), sum)
	return nil
}

// newGenerator builds the study material generator, discovering an API key
// from the vendors' standard variables when the config has none.
func newGenerator(ctx context.Context, cfg llm.Config, repo store.EventRepo, logger *slog.Logger) (*studygen.Service, error) {
	if !llm.DiscoverConfig(&cfg) {
		return nil, errNoProvider
	}
	provider, err := llm.NewProvider(ctx, cfg, repo, logger)
	if err != nil {
		return nil, err
	}
	return studygen.NewService(provider, studygen.DefaultConfig()), nil
}

// newResolver resolves battle turns against the configured server, or
// in-process when none is set.
func newResolver(cfg config.BattleConfig) battle.Resolver {
	if cfg.ResolverURL == "" {
		return battle.LocalRules{}
	}
	return battle.NewHTTPResolver(cfg.ResolverURL, cfg.Timeout)
}

func applyStoredTheme(ctx context.Context, repo store.SettingsRepo, logger *slog.Logger) {
	name, err := repo.Theme(ctx)
	if err != nil {
		logger.Warn("failed to load theme", "error", err)
		return
	}
	mode, err := theme.ParseMode(name)
	if err != nil {
		logger.Warn("ignoring stored theme", "theme", name, "error", err)
		return
	}
	if err := theme.Set(mode); err != nil {
		logger.Warn("failed to apply theme", "theme", name, "error", err)
	}
}

func printSummary(w io.Writer, sum session.Summary) {
	fmt.Fprintf(w, "Studied %s, earned %d points. Balance at exit: %d (armor pieces: %d)\n",
		timer.FormatClock(sum.StudySeconds), sum.PointsEarned, sum.Balance, sum.Armor)
}
