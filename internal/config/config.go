// Package config loads studybuddy settings from config.toml and STUDYBUDDY_*
// environment variables. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/timer"
)

// Config is the full application configuration.
type Config struct {
	Timer  TimerConfig  `toml:"timer" envPrefix:"TIMER_"`
	Server ServerConfig `toml:"server" envPrefix:"SERVER_"`
	Battle BattleConfig `toml:"battle" envPrefix:"BATTLE_"`
	Shop   ShopConfig   `toml:"shop" envPrefix:"SHOP_"`
	Log    LogConfig    `toml:"log" envPrefix:"LOG_"`
	LLM    llm.Config   `toml:"llm"`
}

// TimerConfig controls the study timer and pomodoro cycle.
type TimerConfig struct {
	Study           time.Duration `toml:"study" env:"STUDY"`
	Break           time.Duration `toml:"break" env:"BREAK"`
	PointsPerMinute int           `toml:"points_per_minute" env:"POINTS_PER_MINUTE"`
	// Bell rings the terminal bell when a break starts.
	Bell bool `toml:"bell" env:"BELL"`
}

// ServerConfig configures `studybuddy serve`.
type ServerConfig struct {
	Addr           string        `toml:"addr" env:"ADDR"`
	CORSOrigins    []string      `toml:"cors_origins" env:"CORS_ORIGINS" envSeparator:","`
	RequestTimeout time.Duration `toml:"request_timeout" env:"REQUEST_TIMEOUT"`
}

// BattleConfig selects where turns are resolved. An empty ResolverURL
// applies the rules in-process.
type BattleConfig struct {
	ResolverURL string        `toml:"resolver_url" env:"RESOLVER_URL"`
	Timeout     time.Duration `toml:"timeout" env:"TIMEOUT"`
}

// ShopConfig points at an alternative catalog file.
type ShopConfig struct {
	Catalog string `toml:"catalog" env:"CATALOG"`
}

// LogConfig configures the application logger.
type LogConfig struct {
	Level string `toml:"level" env:"LEVEL"`
	// Format is "text" or "json".
	Format string `toml:"format" env:"FORMAT"`
	// File, when set, receives logs instead of stderr. The TUI always logs
	// to a file.
	File string `toml:"file" env:"FILE"`
}

// Default returns the built-in configuration.
func Default() Config {
	tc := timer.DefaultConfig()
	return Config{
		Timer: TimerConfig{
			Study:           tc.StudyDuration,
			Break:           tc.BreakDuration,
			PointsPerMinute: tc.PointsPerMinute,
			Bell:            true,
		},
		Server: ServerConfig{
			Addr:           "localhost:5000",
			CORSOrigins:    []string{"*"},
			RequestTimeout: 10 * time.Second,
		},
		Battle: BattleConfig{Timeout: 5 * time.Second},
		Log:    LogConfig{Level: "info", Format: "text"},
		LLM:    llm.DefaultConfig(),
	}
}

// Load reads path (DefaultPath when empty) over the defaults, then applies
// the environment. A missing file is not an error; unknown keys are.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}

	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("decode %s: %w", path, err)
	default:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: llm.EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later in confusing ways.
// LLM keys are not checked here; commands that generate do that.
func (c Config) Validate() error {
	if c.Timer.Study <= 0 || c.Timer.Break <= 0 {
		return fmt.Errorf("timer: study and break durations must be positive")
	}
	if c.Timer.PointsPerMinute <= 0 {
		return fmt.Errorf("timer: points_per_minute must be positive")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log: unknown format %q", c.Log.Format)
	}
	return nil
}

// TimerSettings converts the timer section for the tracker.
func (c Config) TimerSettings() timer.Config {
	return timer.Config{
		StudyDuration:   c.Timer.Study,
		BreakDuration:   c.Timer.Break,
		PointsPerMinute: c.Timer.PointsPerMinute,
	}
}
