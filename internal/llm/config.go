package llm

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every environment variable read by this package.
const EnvPrefix = "STUDYBUDDY_"

// Config holds all LLM provider configuration. Fields carry both toml tags
// for the config file and env tags, read with EnvPrefix, that override it.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter", "mock".
	Provider string `toml:"provider" env:"LLM_PROVIDER"`

	Anthropic  AnthropicConfig  `toml:"anthropic" envPrefix:"ANTHROPIC_"`
	OpenAI     OpenAIConfig     `toml:"openai" envPrefix:"OPENAI_"`
	Gemini     GeminiConfig     `toml:"gemini" envPrefix:"GEMINI_"`
	OpenRouter OpenRouterConfig `toml:"openrouter" envPrefix:"OPENROUTER_"`
	Retry      RetryConfig      `toml:"retry" envPrefix:"LLM_RETRY_"`

	// Timeout bounds one generation including retries.
	Timeout time.Duration `toml:"timeout" env:"LLM_TIMEOUT"`
}

type AnthropicConfig struct {
	APIKey string `toml:"api_key" env:"API_KEY"`
	Model  string `toml:"model" env:"MODEL"`
}

type OpenAIConfig struct {
	APIKey  string `toml:"api_key" env:"API_KEY"`
	Model   string `toml:"model" env:"MODEL"`
	BaseURL string `toml:"base_url" env:"BASE_URL"`
}

type GeminiConfig struct {
	APIKey  string `toml:"api_key" env:"API_KEY"`
	Model   string `toml:"model" env:"MODEL"`
	BaseURL string `toml:"base_url" env:"BASE_URL"`
}

type OpenRouterConfig struct {
	APIKey  string `toml:"api_key" env:"API_KEY"`
	Model   string `toml:"model" env:"MODEL"`
	BaseURL string `toml:"base_url" env:"BASE_URL"`
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `toml:"max_attempts" env:"MAX_ATTEMPTS"`
	InitialWait time.Duration `toml:"initial_wait" env:"INITIAL_WAIT"`
	MaxWait     time.Duration `toml:"max_wait" env:"MAX_WAIT"`
	Multiplier  float64       `toml:"multiplier" env:"MULTIPLIER"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// ApplyEnv overrides cfg with any STUDYBUDDY_* variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("llm env: %w", err)
	}
	return nil
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	err := ApplyEnv(&cfg)
	return cfg, err
}

// DiscoverConfig fills in an API key from the vendors' standard variables
// (GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY, in
// that order) when cfg has none for its provider. The provider is switched
// to the first vendor found. It reports whether cfg is usable afterwards.
func DiscoverConfig(cfg *Config) bool {
	if cfg.Validate() == nil {
		return true
	}

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return true
	}
	return false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case "anthropic":
		key = c.Anthropic.APIKey
	case "openai":
		key = c.OpenAI.APIKey
	case "gemini":
		key = c.Gemini.APIKey
	case "openrouter":
		key = c.OpenRouter.APIKey
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s%s_API_KEY is required for the %s provider", EnvPrefix, envName(c.Provider), c.Provider)
	}
	return nil
}

func envName(provider string) string {
	switch provider {
	case "openai":
		return "OPENAI"
	case "openrouter":
		return "OPENROUTER"
	case "gemini":
		return "GEMINI"
	}
	return "ANTHROPIC"
}
