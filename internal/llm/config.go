package llm

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every variable read by ConfigFromEnv.
const EnvPrefix = "IQ360_"

// Config selects and configures the LLM provider. Defaults live in the
// envDefault tags.
type Config struct {
	// Provider is one of gemini, anthropic, openai, openrouter or mock.
	Provider string `env:"LLM_PROVIDER" envDefault:"gemini"`

	Gemini     GeminiConfig
	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one logical request, retries included.
	Timeout time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`
}

type GeminiConfig struct {
	APIKey string `env:"GEMINI_API_KEY"`
	Model  string `env:"GEMINI_MODEL" envDefault:"gemini-3-flash"`

	// ThinkingBudget caps reasoning tokens. 0 disables thinking and a
	// negative value keeps the model default.
	ThinkingBudget int `env:"GEMINI_THINKING_BUDGET" envDefault:"0"`
}

type AnthropicConfig struct {
	APIKey string `env:"ANTHROPIC_API_KEY"`
	Model  string `env:"ANTHROPIC_MODEL" envDefault:"claude-haiku"`
}

type OpenAIConfig struct {
	APIKey  string `env:"OPENAI_API_KEY"`
	Model   string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	BaseURL string `env:"OPENAI_BASE_URL"`
}

type OpenRouterConfig struct {
	APIKey  string `env:"OPENROUTER_API_KEY"`
	Model   string `env:"OPENROUTER_MODEL" envDefault:"google/gemini-3-flash-preview"`
	BaseURL string `env:"OPENROUTER_BASE_URL"`
}

// RetryConfig shapes the backoff of WithRetry. One attempt is the
// default: a failed generation or evaluation goes back to the player,
// who retries from the menu.
type RetryConfig struct {
	MaxAttempts int           `env:"LLM_MAX_ATTEMPTS" envDefault:"1"`
	InitialWait time.Duration `env:"LLM_RETRY_INITIAL_WAIT" envDefault:"1s"`
	MaxWait     time.Duration `env:"LLM_RETRY_MAX_WAIT" envDefault:"10s"`
	Multiplier  float64       `env:"LLM_RETRY_MULTIPLIER" envDefault:"2"`
}

// DefaultConfig returns the tag defaults without consulting the process
// environment.
func DefaultConfig() Config {
	cfg, err := parseConfig(map[string]string{})
	if err != nil {
		panic(err)
	}
	return cfg
}

// ConfigFromEnv reads IQ360_-prefixed variables over the defaults.
func ConfigFromEnv() (Config, error) {
	return parseConfig(nil)
}

func parseConfig(environ map[string]string) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Prefix: EnvPrefix, Environment: environ})
	if err != nil {
		return Config{}, fmt.Errorf("parse llm env: %w", err)
	}
	return cfg, nil
}

// discovery lists the bare vendor variables DiscoverConfig probes, in
// priority order. API_KEY is the name AI Studio exports.
var discovery = []struct {
	provider string
	vars     []string
}{
	{"gemini", []string{"GEMINI_API_KEY", "API_KEY"}},
	{"openai", []string{"OPENAI_API_KEY"}},
	{"anthropic", []string{"ANTHROPIC_API_KEY"}},
	{"openrouter", []string{"OPENROUTER_API_KEY"}},
}

// DiscoverConfig returns a default Config for the first provider whose
// bare vendor key is set, or false when there is none.
func DiscoverConfig() (Config, bool) {
	for _, d := range discovery {
		for _, name := range d.vars {
			v := os.Getenv(name)
			if v == "" {
				continue
			}
			cfg := DefaultConfig()
			cfg.UseKey(d.provider, v)
			return cfg, true
		}
	}
	return Config{}, false
}

// keyFor returns the API key field of provider. It is nil for mock and
// for unknown providers.
func (c *Config) keyFor(provider string) *string {
	switch provider {
	case "gemini":
		return &c.Gemini.APIKey
	case "anthropic":
		return &c.Anthropic.APIKey
	case "openai":
		return &c.OpenAI.APIKey
	case "openrouter":
		return &c.OpenRouter.APIKey
	}
	return nil
}

// APIKey returns the selected provider's key.
func (c Config) APIKey() string {
	if k := c.keyFor(c.Provider); k != nil {
		return *k
	}
	return ""
}

// UseKey selects provider and sets its key.
func (c *Config) UseKey(provider, key string) {
	c.Provider = provider
	if k := c.keyFor(provider); k != nil {
		*k = key
	}
}

func knownProvider(name string) bool {
	return name == "mock" || (&Config{}).keyFor(name) != nil
}

// HasKey reports whether the selected provider can be constructed.
func (c Config) HasKey() bool {
	if c.Provider == "mock" {
		return true
	}
	return c.APIKey() != ""
}

func (c Config) Validate() error {
	if !knownProvider(c.Provider) {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if !c.HasKey() {
		return fmt.Errorf("%s%s_API_KEY is required for the %s provider",
			EnvPrefix, strings.ToUpper(c.Provider), c.Provider)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("%sLLM_MAX_ATTEMPTS must be at least 1, got %d", EnvPrefix, c.Retry.MaxAttempts)
	}
	return nil
}
