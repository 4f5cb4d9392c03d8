package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/iq360/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return Wrap(base, cfg, eventRepo, logger), nil
}

// Wrap applies the middleware stack to base. Calls flow
// timeout, then retry, then logging, then base.
func Wrap(base Provider, cfg Config, eventRepo store.EventRepo, logger *zap.Logger) Provider {
	logged := WithLogging(base, cfg.Provider, eventRepo, logger)
	retried := WithRetry(logged, cfg.Retry, logger)
	return WithTimeout(retried, cfg.Timeout)
}

// NewProviderFromEnv reads IQ360_ configuration and builds a provider.
// When the selected provider has no key, the standard vendor key
// variables are probed instead.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo, logger *zap.Logger) (Provider, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	if !cfg.HasKey() {
		if found, ok := DiscoverConfig(); ok {
			cfg.Provider = found.Provider
			cfg.Gemini.APIKey = firstNonEmpty(cfg.Gemini.APIKey, found.Gemini.APIKey)
			cfg.OpenAI.APIKey = firstNonEmpty(cfg.OpenAI.APIKey, found.OpenAI.APIKey)
			cfg.Anthropic.APIKey = firstNonEmpty(cfg.Anthropic.APIKey, found.Anthropic.APIKey)
			cfg.OpenRouter.APIKey = firstNonEmpty(cfg.OpenRouter.APIKey, found.OpenRouter.APIKey)
		}
	}
	return NewProvider(ctx, cfg, eventRepo, logger)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
