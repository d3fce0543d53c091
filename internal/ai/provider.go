package ai

import (
	"context"
	"fmt"

	"skyguide/internal/config"
)

// NewProvider selects the Completer implementation named by cfg.Provider.
// The returned close func releases client resources and is never nil.
func NewProvider(ctx context.Context, cfg config.LLMConfig) (Completer, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Provider {
	case config.ProviderGemini:
		p, err := NewGeminiProvider(ctx, cfg.APIKey, cfg.Model, cfg.Timeout)
		if err != nil {
			return nil, noop, err
		}
		return p, p.Close, nil
	case config.ProviderOpenAI:
		p, err := NewOpenAIProvider(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.Timeout)
		if err != nil {
			return nil, noop, err
		}
		return p, noop, nil
	case config.ProviderOllama:
		p, err := NewOllamaProvider(cfg.Model, cfg.BaseURL, cfg.Timeout)
		if err != nil {
			return nil, noop, err
		}
		return p, noop, nil
	default:
		return nil, noop, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}
