// Package llm is the boundary to the hosted text-generation service.
// Callers see a single blocking Complete call; there are no retries.
package llm

import (
	"context"
	"errors"
	"fmt"

	"vibelist/config"
)

var ErrMissingAPIKey = errors.New("missing API key for completion provider")

type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// New builds the completer selected by cfg.LLM.Provider.
func New(ctx context.Context, cfg *config.ConfigStruct) (Completer, error) {
	switch cfg.LLM.Provider {
	case config.ProviderOpenAI:
		if cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("%w: set OPENAI_API_KEY", ErrMissingAPIKey)
		}
		return NewOpenAICompleter(cfg.OpenAI, cfg.LLM.Temperature), nil
	case config.ProviderGemini, "":
		if cfg.Gemini.APIKey == "" {
			return nil, fmt.Errorf("%w: set GEMINI_API_KEY", ErrMissingAPIKey)
		}
		return NewGeminiCompleter(ctx, cfg.Gemini, cfg.LLM.Temperature)
	default:
		return nil, fmt.Errorf("unknown completion provider %q", cfg.LLM.Provider)
	}
}
