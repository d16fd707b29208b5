// Package ai contains the text-generation backends behind the parsing
// pipeline. Exactly one provider is active per process, selected by
// configuration.
package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/bexly/bexly-bot/internal/config"
)

// ErrNoCredential is returned by Complete when the provider has no API key.
// Callers treat it like any other provider failure and fall back to the
// regex parser.
var ErrNoCredential = errors.New("api key not configured")

// Provider generates a completion for a system instruction and one user
// message. Implementations return the raw model text without any cleanup.
type Provider interface {
	Name() string
	Complete(ctx context.Context, system, user string) (string, error)
}

// New returns the provider selected by cfg.AIProvider. An unknown provider
// name is a startup error, not a runtime fallback.
func New(cfg *config.Config) (Provider, error) {
	switch cfg.AIProvider {
	case config.ProviderGemini:
		return NewGemini(cfg.GeminiAPIKey), nil
	case config.ProviderOpenAI:
		return NewOpenAI(cfg.OpenAIAPIKey, "", 0), nil
	case config.ProviderClaude:
		return NewClaude(cfg.ClaudeAPIKey), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.AIProvider)
	}
}
