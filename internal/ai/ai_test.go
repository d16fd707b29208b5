package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bexly/bexly-bot/internal/config"
)

func TestNewSelectsProvider(t *testing.T) {
	tests := []struct {
		provider string
		wantName string
	}{
		{config.ProviderGemini, "gemini"},
		{config.ProviderOpenAI, "openai"},
		{config.ProviderClaude, "claude"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			cfg := &config.Config{AIProvider: tt.provider}
			p, err := New(cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
		})
	}
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	_, err := New(&config.Config{AIProvider: "mistral"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown AI provider")
}

func TestMissingCredentialIsNotFatal(t *testing.T) {
	ctx := context.Background()

	for _, p := range []Provider{NewGemini(""), NewOpenAI("", "", 0), NewClaude("")} {
		t.Run(p.Name(), func(t *testing.T) {
			_, err := p.Complete(ctx, "system", "user")
			assert.ErrorIs(t, err, ErrNoCredential)
		})
	}
}
