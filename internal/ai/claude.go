package ai

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// ClaudeModel is the model used for transaction extraction.
const ClaudeModel = "claude-sonnet-4-5-20250929"

// Claude calls the Anthropic Messages API.
type Claude struct {
	apiKey string
	client anthropic.Client
}

// NewClaude creates a Claude provider.
func NewClaude(apiKey string) *Claude {
	return &Claude{
		apiKey: apiKey,
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
	}
}

// Name implements Provider.
func (c *Claude) Name() string { return "claude" }

// Complete implements Provider.
func (c *Claude) Complete(ctx context.Context, system, user string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoCredential
	}

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(ClaudeModel),
		MaxTokens: 300,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("claude API call failed: %w", err)
	}

	if len(message.Content) == 0 {
		return "", fmt.Errorf("empty response from claude")
	}

	var text string
	for _, block := range message.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	return text, nil
}
