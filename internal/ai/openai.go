package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// OpenAIModel is the chat model used for transaction extraction.
const OpenAIModel = "gpt-4o-mini"

// OpenAI calls the OpenAI chat completions REST API directly. There is no
// SDK dependency; the surface we need is one endpoint.
type OpenAI struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewOpenAI creates an OpenAI provider. baseURL and timeout fall back to
// sensible defaults when zero.
func NewOpenAI(apiKey, baseURL string, timeout time.Duration) *OpenAI {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		trimmed = "https://api.openai.com"
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &OpenAI{
		apiKey:  apiKey,
		baseURL: trimmed,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Name implements Provider.
func (o *OpenAI) Name() string { return "openai" }

// Complete implements Provider.
func (o *OpenAI) Complete(ctx context.Context, system, user string) (string, error) {
	if o.apiKey == "" {
		return "", ErrNoCredential
	}

	payload := openAIRequest{
		Model: OpenAIModel,
		Messages: []openAIMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0,
		MaxTokens:   300,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode openai request: %w", err)
	}

	endpoint := o.baseURL + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create openai request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai API returned status %d", resp.StatusCode)
	}

	var decoded openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode openai response: %w", err)
	}

	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	return strings.TrimSpace(decoded.Choices[0].Message.Content), nil
}
