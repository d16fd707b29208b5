package ai

import (
	"context"
	"fmt"
	"sync"
	"time"

	"google.golang.org/genai"
)

// GeminiModel is the model used for transaction extraction.
const GeminiModel = "gemini-2.5-flash"

// ContentGenerator is the slice of the genai client the provider needs.
// The abstraction enables testing without real API calls.
type ContentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

type modelsAdapter struct {
	models *genai.Models
}

func (m *modelsAdapter) GenerateContent(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	resp, err := m.models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("genai.GenerateContent: %w", err)
	}
	return resp, nil
}

// Gemini calls the Google Gemini API. The underlying client is created on
// first use so that a missing key surfaces as ErrNoCredential at parse time
// instead of failing startup.
type Gemini struct {
	apiKey string

	mu        sync.Mutex
	generator ContentGenerator
}

// NewGemini creates a Gemini provider.
func NewGemini(apiKey string) *Gemini {
	return &Gemini{apiKey: apiKey}
}

// NewGeminiWithGenerator creates a provider backed by a custom generator,
// primarily for tests.
func NewGeminiWithGenerator(generator ContentGenerator) *Gemini {
	return &Gemini{apiKey: "test", generator: generator}
}

// Name implements Provider.
func (g *Gemini) Name() string { return "gemini" }

// Complete implements Provider.
func (g *Gemini) Complete(ctx context.Context, system, user string) (string, error) {
	if g.apiKey == "" {
		return "", ErrNoCredential
	}

	generator, err := g.ensureGenerator(ctx)
	if err != nil {
		return "", err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: user},
			},
		},
	}

	temp := float32(0)
	config := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: int32(300),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: system},
			},
		},
	}

	resp, err := generator.GenerateContent(timeoutCtx, GeminiModel, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini completion failed: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("no response from gemini")
	}

	return resp.Text(), nil
}

func (g *Gemini) ensureGenerator(ctx context.Context) (ContentGenerator, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.generator != nil {
		return g.generator, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	g.generator = &modelsAdapter{models: client.Models}
	return g.generator, nil
}
