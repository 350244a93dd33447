package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini calls the Google Generative AI API. One client is shared across
// calls; per-model handles are cached because the pipeline may use different
// models for generation and evaluation.
type Gemini struct {
	client *genai.Client

	mu     sync.Mutex
	models map[string]*genai.GenerativeModel
}

// NewGemini creates a Gemini generator authenticated with apiKey.
func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &Gemini{
		client: client,
		models: make(map[string]*genai.GenerativeModel),
	}, nil
}

func (g *Gemini) model(name string) *genai.GenerativeModel {
	g.mu.Lock()
	defer g.mu.Unlock()

	if m, ok := g.models[name]; ok {
		return m
	}
	m := g.client.GenerativeModel(name)
	g.models[name] = m
	return m
}

// Generate implements [Generator] with a single blocking API call.
func (g *Gemini) Generate(ctx context.Context, model, prompt string) (string, error) {
	resp, err := g.model(model).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		slog.Debug("gemini returned no candidates", "model", model)
		return "", ErrEmptyResponse
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("%w: non-text part in response", ErrGeneration)
	}

	out := strings.TrimSpace(string(text))
	if out == "" {
		return "", ErrEmptyResponse
	}
	return out, nil
}

// Close releases the API client.
func (g *Gemini) Close() error {
	return g.client.Close()
}
