package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"
)

// Compile-time interface check.
var _ Summarizer = (*GeminiProvider)(nil)

// GeminiProvider summarizes with the Gemini API through the genai SDK.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a Gemini API client for model.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: creating client: %w", err)
	}
	return &GeminiProvider{client: client, model: model}, nil
}

// Summarize condenses article text within budget.
func (p *GeminiProvider) Summarize(ctx context.Context, text string, budget Budget) (string, error) {
	return chatSummary(ctx, "gemini", text, budget, p.complete)
}

// complete runs one generation with system as the system instruction and
// returns the text of the first candidate.
func (p *GeminiProvider) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	slog.Debug("calling Gemini API", "model", p.model, "max_tokens", maxTokens)

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		MaxOutputTokens:   int32(maxTokens),
	}
	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(user), config)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", nil
	}

	var b strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String(), nil
}
