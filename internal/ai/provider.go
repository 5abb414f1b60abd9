// Package ai adapts hosted language models to the two operations the
// service needs: summarizing article text and translating a summary.
package ai

import (
	"context"
	"errors"
	"fmt"
)

// Summarizer condenses text to a length within budget.
type Summarizer interface {
	Summarize(ctx context.Context, text string, budget Budget) (string, error)
}

// Translator translates English text into one fixed target language.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// ErrEmptyOutput is returned when a model responds successfully but with no
// text.
var ErrEmptyOutput = errors.New("model returned no text")

// NewSummarizer creates the summarizer selected by cfg.Provider. Creating a
// Hugging Face or Gemini summarizer performs network calls, so callers should
// create it once and reuse it (see HandleCache).
func NewSummarizer(ctx context.Context, cfg ProviderConfig) (Summarizer, error) {
	switch cfg.Provider {
	case "huggingface":
		client := NewHuggingFaceClient(cfg.HuggingFace)
		return NewHuggingFaceSummarizer(ctx, client, cfg.Model)
	case "anthropic":
		if cfg.APIKey == "" {
			return nil, errors.New("anthropic: api key is not configured")
		}
		return NewAnthropicProvider(cfg.APIKey, cfg.Model), nil
	case "openai":
		if cfg.APIKey == "" {
			return nil, errors.New("openai: api key is not configured")
		}
		return NewOpenAIProvider(cfg.APIKey, cfg.Model), nil
	case "gemini":
		if cfg.APIKey == "" {
			return nil, errors.New("gemini: api key is not configured")
		}
		return NewGeminiProvider(ctx, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.Provider)
	}
}
