package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Compile-time interface check.
var _ Summarizer = (*AnthropicProvider)(nil)

const (
	anthropicAPIURL  = "https://api.anthropic.com/v1/messages"
	anthropicVersion = "2023-06-01"
)

// AnthropicProvider summarizes with the Anthropic Messages API.
type AnthropicProvider struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewAnthropicProvider creates an AnthropicProvider with a 60-second timeout
// HTTP client.
func NewAnthropicProvider(apiKey, model string) *AnthropicProvider {
	return &AnthropicProvider{
		apiKey:   apiKey,
		model:    model,
		endpoint: anthropicAPIURL,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

type anthropicRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	System    string        `json:"system"`
	Messages  []chatMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
	Error *apiError `json:"error"`
}

// Summarize condenses article text within budget.
func (p *AnthropicProvider) Summarize(ctx context.Context, text string, budget Budget) (string, error) {
	return chatSummary(ctx, "anthropic", text, budget, p.complete)
}

// complete sends one system+user exchange and returns the first text block.
func (p *AnthropicProvider) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	slog.Debug("calling Anthropic API", "model", p.model, "max_tokens", maxTokens)

	header := http.Header{}
	header.Set("x-api-key", p.apiKey)
	header.Set("anthropic-version", anthropicVersion)

	status, body, err := postJSON(ctx, p.client, p.endpoint, header, anthropicRequest{
		Model:     p.model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  []chatMessage{{Role: "user", Content: user}},
	})
	if err != nil {
		return "", err
	}

	var resp anthropicResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parsing response (status %d): %w", status, err)
	}
	if resp.Error != nil {
		return "", fmt.Errorf("API error (status %d): %s", status, resp.Error.Message)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", status)
	}
	if len(resp.Content) == 0 {
		return "", errors.New("empty response: no content blocks returned")
	}
	return resp.Content[0].Text, nil
}
