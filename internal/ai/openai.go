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
var _ Summarizer = (*OpenAIProvider)(nil)

const openaiAPIURL = "https://api.openai.com/v1/chat/completions"

// OpenAIProvider summarizes with the OpenAI Chat Completions API.
type OpenAIProvider struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewOpenAIProvider creates an OpenAIProvider with a 60-second timeout
// HTTP client.
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	return &OpenAIProvider{
		apiKey:   apiKey,
		model:    model,
		endpoint: openaiAPIURL,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

type openaiRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type openaiResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error"`
}

// Summarize condenses article text within budget.
func (p *OpenAIProvider) Summarize(ctx context.Context, text string, budget Budget) (string, error) {
	return chatSummary(ctx, "openai", text, budget, p.complete)
}

// complete sends one system+user exchange and returns the first choice.
func (p *OpenAIProvider) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	slog.Debug("calling OpenAI API", "model", p.model, "max_tokens", maxTokens)

	header := http.Header{}
	header.Set("Authorization", "Bearer "+p.apiKey)

	status, body, err := postJSON(ctx, p.client, p.endpoint, header, openaiRequest{
		Model:     p.model,
		MaxTokens: maxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", err
	}

	var resp openaiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parsing response (status %d): %w", status, err)
	}
	if resp.Error != nil {
		return "", fmt.Errorf("API error (status %d): %s", status, resp.Error.Message)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", status)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty response: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
