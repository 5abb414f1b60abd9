package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// chatMessage is one turn of a chat-style model request.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// apiError is the {"error": {"message": ...}} shape the hosted chat APIs use.
type apiError struct {
	Message string `json:"message"`
}

// postJSON sends payload as a JSON POST to url and returns the response
// status and body. Non-2xx statuses are not errors here; callers decode the
// provider's error shape themselves.
func postJSON(ctx context.Context, client *http.Client, url string, header http.Header, payload any) (int, []byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	for k, vs := range header {
		req.Header[k] = vs
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading response body: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

// chatSummary runs the summarize prompt through call and cleans the answer.
// name prefixes every error.
func chatSummary(ctx context.Context, name, text string, budget Budget,
	call func(ctx context.Context, system, user string, maxTokens int) (string, error),
) (string, error) {
	system, user := SummarizePrompt(text, budget)

	out, err := call(ctx, system, user, maxOutputTokens(budget))
	if err != nil {
		return "", fmt.Errorf("%s summarize: %w", name, err)
	}

	summary := cleanSummary(out)
	if summary == "" {
		return "", fmt.Errorf("%s summarize: %w", name, ErrEmptyOutput)
	}
	return summary, nil
}
