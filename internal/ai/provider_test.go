package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewSummarizer(t *testing.T) {
	tests := []struct {
		name     string
		cfg      ProviderConfig
		wantErr  bool
		wantType string
	}{
		{
			name: "anthropic provider",
			cfg: ProviderConfig{
				Provider: "anthropic",
				APIKey:   "test-key",
				Model:    "claude-haiku-4-5",
			},
			wantType: "*ai.AnthropicProvider",
		},
		{
			name: "openai provider",
			cfg: ProviderConfig{
				Provider: "openai",
				APIKey:   "test-key",
				Model:    "gpt-4o-mini",
			},
			wantType: "*ai.OpenAIProvider",
		},
		{
			name:    "anthropic without key",
			cfg:     ProviderConfig{Provider: "anthropic", Model: "claude-haiku-4-5"},
			wantErr: true,
		},
		{
			name:    "gemini without key",
			cfg:     ProviderConfig{Provider: "gemini", Model: "gemini-2.5-flash"},
			wantErr: true,
		},
		{
			name:    "unsupported provider",
			cfg:     ProviderConfig{Provider: "invalid", APIKey: "test-key"},
			wantErr: true,
		},
		{
			name:    "empty provider",
			cfg:     ProviderConfig{APIKey: "test-key"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSummarizer(context.Background(), tt.cfg)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if s != nil {
					t.Fatal("expected nil summarizer when error occurs")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			switch tt.wantType {
			case "*ai.AnthropicProvider":
				if _, ok := s.(*AnthropicProvider); !ok {
					t.Errorf("expected *AnthropicProvider, got %T", s)
				}
			case "*ai.OpenAIProvider":
				if _, ok := s.(*OpenAIProvider); !ok {
					t.Errorf("expected *OpenAIProvider, got %T", s)
				}
			}
		})
	}
}

func TestNewSummarizerHuggingFace(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(hubModel{ID: "org/sum", PipelineTag: TaskSummarization})
	}))
	defer srv.Close()

	s, err := NewSummarizer(context.Background(), ProviderConfig{
		Provider:    "huggingface",
		Model:       "org/sum",
		HuggingFace: HuggingFaceOptions{HubURL: srv.URL, InferenceURL: srv.URL},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.(*HuggingFaceSummarizer); !ok {
		t.Errorf("expected *HuggingFaceSummarizer, got %T", s)
	}
}

func TestAnthropicSummarize(t *testing.T) {
	var got anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("x-api-key = %q, want test-key", r.Header.Get("x-api-key"))
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"content":[{"text":"Summary: Kathmandu is the capital of Nepal."}]}`))
	}))
	defer srv.Close()

	p := NewAnthropicProvider("test-key", "claude-haiku-4-5")
	p.endpoint = srv.URL

	summary, err := p.Summarize(context.Background(), "Kathmandu is the capital...", Budget{Min: 50, Max: 150})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != "Kathmandu is the capital of Nepal." {
		t.Errorf("summary = %q", summary)
	}
	if got.MaxTokens != 300 {
		t.Errorf("max_tokens = %d, want 300", got.MaxTokens)
	}
	if !strings.Contains(got.System, "50 to 150 words") {
		t.Errorf("system prompt missing budget: %q", got.System)
	}
}

func TestAnthropicSummarizeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid x-api-key"}}`))
	}))
	defer srv.Close()

	p := NewAnthropicProvider("bad", "claude-haiku-4-5")
	p.endpoint = srv.URL

	_, err := p.Summarize(context.Background(), "text", Budget{Min: 25, Max: 75})
	if err == nil || !strings.Contains(err.Error(), "invalid x-api-key") {
		t.Fatalf("expected API error, got %v", err)
	}
}

func TestOpenAISummarize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"  Short summary.  "}}]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("test-key", "gpt-4o-mini")
	p.endpoint = srv.URL

	summary, err := p.Summarize(context.Background(), "text", Budget{Min: 25, Max: 75})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != "Short summary." {
		t.Errorf("summary = %q", summary)
	}
}

func TestOpenAISummarizeEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"   "}}]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("test-key", "gpt-4o-mini")
	p.endpoint = srv.URL

	if _, err := p.Summarize(context.Background(), "text", Budget{Min: 25, Max: 75}); err == nil {
		t.Fatal("expected error for empty output")
	}
}
