package ai

import "time"

// ProviderConfig holds the configuration needed to create a summarizer.
type ProviderConfig struct {
	Provider    string // "huggingface" | "anthropic" | "openai" | "gemini"
	APIKey      string
	Model       string
	HuggingFace HuggingFaceOptions
}

// HuggingFaceOptions configures the Inference API client shared by the
// summarizer and the translators.
type HuggingFaceOptions struct {
	APIToken     string
	InferenceURL string
	HubURL       string
	Timeout      time.Duration
}

// Budget bounds the length of a generated summary, in model tokens.
type Budget struct {
	Min int
	Max int
}
