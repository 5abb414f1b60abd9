package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Pipeline tags reported by the Hugging Face Hub.
const (
	TaskSummarization = "summarization"
	TaskTranslation   = "translation"
)

const (
	defaultInferenceURL = "https://api-inference.huggingface.co"
	defaultHubURL       = "https://huggingface.co"

	// translationMaxLength is the generation limit passed to translation
	// models.
	translationMaxLength = 512
)

// HuggingFaceClient calls hosted models through the Hugging Face Inference
// API and looks models up on the Hub.
type HuggingFaceClient struct {
	token        string
	inferenceURL string
	hubURL       string
	client       *http.Client
}

// NewHuggingFaceClient creates a client. Empty URLs select the public
// endpoints; a zero timeout selects 120 seconds.
func NewHuggingFaceClient(opts HuggingFaceOptions) *HuggingFaceClient {
	c := &HuggingFaceClient{
		token:        opts.APIToken,
		inferenceURL: strings.TrimRight(opts.InferenceURL, "/"),
		hubURL:       strings.TrimRight(opts.HubURL, "/"),
		client:       &http.Client{Timeout: opts.Timeout},
	}
	if c.inferenceURL == "" {
		c.inferenceURL = defaultInferenceURL
	}
	if c.hubURL == "" {
		c.hubURL = defaultHubURL
	}
	if c.client.Timeout <= 0 {
		c.client.Timeout = 120 * time.Second
	}
	return c
}

// hubModel is the subset of the Hub model info response we read.
type hubModel struct {
	ID          string `json:"id"`
	PipelineTag string `json:"pipeline_tag"`
}

// ResolveModel checks that modelID exists on the Hub and serves task.
func (c *HuggingFaceClient) ResolveModel(ctx context.Context, modelID, task string) error {
	if modelID == "" {
		return errors.New("model id is empty")
	}

	url := fmt.Sprintf("%s/api/models/%s", c.hubURL, modelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("looking up model %s: %w", modelID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("model %s not found on the hub", modelID)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("looking up model %s: unexpected status code: %d", modelID, resp.StatusCode)
	}

	var info hubModel
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return fmt.Errorf("parsing model info for %s: %w", modelID, err)
	}

	// Translation models are tagged "translation" or "translation_xx_to_yy".
	if info.PipelineTag != task && !strings.HasPrefix(info.PipelineTag, task+"_") {
		return fmt.Errorf("model %s serves %q, not %q", modelID, info.PipelineTag, task)
	}

	slog.Info("resolved hugging face model", "model", modelID, "task", info.PipelineTag)
	return nil
}

// inferenceRequest is the request body for text-to-text pipelines.
type inferenceRequest struct {
	Inputs     string         `json:"inputs"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Options    map[string]any `json:"options,omitempty"`
}

// inferenceError is the body the Inference API sends on failure.
type inferenceError struct {
	Error string `json:"error"`
}

// infer posts inputs to model and decodes the JSON response into out.
func (c *HuggingFaceClient) infer(ctx context.Context, model string, reqBody inferenceRequest, out any) error {
	slog.Debug("calling Hugging Face inference", "model", model)

	header := http.Header{}
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}

	status, body, err := postJSON(ctx, c.client, fmt.Sprintf("%s/models/%s", c.inferenceURL, model), header, reqBody)
	if err != nil {
		return err
	}

	if status != http.StatusOK {
		var apiErr inferenceError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("API error (status %d): %s", status, apiErr.Error)
		}
		return fmt.Errorf("unexpected status code: %d", status)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

func (c *HuggingFaceClient) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// Compile-time interface checks.
var (
	_ Summarizer = (*HuggingFaceSummarizer)(nil)
	_ Translator = (*HuggingFaceTranslator)(nil)
)

// HuggingFaceSummarizer runs a summarization model on the Inference API.
type HuggingFaceSummarizer struct {
	client *HuggingFaceClient
	model  string
}

// NewHuggingFaceSummarizer resolves model on the Hub and returns a
// summarizer bound to it.
func NewHuggingFaceSummarizer(ctx context.Context, client *HuggingFaceClient, model string) (*HuggingFaceSummarizer, error) {
	if err := client.ResolveModel(ctx, model, TaskSummarization); err != nil {
		return nil, fmt.Errorf("huggingface: %w", err)
	}
	return &HuggingFaceSummarizer{client: client, model: model}, nil
}

// Summarize condenses text to between budget.Min and budget.Max tokens.
func (s *HuggingFaceSummarizer) Summarize(ctx context.Context, text string, budget Budget) (string, error) {
	var out []struct {
		SummaryText string `json:"summary_text"`
	}
	err := s.client.infer(ctx, s.model, inferenceRequest{
		Inputs: text,
		Parameters: map[string]any{
			"min_length": budget.Min,
			"max_length": budget.Max,
			"do_sample":  false,
		},
		Options: map[string]any{"wait_for_model": true},
	}, &out)
	if err != nil {
		return "", fmt.Errorf("huggingface summarize: %w", err)
	}

	if len(out) == 0 || strings.TrimSpace(out[0].SummaryText) == "" {
		return "", fmt.Errorf("huggingface summarize: %w", ErrEmptyOutput)
	}
	return strings.TrimSpace(out[0].SummaryText), nil
}

// HuggingFaceTranslator runs a translation model on the Inference API.
type HuggingFaceTranslator struct {
	client *HuggingFaceClient
	model  string
}

// NewHuggingFaceTranslator resolves model on the Hub and returns a
// translator bound to it.
func NewHuggingFaceTranslator(ctx context.Context, client *HuggingFaceClient, model string) (*HuggingFaceTranslator, error) {
	if err := client.ResolveModel(ctx, model, TaskTranslation); err != nil {
		return nil, fmt.Errorf("huggingface: %w", err)
	}
	return &HuggingFaceTranslator{client: client, model: model}, nil
}

// Translate returns the model's translation of text.
func (t *HuggingFaceTranslator) Translate(ctx context.Context, text string) (string, error) {
	var out []struct {
		TranslationText string `json:"translation_text"`
	}
	err := t.client.infer(ctx, t.model, inferenceRequest{
		Inputs:     text,
		Parameters: map[string]any{"max_length": translationMaxLength},
		Options:    map[string]any{"wait_for_model": true},
	}, &out)
	if err != nil {
		return "", fmt.Errorf("huggingface translate: %w", err)
	}

	if len(out) == 0 || strings.TrimSpace(out[0].TranslationText) == "" {
		return "", fmt.Errorf("huggingface translate: %w", ErrEmptyOutput)
	}
	return strings.TrimSpace(out[0].TranslationText), nil
}
