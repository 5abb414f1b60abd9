// Package summarize produces article summaries, either with a hosted model
// or with a first-sentences heuristic, and hands the result to the
// translator.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/hoanghai1803/tribalwiki/internal/ai"
)

// DefaultLength is the summary length used when none is requested.
const DefaultLength = "medium"

const (
	heuristicSentences = 3
	heuristicMaxChars  = 600
	fallbackNotePrefix = "Fallback simple summary used due to: "
)

var (
	// ErrEmptySummary is returned by Simple when the text has no sentences.
	ErrEmptySummary = errors.New("no sentences to summarize")
	// ErrSummarizationFailed matches every *FailedError.
	ErrSummarizationFailed = errors.New("summarization failed")
)

// FailedError reports that no summary could be produced. Fallback is set
// when the model failed and the heuristic fallback failed too.
type FailedError struct {
	Cause    error
	Fallback error
}

func (e *FailedError) Error() string {
	if e.Fallback != nil {
		return fmt.Sprintf("Summarization failed: %v; Fallback failed: %v", e.Cause, e.Fallback)
	}
	return fmt.Sprintf("Summarization failed: %v", e.Cause)
}

// Is makes errors.Is(err, ErrSummarizationFailed) true.
func (e *FailedError) Is(target error) bool {
	return target == ErrSummarizationFailed
}

func (e *FailedError) Unwrap() error {
	return e.Cause
}

var budgets = map[string]ai.Budget{
	"short":  {Min: 25, Max: 75},
	"medium": {Min: 50, Max: 150},
	"long":   {Min: 100, Max: 250},
}

// BudgetFor returns the token budget for a length name. Unknown names get
// the medium budget.
func BudgetFor(length string) ai.Budget {
	if b, ok := budgets[length]; ok {
		return b
	}
	return budgets[DefaultLength]
}

// Simple summarizes text without a model: the first three sentences (split
// on '.') joined with ". ", cut to 600 characters with "..." appended when
// longer.
func Simple(text string) (string, error) {
	text = strings.ReplaceAll(strings.TrimSpace(text), "\n", " ")

	var sentences []string
	for _, s := range strings.Split(text, ".") {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
			if len(sentences) == heuristicSentences {
				break
			}
		}
	}
	if len(sentences) == 0 {
		return "", ErrEmptySummary
	}

	summary := strings.Join(sentences, ". ")
	if utf8.RuneCountInString(summary) > heuristicMaxChars {
		summary = string([]rune(summary)[:heuristicMaxChars]) + "..."
	}
	return summary, nil
}

// Translator renders a summary into a target language. It never fails; on
// error it returns its input.
type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) string
}

// Result is a produced summary. Note is set when the heuristic stood in for
// a failed model call.
type Result struct {
	Summary string `json:"summary"`
	Length  string `json:"length"`
	Note    string `json:"note,omitempty"`
}

// Options configures a Service.
type Options struct {
	// Simple skips the model and always uses the heuristic.
	Simple bool
	// Model names the summarizer handle; it is the cache key.
	Model string
	// NewSummarizer creates the model handle on first use.
	NewSummarizer func(ctx context.Context) (ai.Summarizer, error)
	// Translator is applied to every summary. Nil disables translation.
	Translator Translator
}

// Service produces summaries. It is safe for concurrent use.
type Service struct {
	opts    Options
	handles ai.HandleCache[ai.Summarizer]
}

// NewService creates a Service.
func NewService(opts Options) *Service {
	return &Service{opts: opts}
}

// Summarize summarizes content, translates the result into targetLanguage
// when a model exists for it, and echoes length back (DefaultLength when
// empty).
//
// In model mode any model failure falls back to the heuristic and is
// reported in Result.Note. The returned error is a *FailedError only when no
// summary at all could be produced.
func (s *Service) Summarize(ctx context.Context, content, targetLanguage, length string) (*Result, error) {
	if length == "" {
		length = DefaultLength
	}
	res := &Result{Length: length}

	if s.opts.Simple {
		summary, err := Simple(content)
		if err != nil {
			return nil, &FailedError{Cause: err}
		}
		res.Summary = summary
	} else {
		summary, err := s.modelSummary(ctx, content, BudgetFor(length))
		if err != nil {
			slog.Warn("model summarization failed, using heuristic",
				"model", s.opts.Model, "error", err)

			fallback, ferr := Simple(content)
			if ferr != nil {
				return nil, &FailedError{Cause: err, Fallback: ferr}
			}
			summary = fallback
			res.Note = fallbackNotePrefix + err.Error()
		}
		res.Summary = summary
	}

	if s.opts.Translator != nil {
		res.Summary = s.opts.Translator.Translate(ctx, res.Summary, targetLanguage)
	}
	return res, nil
}

func (s *Service) modelSummary(ctx context.Context, content string, budget ai.Budget) (string, error) {
	if s.opts.NewSummarizer == nil {
		return "", errors.New("no summarization model configured")
	}

	summarizer, err := s.handles.Get(ctx, s.opts.Model, s.opts.NewSummarizer)
	if err != nil {
		return "", err
	}
	return summarizer.Summarize(ctx, content, budget)
}
