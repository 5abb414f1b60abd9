// Package translate renders English summaries into the few regional
// languages that have a usable machine translation model. Languages without
// a direct model use the closest one available: Sanskrit goes through Hindi
// and Sindhi through Urdu.
package translate

import (
	"context"
	"log/slog"

	"github.com/hoanghai1803/tribalwiki/internal/ai"
	"github.com/hoanghai1803/tribalwiki/internal/locale"
)

// models maps a target language name to the translation model used for it.
var models = map[string]string{
	"nepali":   "Helsinki-NLP/opus-mt-en-ne",
	"sanskrit": "Helsinki-NLP/opus-mt-en-hi",
	"sindhi":   "Helsinki-NLP/opus-mt-en-ur",
}

// ModelFor returns the translation model for language, if there is one.
func ModelFor(language string) (string, bool) {
	m, ok := models[locale.Normalize(language)]
	return m, ok
}

// Factory creates a translator bound to one model.
type Factory func(ctx context.Context, model string) (ai.Translator, error)

// Service translates text, creating one translator per model on first use.
type Service struct {
	newTranslator Factory
	handles       ai.HandleCache[ai.Translator]
}

// NewService creates a Service that builds translators with newTranslator.
func NewService(newTranslator Factory) *Service {
	return &Service{newTranslator: newTranslator}
}

// Translate returns text translated into targetLanguage. Languages without a
// model get text back unchanged. Translation is best effort: any failure is
// logged and the original text is returned.
func (s *Service) Translate(ctx context.Context, text, targetLanguage string) string {
	model, ok := ModelFor(targetLanguage)
	if !ok || text == "" {
		return text
	}

	tr, err := s.handles.Get(ctx, model, func(ctx context.Context) (ai.Translator, error) {
		return s.newTranslator(ctx, model)
	})
	if err != nil {
		slog.Warn("translator unavailable, returning untranslated text",
			"language", targetLanguage, "model", model, "error", err)
		return text
	}

	out, err := tr.Translate(ctx, text)
	if err != nil || out == "" {
		slog.Warn("translation failed, returning untranslated text",
			"language", targetLanguage, "model", model, "error", err)
		return text
	}
	return out
}
