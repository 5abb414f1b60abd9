// Package speech turns summaries into MP3 audio. A request names a language
// and a voice; when the engine cannot voice the language, a related locale
// and finally English are tried in turn.
package speech

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hoanghai1803/tribalwiki/internal/locale"
)

// ErrSynthesisFailed is returned when no locale in the chain could be voiced.
// Its text doubles as the client-facing message prefix.
var ErrSynthesisFailed = errors.New("TTS failed")

// Engine synthesizes text in one locale with one voice.
type Engine interface {
	Synthesize(ctx context.Context, text, lang string, voice Voice) ([]byte, error)
}

// Audio is synthesized speech.
type Audio struct {
	Data []byte
	// Locale is the locale that actually voiced the text.
	Locale string
	// Filename is the suggested download name.
	Filename string
}

// Service runs the locale fallback chain over an Engine.
type Service struct {
	engine Engine
}

// NewService creates a Service.
func NewService(engine Engine) *Service {
	return &Service{engine: engine}
}

// Synthesize voices text in language with the named voice. It tries the
// language's locale, then its fallback locale, then English. The error
// wraps ErrSynthesisFailed and carries the first failure.
func (s *Service) Synthesize(ctx context.Context, text, language, voiceType string) (*Audio, error) {
	language = locale.Normalize(language)
	voiceName, voice := VoiceFor(voiceType)
	code := Languages.Code(language)

	data, firstErr := s.engine.Synthesize(ctx, text, code, voice)
	if firstErr == nil {
		return s.audio(data, code, language, voiceName), nil
	}
	slog.Warn("speech synthesis failed", "locale", code, "error", firstErr)

	if fb, ok := Fallback(code); ok {
		data, err := s.engine.Synthesize(ctx, text, fb, voice)
		if err == nil {
			slog.Info("voiced with fallback locale", "requested", code, "locale", fb)
			return s.audio(data, fb, language, voiceName), nil
		}
		slog.Warn("speech synthesis failed", "locale", fb, "error", err)
	}

	if code != EnglishLocale {
		data, err := s.engine.Synthesize(ctx, text, EnglishLocale, voice)
		if err == nil {
			slog.Info("voiced in english", "requested", code)
			return s.audio(data, EnglishLocale, locale.DefaultName, voiceName), nil
		}
		slog.Warn("speech synthesis failed", "locale", EnglishLocale, "error", err)
	}

	return nil, fmt.Errorf("%w: %v", ErrSynthesisFailed, firstErr)
}

func (s *Service) audio(data []byte, code, filenameLanguage, voiceName string) *Audio {
	return &Audio{
		Data:     data,
		Locale:   code,
		Filename: fmt.Sprintf("summary_%s_%s.mp3", filenameLanguage, voiceName),
	}
}
