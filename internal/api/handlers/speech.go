package handlers

import (
	"context"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/hoanghai1803/tribalwiki/internal/speech"
)

// SpeechSynthesizer turns text into audio.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, language, voiceType string) (*speech.Audio, error)
}

// TTS handles POST /tts. It returns MP3 audio inline, or as an attachment
// when "download" is true.
func TTS(synth SpeechSynthesizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Text      string `json:"text"`
			Language  string `json:"language"`
			VoiceType string `json:"voice_type"`
			Download  bool   `json:"download"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}

		if strings.TrimSpace(body.Text) == "" {
			writeError(w, http.StatusBadRequest, "Text is required")
			return
		}

		audio, err := synth.Synthesize(r.Context(), body.Text, body.Language, body.VoiceType)
		if err != nil {
			slog.Error("speech synthesis failed", "language", body.Language, "error", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		w.Header().Set("Content-Type", "audio/mpeg")
		w.Header().Set("Content-Length", strconv.Itoa(len(audio.Data)))
		if body.Download {
			w.Header().Set("Content-Disposition",
				mime.FormatMediaType("attachment", map[string]string{"filename": audio.Filename}))
		}
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(audio.Data); err != nil {
			slog.Warn("failed to write audio", "error", err)
		}
	}
}

// voicesResponse is the body of GET /tts/voices.
type voicesResponse struct {
	VoiceTypes         []string          `json:"voice_types"`
	SupportedLanguages []string          `json:"supported_languages"`
	VoiceDescriptions  map[string]string `json:"voice_descriptions"`
}

// Voices handles GET /tts/voices. It lists the voice options and the
// languages speech can be requested in.
func Voices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, voicesResponse{
			VoiceTypes:         speech.VoiceNames(),
			SupportedLanguages: speech.Languages.Names(),
			VoiceDescriptions:  speech.VoiceDescriptions(),
		})
	}
}
