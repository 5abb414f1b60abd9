package speech

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedEngine voices only the locales in ok and records every attempt.
type scriptedEngine struct {
	ok       map[string]bool
	attempts []string
	voices   []Voice
}

func (e *scriptedEngine) Synthesize(_ context.Context, _ string, lang string, voice Voice) ([]byte, error) {
	e.attempts = append(e.attempts, lang)
	e.voices = append(e.voices, voice)
	if e.ok[lang] {
		return []byte("mp3-" + lang), nil
	}
	return nil, fmt.Errorf("cannot voice %s", lang)
}

func TestSynthesizeDirect(t *testing.T) {
	engine := &scriptedEngine{ok: map[string]bool{"ne": true}}
	audio, err := NewService(engine).Synthesize(context.Background(), "text", "Nepali", "uk")
	require.NoError(t, err)

	assert.Equal(t, []byte("mp3-ne"), audio.Data)
	assert.Equal(t, "ne", audio.Locale)
	assert.Equal(t, "summary_nepali_uk.mp3", audio.Filename)
	assert.Equal(t, []string{"ne"}, engine.attempts)
	assert.Equal(t, "co.uk", engine.voices[0].TLD)
}

func TestSynthesizeFallbackLocale(t *testing.T) {
	engine := &scriptedEngine{ok: map[string]bool{"hi": true}}
	audio, err := NewService(engine).Synthesize(context.Background(), "text", "sanskrit", "")
	require.NoError(t, err)

	assert.Equal(t, "hi", audio.Locale)
	assert.Equal(t, "summary_sanskrit_default.mp3", audio.Filename)
	assert.Equal(t, []string{"sa", "hi"}, engine.attempts)
}

func TestSynthesizeEnglishLastResort(t *testing.T) {
	engine := &scriptedEngine{ok: map[string]bool{"en": true}}
	audio, err := NewService(engine).Synthesize(context.Background(), "text", "sindhi", "slow")
	require.NoError(t, err)

	assert.Equal(t, "en", audio.Locale)
	assert.Equal(t, "summary_english_slow.mp3", audio.Filename)
	assert.Equal(t, []string{"sd", "ur", "en"}, engine.attempts)
	assert.True(t, engine.voices[2].Slow)
}

func TestSynthesizeNoFallbackGoesToEnglish(t *testing.T) {
	engine := &scriptedEngine{ok: map[string]bool{"en": true}}
	audio, err := NewService(engine).Synthesize(context.Background(), "text", "nepali", "default")
	require.NoError(t, err)

	assert.Equal(t, "en", audio.Locale)
	assert.Equal(t, []string{"ne", "en"}, engine.attempts)
}

func TestSynthesizeEnglishRequested(t *testing.T) {
	engine := &scriptedEngine{ok: map[string]bool{"en": true}}
	audio, err := NewService(engine).Synthesize(context.Background(), "text", "", "robot")
	require.NoError(t, err)

	assert.Equal(t, "summary_english_default.mp3", audio.Filename)
	assert.Equal(t, []string{"en"}, engine.attempts)
}

func TestSynthesizeAllFail(t *testing.T) {
	engine := &scriptedEngine{}
	_, err := NewService(engine).Synthesize(context.Background(), "text", "tamil", "default")
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrSynthesisFailed))
	assert.Equal(t, "TTS failed: cannot voice ta", err.Error())
	assert.Equal(t, []string{"ta", "hi", "en"}, engine.attempts)
}

func TestSynthesizeEnglishFailsOnce(t *testing.T) {
	engine := &scriptedEngine{}
	_, err := NewService(engine).Synthesize(context.Background(), "text", "english", "default")
	require.ErrorIs(t, err, ErrSynthesisFailed)
	assert.Equal(t, []string{"en"}, engine.attempts)
}
