package translate

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/hoanghai1803/tribalwiki/internal/ai"
	"github.com/stretchr/testify/assert"
)

type fakeTranslator struct {
	prefix string
	err    error
}

func (f fakeTranslator) Translate(_ context.Context, text string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.prefix + text, nil
}

type emptyTranslator struct{}

func (emptyTranslator) Translate(context.Context, string) (string, error) { return "", nil }

func TestModelFor(t *testing.T) {
	tests := []struct {
		language string
		want     string
		ok       bool
	}{
		{"nepali", "Helsinki-NLP/opus-mt-en-ne", true},
		{"Sanskrit", "Helsinki-NLP/opus-mt-en-hi", true},
		{" SINDHI ", "Helsinki-NLP/opus-mt-en-ur", true},
		{"hindi", "", false},
		{"english", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ModelFor(tt.language)
		assert.Equal(t, tt.ok, ok, "ModelFor(%q)", tt.language)
		assert.Equal(t, tt.want, got, "ModelFor(%q)", tt.language)
	}
}

func TestTranslate(t *testing.T) {
	var built []string
	svc := NewService(func(_ context.Context, model string) (ai.Translator, error) {
		built = append(built, model)
		return fakeTranslator{prefix: "[" + model + "] "}, nil
	})
	ctx := context.Background()

	assert.Equal(t, "[Helsinki-NLP/opus-mt-en-ne] hello", svc.Translate(ctx, "hello", "nepali"))
	assert.Equal(t, "[Helsinki-NLP/opus-mt-en-hi] hello", svc.Translate(ctx, "hello", "sanskrit"))
	assert.Equal(t, "[Helsinki-NLP/opus-mt-en-ne] again", svc.Translate(ctx, "again", "Nepali"))

	// One translator per model, reused across calls.
	assert.Equal(t, []string{"Helsinki-NLP/opus-mt-en-ne", "Helsinki-NLP/opus-mt-en-hi"}, built)
}

func TestTranslateNoOp(t *testing.T) {
	var calls atomic.Int32
	svc := NewService(func(context.Context, string) (ai.Translator, error) {
		calls.Add(1)
		return fakeTranslator{prefix: "x"}, nil
	})
	ctx := context.Background()

	for _, lang := range []string{"english", "hindi", "tamil", ""} {
		assert.Equal(t, "hello", svc.Translate(ctx, "hello", lang), "language %q", lang)
	}
	assert.Equal(t, "", svc.Translate(ctx, "", "nepali"))
	assert.Zero(t, calls.Load())
}

func TestTranslateFailuresReturnInput(t *testing.T) {
	ctx := context.Background()

	initFails := NewService(func(context.Context, string) (ai.Translator, error) {
		return nil, errors.New("hub unavailable")
	})
	assert.Equal(t, "hello", initFails.Translate(ctx, "hello", "nepali"))

	callFails := NewService(func(context.Context, string) (ai.Translator, error) {
		return fakeTranslator{err: errors.New("model overloaded")}, nil
	})
	assert.Equal(t, "hello", callFails.Translate(ctx, "hello", "sindhi"))

	emptyOutput := NewService(func(context.Context, string) (ai.Translator, error) {
		return emptyTranslator{}, nil
	})
	assert.Equal(t, "hello", emptyOutput.Translate(ctx, "hello", "sanskrit"))
}

func TestTranslateRetriesFailedInit(t *testing.T) {
	attempts := 0
	svc := NewService(func(context.Context, string) (ai.Translator, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("transient")
		}
		return fakeTranslator{prefix: "ok "}, nil
	})
	ctx := context.Background()

	assert.Equal(t, "hello", svc.Translate(ctx, "hello", "nepali"))
	assert.Equal(t, "ok hello", svc.Translate(ctx, "hello", "nepali"))
	assert.Equal(t, 2, attempts)
}
