package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

// ErrUnsupportedLanguage is returned for locales the engine has no voice for.
var ErrUnsupportedLanguage = errors.New("language not supported")

// maxChunkChars is the longest text the translate_tts endpoint accepts per
// request.
const maxChunkChars = 100

// maxConcurrentChunks bounds parallel requests for one synthesis.
const maxConcurrentChunks = 4

// googleLanguages are the locales translate_tts can voice, restricted to
// the ones this service can ask for.
var googleLanguages = map[string]bool{
	"en": true, "hi": true, "ne": true, "ur": true, "bn": true,
	"ta": true, "te": true, "mr": true, "gu": true, "kn": true,
	"ml": true, "pa": true,
}

// Compile-time interface check.
var _ Engine = (*GoogleEngine)(nil)

// GoogleEngine voices text with the Google Translate speech endpoint.
type GoogleEngine struct {
	endpoint string
	client   *http.Client
}

// NewGoogleEngine creates a GoogleEngine. An empty endpoint selects
// https://translate.google.<tld>/translate_tts for the voice's domain; a set
// endpoint is used for every voice. A zero timeout selects 30 seconds.
func NewGoogleEngine(endpoint string, timeout time.Duration) *GoogleEngine {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GoogleEngine{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Synthesize returns MP3 audio of text spoken in lang. Long text is split
// into chunks whose MP3 frames are concatenated.
func (g *GoogleEngine) Synthesize(ctx context.Context, text, lang string, voice Voice) ([]byte, error) {
	if !googleLanguages[lang] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, lang)
	}

	chunks := splitText(text, maxChunkChars)
	if len(chunks) == 0 {
		return nil, errors.New("no text to speak")
	}

	endpoint := g.endpoint
	if endpoint == "" {
		endpoint = "https://translate.google." + voice.TLD + "/translate_tts"
	}

	slog.Debug("synthesizing speech", "locale", lang, "tld", voice.TLD, "chunks", len(chunks))

	// Chunks are fetched concurrently and stitched back together in order.
	parts := make([]bytes.Buffer, len(chunks))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrentChunks)
	for i, chunk := range chunks {
		eg.Go(func() error {
			if err := g.fetchChunk(ctx, &parts[i], endpoint, chunk, lang, voice.Slow, i, len(chunks)); err != nil {
				return fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var audio bytes.Buffer
	for i := range parts {
		audio.Write(parts[i].Bytes())
	}
	return audio.Bytes(), nil
}

func (g *GoogleEngine) fetchChunk(ctx context.Context, w io.Writer, endpoint, chunk, lang string, slow bool, idx, total int) error {
	speed := "1"
	if slow {
		speed = "0.3"
	}
	params := url.Values{
		"ie":       {"UTF-8"},
		"q":        {chunk},
		"tl":       {lang},
		"client":   {"tw-ob"},
		"ttsspeed": {speed},
		"total":    {strconv.Itoa(total)},
		"idx":      {strconv.Itoa(idx)},
		"textlen":  {strconv.Itoa(utf8.RuneCountInString(chunk))},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; TribalWikiReader/1.0)")
	req.Header.Set("Referer", "http://translate.google.com/")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return fmt.Errorf("reading audio: %w", err)
	}
	if n == 0 {
		return errors.New("empty audio response")
	}
	return nil
}

// splitText breaks text into chunks of at most limit characters, preferring
// to cut after punctuation in the second half of the window, then at the last
// space. Words longer than limit are cut mid-word.
func splitText(text string, limit int) []string {
	text = strings.Join(strings.Fields(text), " ")
	var chunks []string

	for text != "" {
		runes := []rune(text)
		if len(runes) <= limit {
			chunks = append(chunks, text)
			break
		}

		cut := -1
		for i := limit; i > limit/2; i-- {
			if strings.ContainsRune(".!?।,;:", runes[i-1]) {
				cut = i
				break
			}
		}
		if cut < 0 {
			for i := limit; i > 0; i-- {
				if unicode.IsSpace(runes[i]) {
					cut = i
					break
				}
			}
		}
		if cut <= 0 {
			cut = limit
		}

		if chunk := strings.TrimSpace(string(runes[:cut])); chunk != "" {
			chunks = append(chunks, chunk)
		}
		text = strings.TrimSpace(string(runes[cut:]))
	}
	return chunks
}
