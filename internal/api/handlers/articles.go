package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hoanghai1803/tribalwiki/internal/summarize"
	"github.com/hoanghai1803/tribalwiki/internal/wiki"
)

// ArticleFetcher retrieves Wikipedia articles.
type ArticleFetcher interface {
	Fetch(ctx context.Context, req wiki.Request) (*wiki.Result, error)
}

// Summarizer produces summaries of article text.
type Summarizer interface {
	Summarize(ctx context.Context, content, targetLanguage, length string) (*summarize.Result, error)
}

// Scrape handles POST /scrape. It fetches an article and returns its
// (optionally sectioned) content, metadata and section previews.
func Scrape(fetcher ArticleFetcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Title     string `json:"title"`
			Language  string `json:"language"`
			Section   string `json:"section"`
			MaxLength *int   `json:"max_length"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}

		title := strings.TrimSpace(body.Title)
		if title == "" {
			writeError(w, http.StatusBadRequest, "Article title is required")
			return
		}

		req := wiki.Request{
			Title:    title,
			Language: body.Language,
			Section:  body.Section,
		}
		if body.MaxLength != nil {
			req.MaxLength = *body.MaxLength
		}

		res, err := fetcher.Fetch(r.Context(), req)
		if err != nil {
			if errors.Is(err, wiki.ErrArticleNotFound) {
				writeError(w, http.StatusNotFound, "Article not found")
				return
			}
			slog.Error("failed to fetch article", "title", title, "language", body.Language, "error", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, res)
	}
}

// Summarize handles POST /summarize. It summarizes content at the requested
// length and translates the summary when the target language has a model.
func Summarize(s Summarizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Content       string `json:"content"`
			Language      string `json:"language"`
			SummaryLength string `json:"summary_length"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}

		if strings.TrimSpace(body.Content) == "" {
			writeError(w, http.StatusBadRequest, "Content is required")
			return
		}

		res, err := s.Summarize(r.Context(), body.Content, body.Language, body.SummaryLength)
		if err != nil {
			slog.Error("summarization failed", "error", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, res)
	}
}
