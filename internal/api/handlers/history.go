package handlers

import (
	"log/slog"
	"net/http"

	"github.com/hoanghai1803/tribalwiki/internal/models"
	"github.com/hoanghai1803/tribalwiki/internal/storage"
)

// savedArticleRequest is the body of POST /user/history and
// POST /user/bookmarks.
type savedArticleRequest struct {
	Title    string `json:"title"`
	Language string `json:"language"`
	Summary  string `json:"summary"`
}

// toSavedArticle validates the request and strips markup from the free-text
// fields. It writes a 400 response and returns false when a required field
// is missing.
func (b savedArticleRequest) toSavedArticle(w http.ResponseWriter) (models.SavedArticle, bool) {
	a := models.SavedArticle{
		Title:    plainText(b.Title),
		Language: plainText(b.Language),
		Summary:  plainText(b.Summary),
	}
	if a.Title == "" || a.Language == "" {
		writeError(w, http.StatusBadRequest, "title and language are required")
		return a, false
	}
	return a, true
}

// GetHistory handles GET /user/history. It returns the caller's most recent
// history entries, newest first.
func GetHistory(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}

		entries, err := store.GetHistory(r.Context(), userID)
		if err != nil {
			slog.Error("failed to get history", "user_id", userID, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to get history")
			return
		}

		if entries == nil {
			entries = []models.HistoryEntry{}
		}

		writeJSON(w, http.StatusOK, entries)
	}
}

// AddHistory handles POST /user/history. It records an article the caller
// summarized.
func AddHistory(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}

		var body savedArticleRequest
		if !decodeJSON(w, r, &body) {
			return
		}
		article, ok := body.toSavedArticle(w)
		if !ok {
			return
		}

		if _, err := store.AddHistory(r.Context(), userID, article); err != nil {
			slog.Error("failed to save history", "user_id", userID, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to save history")
			return
		}

		writeMessage(w, http.StatusCreated, "History saved")
	}
}
