package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hoanghai1803/tribalwiki/internal/models"
	"github.com/hoanghai1803/tribalwiki/internal/storage"
)

// GetBookmarks handles GET /user/bookmarks. It returns all of the caller's
// bookmarks, newest first.
func GetBookmarks(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}

		bookmarks, err := store.GetBookmarks(r.Context(), userID)
		if err != nil {
			slog.Error("failed to get bookmarks", "user_id", userID, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to get bookmarks")
			return
		}

		if bookmarks == nil {
			bookmarks = []models.Bookmark{}
		}

		writeJSON(w, http.StatusOK, bookmarks)
	}
}

// AddBookmark handles POST /user/bookmarks.
func AddBookmark(store *storage.Store) http.HandlerFunc {
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

		if _, err := store.AddBookmark(r.Context(), userID, article); err != nil {
			slog.Error("failed to save bookmark", "user_id", userID, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to save bookmark")
			return
		}

		writeMessage(w, http.StatusCreated, "Bookmark saved")
	}
}

// DeleteBookmark handles DELETE /user/bookmarks and
// DELETE /user/bookmarks/{id}. The id comes from the path when present,
// otherwise from the JSON body {"id": n}. Deleting a bookmark that does not
// exist or belongs to someone else succeeds without effect.
func DeleteBookmark(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}

		var id int64
		if chi.URLParam(r, "id") != "" {
			var err error
			if id, err = parseID(r, "id"); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
		} else {
			var body struct {
				ID json.Number `json:"id"`
			}
			if !decodeJSON(w, r, &body) {
				return
			}
			var err error
			if id, err = body.ID.Int64(); err != nil {
				writeError(w, http.StatusBadRequest, "id is required")
				return
			}
		}

		if id <= 0 {
			writeError(w, http.StatusBadRequest, "id is required")
			return
		}

		n, err := store.DeleteBookmark(r.Context(), userID, id)
		if err != nil {
			slog.Error("failed to delete bookmark", "user_id", userID, "bookmark_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to delete bookmark")
			return
		}
		if n == 0 {
			slog.Debug("bookmark delete matched nothing", "user_id", userID, "bookmark_id", id)
		}

		writeMessage(w, http.StatusOK, "Bookmark deleted")
	}
}
