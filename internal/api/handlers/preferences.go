package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hoanghai1803/tribalwiki/internal/storage"
)

// defaultPreferences is stored when a PUT carries no preferences.
const defaultPreferences = "{}"

// GetPreferences handles GET /user/preferences. It returns the caller's
// preferences blob exactly as it was stored.
func GetPreferences(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}

		prefs, err := store.GetPreferences(r.Context(), userID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "User not found")
				return
			}
			slog.Error("failed to get preferences", "user_id", userID, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to get preferences")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"preferences": prefs})
	}
}

// UpdatePreferences handles PUT /user/preferences. The "preferences" value
// is opaque: a JSON string is stored as-is, any other JSON value is stored as
// its JSON text, and an absent value resets to "{}".
func UpdatePreferences(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}

		var body struct {
			Preferences json.RawMessage `json:"preferences"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}

		if err := store.SetPreferences(r.Context(), userID, preferencesBlob(body.Preferences)); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "User not found")
				return
			}
			slog.Error("failed to save preferences", "user_id", userID, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to save preferences")
			return
		}

		writeMessage(w, http.StatusOK, "Preferences updated")
	}
}

// preferencesBlob turns the raw "preferences" value into the stored text.
func preferencesBlob(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return defaultPreferences
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
