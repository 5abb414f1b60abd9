package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGetPreferencesDefault(t *testing.T) {
	store := newTestStore(t)
	userID := seedUser(t, store, "asha")

	w := httptest.NewRecorder()
	GetPreferences(store).ServeHTTP(w, jsonRequest(t, http.MethodGet, "/user/preferences", nil, userID))

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
	}
	if got := decodeBody[map[string]string](t, w)["preferences"]; got != "{}" {
		t.Errorf("got preferences %q, want %q", got, "{}")
	}
}

func TestUpdatePreferences(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string stored verbatim", `{"preferences": "{\"theme\":\"dark\"}"}`, `{"theme":"dark"}`},
		{"object stored as json", `{"preferences": {"theme": "dark", "lang": "nepali"}}`, `{"theme":"dark","lang":"nepali"}`},
		{"array stored as json", `{"preferences": [1, 2]}`, `[1,2]`},
		{"null resets", `{"preferences": null}`, `{}`},
		{"absent resets", `{}`, `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			userID := seedUser(t, store, "asha")

			r := jsonRequest(t, http.MethodPut, "/user/preferences", nil, userID)
			r.Body = io.NopCloser(strings.NewReader(tt.body))

			w := httptest.NewRecorder()
			UpdatePreferences(store).ServeHTTP(w, r)
			if w.Code != http.StatusOK {
				t.Fatalf("got status %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
			}

			w = httptest.NewRecorder()
			GetPreferences(store).ServeHTTP(w, jsonRequest(t, http.MethodGet, "/user/preferences", nil, userID))
			if got := decodeBody[map[string]string](t, w)["preferences"]; got != tt.want {
				t.Errorf("got preferences %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUpdatePreferencesInvalidJSON(t *testing.T) {
	store := newTestStore(t)
	userID := seedUser(t, store, "asha")

	r := jsonRequest(t, http.MethodPut, "/user/preferences", nil, userID)
	r.Body = io.NopCloser(strings.NewReader("{not json"))

	w := httptest.NewRecorder()
	UpdatePreferences(store).ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestPreferencesUnknownUser(t *testing.T) {
	store := newTestStore(t)

	w := httptest.NewRecorder()
	GetPreferences(store).ServeHTTP(w, jsonRequest(t, http.MethodGet, "/user/preferences", nil, 99))
	if w.Code != http.StatusNotFound {
		t.Errorf("GET: got status %d, want %d", w.Code, http.StatusNotFound)
	}

	w = httptest.NewRecorder()
	UpdatePreferences(store).ServeHTTP(w, jsonRequest(t, http.MethodPut, "/user/preferences",
		map[string]any{"preferences": json.RawMessage(`{"a":1}`)}, 99))
	if w.Code != http.StatusNotFound {
		t.Errorf("PUT: got status %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestPreferencesRequiresUser(t *testing.T) {
	store := newTestStore(t)

	w := httptest.NewRecorder()
	GetPreferences(store).ServeHTTP(w, jsonRequest(t, http.MethodGet, "/user/preferences", nil, 0))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("got status %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
