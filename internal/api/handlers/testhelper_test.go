package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hoanghai1803/tribalwiki/internal/auth"
	"github.com/hoanghai1803/tribalwiki/internal/storage"
)

// newTestStore creates an in-memory SQLite store with migrations applied. It
// registers a cleanup function to close the database when the test completes.
func newTestStore(t *testing.T) *storage.Store {
	t.Helper()

	db, err := storage.OpenDatabase(":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := storage.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	return storage.NewStore(db)
}

// newTestAuth returns an auth service over store with a fixed secret.
func newTestAuth(store *storage.Store) *auth.Service {
	return auth.NewService(store, auth.NewIssuer("test-secret", time.Hour))
}

// seedUser registers a user and returns its id.
func seedUser(t *testing.T, store *storage.Store, username string) int64 {
	t.Helper()
	id, err := store.CreateUser(context.Background(), username, username+"@example.com", "hash")
	if err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return id
}

// jsonRequest builds a request with v encoded as its JSON body, running as
// userID when it is positive.
func jsonRequest(t *testing.T, method, target string, v any, userID int64) *http.Request {
	t.Helper()
	var body bytes.Buffer
	if v != nil {
		if err := json.NewEncoder(&body).Encode(v); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	r := httptest.NewRequest(method, target, &body)
	r.Header.Set("Content-Type", "application/json")
	if userID > 0 {
		r = r.WithContext(auth.ContextWithUserID(r.Context(), userID))
	}
	return r
}

// decodeBody decodes the recorder's JSON body into a value of type T.
func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response: %v; body: %s", err, w.Body.String())
	}
	return v
}
