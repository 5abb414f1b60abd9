package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hoanghai1803/tribalwiki/internal/auth"
	"github.com/hoanghai1803/tribalwiki/internal/models"
	"github.com/hoanghai1803/tribalwiki/internal/storage"
)

// Register handles POST /register. It creates an account from username,
// email and password.
func Register(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username string `json:"username"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}

		username := strings.TrimSpace(body.Username)
		email := strings.TrimSpace(body.Email)
		if username == "" || email == "" || body.Password == "" {
			writeError(w, http.StatusBadRequest, "Missing required fields")
			return
		}

		if _, err := svc.Register(r.Context(), username, email, body.Password); err != nil {
			switch {
			case errors.Is(err, storage.ErrDuplicateUser):
				writeError(w, http.StatusBadRequest, "Username or email already exists")
			case errors.Is(err, auth.ErrPasswordTooLong):
				writeError(w, http.StatusBadRequest, "Password must be at most 72 bytes")
			default:
				slog.Error("failed to register user", "username", username, "error", err)
				writeError(w, http.StatusInternalServerError, "Failed to create user")
			}
			return
		}

		writeMessage(w, http.StatusCreated, "User created successfully")
	}
}

// loginResponse is the body of a successful login.
type loginResponse struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// Login handles POST /login. It verifies the credentials and returns a
// session token with the public user profile.
func Login(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}

		username := strings.TrimSpace(body.Username)
		if username == "" || body.Password == "" {
			writeError(w, http.StatusBadRequest, "Missing username or password")
			return
		}

		session, err := svc.Login(r.Context(), username, body.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				writeError(w, http.StatusUnauthorized, "Invalid credentials")
				return
			}
			slog.Error("failed to log in", "username", username, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to log in")
			return
		}

		writeJSON(w, http.StatusOK, loginResponse{
			Token: session.Token,
			User:  session.User.Public(),
		})
	}
}
