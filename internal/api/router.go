// Package api assembles the HTTP surface: routing, middleware, and the
// wiring of handlers to their services.
package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hoanghai1803/tribalwiki/internal/api/handlers"
	"github.com/hoanghai1803/tribalwiki/internal/auth"
	"github.com/hoanghai1803/tribalwiki/internal/storage"
)

// Services are the dependencies the handlers run on.
type Services struct {
	Store      *storage.Store
	Auth       *auth.Service
	Articles   handlers.ArticleFetcher
	Summarizer handlers.Summarizer
	Speech     handlers.SpeechSynthesizer
	// AuthRateLimit is the number of /register and /login requests a client
	// IP may make per minute. Zero disables the limit.
	AuthRateLimit int
}

// NewRouter creates and configures the HTTP router with all routes.
func NewRouter(svc Services) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(RequestLogger)
	r.Use(Recovery)
	r.Use(CORS)

	r.Get("/", handlers.Index())
	r.Get("/health", handlers.Health(svc.Store))
	r.Get("/tts/voices", handlers.Voices())

	// Account creation and login.
	r.Group(func(public chi.Router) {
		if svc.AuthRateLimit > 0 {
			public.Use(NewRateLimiter(svc.AuthRateLimit, time.Minute).Middleware)
		}
		public.Post("/register", handlers.Register(svc.Auth))
		public.Post("/login", handlers.Login(svc.Auth))
	})

	// Everything else needs a bearer token.
	r.Group(func(private chi.Router) {
		private.Use(RequireAuth(svc.Auth.Issuer()))

		private.Route("/user", func(user chi.Router) {
			user.Get("/preferences", handlers.GetPreferences(svc.Store))
			user.Put("/preferences", handlers.UpdatePreferences(svc.Store))

			user.Get("/history", handlers.GetHistory(svc.Store))
			user.Post("/history", handlers.AddHistory(svc.Store))

			user.Get("/bookmarks", handlers.GetBookmarks(svc.Store))
			user.Post("/bookmarks", handlers.AddBookmark(svc.Store))
			user.Delete("/bookmarks", handlers.DeleteBookmark(svc.Store))
			user.Delete("/bookmarks/{id}", handlers.DeleteBookmark(svc.Store))
		})

		private.Post("/scrape", handlers.Scrape(svc.Articles))
		private.Post("/summarize", handlers.Summarize(svc.Summarizer))
		private.Post("/tts", handlers.TTS(svc.Speech))
	})

	return r
}
