package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hoanghai1803/tribalwiki/internal/ai"
	"github.com/hoanghai1803/tribalwiki/internal/api"
	"github.com/hoanghai1803/tribalwiki/internal/auth"
	"github.com/hoanghai1803/tribalwiki/internal/config"
	"github.com/hoanghai1803/tribalwiki/internal/speech"
	"github.com/hoanghai1803/tribalwiki/internal/storage"
	"github.com/hoanghai1803/tribalwiki/internal/summarize"
	"github.com/hoanghai1803/tribalwiki/internal/translate"
	"github.com/hoanghai1803/tribalwiki/internal/wiki"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	// Load configuration (auto-creates default if missing).
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg.Log))

	// Open database with WAL mode and pragmas.
	db, err := storage.OpenDatabase(cfg.Database.Path)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Run schema migrations.
	if err := storage.RunMigrations(ctx, db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	store := storage.NewStore(db)

	hfOptions := ai.HuggingFaceOptions{
		APIToken:     cfg.HuggingFace.APIToken,
		InferenceURL: cfg.HuggingFace.InferenceURL,
		HubURL:       cfg.HuggingFace.HubURL,
		Timeout:      config.Seconds(cfg.HuggingFace.TimeoutSeconds),
	}
	hfClient := ai.NewHuggingFaceClient(hfOptions)

	translator := translate.NewService(func(ctx context.Context, model string) (ai.Translator, error) {
		return ai.NewHuggingFaceTranslator(ctx, hfClient, model)
	})

	summarizer := summarize.NewService(summarize.Options{
		Simple: cfg.Summarizer.Mode == config.ModeSimple,
		Model:  cfg.Summarizer.Provider + "/" + cfg.Summarizer.Model,
		NewSummarizer: func(ctx context.Context) (ai.Summarizer, error) {
			return ai.NewSummarizer(ctx, ai.ProviderConfig{
				Provider:    cfg.Summarizer.Provider,
				APIKey:      cfg.Summarizer.APIKey,
				Model:       cfg.Summarizer.Model,
				HuggingFace: hfOptions,
			})
		},
		Translator: translator,
	})
	slog.Info("summarizer configured",
		"mode", cfg.Summarizer.Mode,
		"provider", cfg.Summarizer.Provider,
		"model", cfg.Summarizer.Model,
	)

	router := api.NewRouter(api.Services{
		Store:         store,
		Auth:          auth.NewService(store, auth.NewIssuer(cfg.Auth.SecretKey, cfg.TokenTTL())),
		Articles:      wiki.NewClient(cfg.Wiki.Endpoint, config.Seconds(cfg.Wiki.TimeoutSeconds)),
		Summarizer:    summarizer,
		Speech:        speech.NewService(speech.NewGoogleEngine(cfg.Speech.Endpoint, config.Seconds(cfg.Speech.TimeoutSeconds))),
		AuthRateLimit: cfg.Server.AuthRateLimit,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  config.Seconds(cfg.Server.ReadTimeoutSeconds),
		WriteTimeout: config.Seconds(cfg.Server.WriteTimeoutSeconds),
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", srv.Addr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
		}
	}
}

// newLogger builds the default logger from the [log] config section.
func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
