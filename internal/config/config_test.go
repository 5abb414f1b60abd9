package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeTestConfig is a helper that writes a TOML config file to a temp directory
// and returns its path.
func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}
	return path
}

// clearEnv blanks every variable Load looks at so the host environment does
// not leak into assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SECRET_KEY", "JWT_SECRET_KEY", "SUMMARY_MODE", "SUMMARY_MODEL",
		"HF_API_TOKEN", "AI_API_KEY", "ANTHROPIC_API_KEY", "OPENAI_API_KEY",
		"GEMINI_API_KEY", "PORT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	clearEnv(t)
	content := `
[server]
host = "127.0.0.1"
port = 9090
auth_rate_limit = 5

[auth]
secret_key = "file-secret"
token_ttl_hours = 12

[database]
path = "/tmp/wiki.db"

[summarizer]
mode = "simple"
provider = "openai"
model = "gpt-4o"
api_key = "sk-test"

[huggingface]
api_token = "hf_test"

[log]
level = "debug"
format = "json"
`
	path := writeTestConfig(t, content)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) unexpected error: %v", path, err)
	}

	if cfg.Addr() != "127.0.0.1:9090" {
		t.Errorf("Addr() = %q, want %q", cfg.Addr(), "127.0.0.1:9090")
	}
	if cfg.Server.AuthRateLimit != 5 {
		t.Errorf("Server.AuthRateLimit = %d, want 5", cfg.Server.AuthRateLimit)
	}
	if cfg.Auth.SecretKey != "file-secret" {
		t.Errorf("Auth.SecretKey = %q, want %q", cfg.Auth.SecretKey, "file-secret")
	}
	if cfg.TokenTTL() != 12*time.Hour {
		t.Errorf("TokenTTL() = %v, want 12h", cfg.TokenTTL())
	}
	if cfg.Database.Path != "/tmp/wiki.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/tmp/wiki.db")
	}
	if cfg.Summarizer.Mode != ModeSimple {
		t.Errorf("Summarizer.Mode = %q, want %q", cfg.Summarizer.Mode, ModeSimple)
	}
	if cfg.Summarizer.Provider != "openai" || cfg.Summarizer.Model != "gpt-4o" {
		t.Errorf("Summarizer = %+v, want openai/gpt-4o", cfg.Summarizer)
	}
	if cfg.HuggingFace.APIToken != "hf_test" {
		t.Errorf("HuggingFace.APIToken = %q, want %q", cfg.HuggingFace.APIToken, "hf_test")
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v, want debug/json", cfg.Log)
	}
}

func TestLoad_MissingFile_CreatesDefault(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) unexpected error: %v", path, err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config file not created at %q: %v", path, err)
	}

	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Auth.SecretKey != DefaultSecretKey {
		t.Errorf("Auth.SecretKey = %q, want default", cfg.Auth.SecretKey)
	}
	if cfg.TokenTTL() != 24*time.Hour {
		t.Errorf("TokenTTL() = %v, want 24h", cfg.TokenTTL())
	}
	if cfg.Summarizer.Mode != ModeModel {
		t.Errorf("Summarizer.Mode = %q, want %q", cfg.Summarizer.Mode, ModeModel)
	}
	if cfg.Summarizer.Provider != "huggingface" {
		t.Errorf("Summarizer.Provider = %q, want huggingface", cfg.Summarizer.Provider)
	}
	if cfg.Summarizer.Model != "csebuetnlp/mT5_multilingual_XLSum" {
		t.Errorf("Summarizer.Model = %q, want the mT5 XLSum default", cfg.Summarizer.Model)
	}
	if !strings.Contains(cfg.Wiki.Endpoint, "%s") {
		t.Errorf("Wiki.Endpoint = %q, want a locale placeholder", cfg.Wiki.Endpoint)
	}
}

func TestLoad_ProviderDefaultModel(t *testing.T) {
	clearEnv(t)
	path := writeTestConfig(t, "[summarizer]\nprovider = \"gemini\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load unexpected error: %v", err)
	}
	if cfg.Summarizer.Model != "gemini-2.5-flash" {
		t.Errorf("Summarizer.Model = %q, want gemini-2.5-flash", cfg.Summarizer.Model)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECRET_KEY", "from-secret-key")
	t.Setenv("JWT_SECRET_KEY", "from-jwt-secret-key")
	t.Setenv("SUMMARY_MODE", "simple")
	t.Setenv("SUMMARY_MODEL", "facebook/bart-large-cnn")
	t.Setenv("HF_API_TOKEN", "hf_env")
	t.Setenv("PORT", "8181")

	path := writeTestConfig(t, "[auth]\nsecret_key = \"file\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load unexpected error: %v", err)
	}

	if cfg.Auth.SecretKey != "from-jwt-secret-key" {
		t.Errorf("Auth.SecretKey = %q, want JWT_SECRET_KEY to win", cfg.Auth.SecretKey)
	}
	if cfg.Summarizer.Mode != ModeSimple {
		t.Errorf("Summarizer.Mode = %q, want simple", cfg.Summarizer.Mode)
	}
	if cfg.Summarizer.Model != "facebook/bart-large-cnn" {
		t.Errorf("Summarizer.Model = %q, want SUMMARY_MODEL value", cfg.Summarizer.Model)
	}
	if cfg.HuggingFace.APIToken != "hf_env" {
		t.Errorf("HuggingFace.APIToken = %q, want hf_env", cfg.HuggingFace.APIToken)
	}
	if cfg.Server.Port != 8181 {
		t.Errorf("Server.Port = %d, want 8181", cfg.Server.Port)
	}
}

func TestLoad_APIKeyPriority(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "anthropic-key")

	path := writeTestConfig(t, "[summarizer]\nprovider = \"anthropic\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load unexpected error: %v", err)
	}
	if cfg.Summarizer.APIKey != "anthropic-key" {
		t.Errorf("APIKey = %q, want provider-specific key", cfg.Summarizer.APIKey)
	}

	t.Setenv("AI_API_KEY", "generic-key")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load unexpected error: %v", err)
	}
	if cfg.Summarizer.APIKey != "generic-key" {
		t.Errorf("APIKey = %q, want AI_API_KEY to win", cfg.Summarizer.APIKey)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"port zero", "[server]\nport = 0\n", "server.port"},
		{"port too large", "[server]\nport = 70000\n", "server.port"},
		{"zero ttl", "[auth]\ntoken_ttl_hours = 0\n", "token_ttl_hours"},
		{"bad mode", "[summarizer]\nmode = \"fancy\"\n", "summarizer.mode"},
		{"bad provider", "[summarizer]\nprovider = \"cohere\"\n", "summarizer.provider"},
		{"bad log level", "[log]\nlevel = \"loud\"\n", "log.level"},
		{"bad log format", "[log]\nformat = \"xml\"\n", "log.format"},
		{"bad toml", "[server\nport = 1", "parsing config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			path := writeTestConfig(t, tt.content)

			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoad_InvalidModeFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUMMARY_MODE", "turbo")

	path := writeTestConfig(t, "")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid SUMMARY_MODE, got nil")
	}
}

func TestSeconds(t *testing.T) {
	if got := Seconds(3); got != 3*time.Second {
		t.Errorf("Seconds(3) = %v, want 3s", got)
	}
}
