package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Summarizer modes.
const (
	ModeModel  = "model"
	ModeSimple = "simple"
)

// DefaultSecretKey is the signing key used when none is configured. It is
// only fit for local development and triggers a warning at startup.
const DefaultSecretKey = "jwt-secret-string"

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Auth        AuthConfig        `toml:"auth"`
	Database    DatabaseConfig    `toml:"database"`
	Wiki        WikiConfig        `toml:"wiki"`
	Summarizer  SummarizerConfig  `toml:"summarizer"`
	HuggingFace HuggingFaceConfig `toml:"huggingface"`
	Speech      SpeechConfig      `toml:"speech"`
	Log         LogConfig         `toml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host                string `toml:"host"`
	Port                int    `toml:"port"`
	ReadTimeoutSeconds  int    `toml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `toml:"write_timeout_seconds"`
	// AuthRateLimit is the number of /login and /register requests a single
	// client IP may make per minute.
	AuthRateLimit int `toml:"auth_rate_limit"`
}

// AuthConfig holds token signing settings.
type AuthConfig struct {
	SecretKey     string `toml:"secret_key"`
	TokenTTLHours int    `toml:"token_ttl_hours"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// WikiConfig holds article retrieval settings. Endpoint is a format string
// that receives the locale code, e.g. "https://%s.wikipedia.org/w/api.php".
type WikiConfig struct {
	Endpoint       string `toml:"endpoint"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// SummarizerConfig selects how summaries are produced.
type SummarizerConfig struct {
	Mode     string `toml:"mode"`
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
}

// HuggingFaceConfig holds Inference API settings shared by the summarizer
// and the translator.
type HuggingFaceConfig struct {
	APIToken       string `toml:"api_token"`
	InferenceURL   string `toml:"inference_url"`
	HubURL         string `toml:"hub_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// SpeechConfig holds text-to-speech settings. An empty Endpoint means the
// public translate.google.<tld> endpoint matching the voice accent.
type SpeechConfig struct {
	Endpoint       string `toml:"endpoint"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// LogConfig controls the default slog handler.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

const defaultConfigContent = `[server]
host = "0.0.0.0"
port = 5000
read_timeout_seconds = 30
write_timeout_seconds = 120
auth_rate_limit = 20              # login/register requests per IP per minute

[auth]
secret_key = ""                   # Or set JWT_SECRET_KEY / SECRET_KEY
token_ttl_hours = 24

[database]
path = "./data/tribal_wiki.db"

[wiki]
endpoint = "https://%s.wikipedia.org/w/api.php"
timeout_seconds = 20

[summarizer]
mode = "model"                    # "model" or "simple" (or set SUMMARY_MODE)
provider = "huggingface"          # "huggingface", "anthropic", "openai" or "gemini"
model = ""                        # Or set SUMMARY_MODEL; empty picks the provider default
api_key = ""                      # For anthropic/openai/gemini (or AI_API_KEY)

[huggingface]
api_token = ""                    # Or set HF_API_TOKEN
inference_url = "https://api-inference.huggingface.co"
hub_url = "https://huggingface.co"
timeout_seconds = 120

[speech]
endpoint = ""
timeout_seconds = 30

[log]
level = "info"
format = "text"
`

// defaultModels maps a summarizer provider to the model used when none is
// configured.
var defaultModels = map[string]string{
	"huggingface": "csebuetnlp/mT5_multilingual_XLSum",
	"anthropic":   "claude-haiku-4-5",
	"openai":      "gpt-4o-mini",
	"gemini":      "gemini-2.5-flash",
}

// Load reads and parses the TOML config from the given path. If the file does
// not exist, it creates a default config file at that path. Environment
// variables override values from the file with highest priority.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := createDefault(path); err != nil {
			return nil, fmt.Errorf("creating default config: %w", err)
		}
		slog.Info("created default config file", "path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Validate explicitly-set values before applying defaults, so that
	// writing "port = 0" is an error rather than silently replaced.
	if err := validateExplicit(&cfg, md); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// TokenTTL returns the lifetime of issued session tokens.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLHours) * time.Hour
}

// Seconds converts a configured timeout in seconds to a time.Duration.
func Seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// createDefault writes the default config content to the given path,
// creating any parent directories as needed.
func createDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// validateExplicit checks values that were explicitly set in the TOML file.
func validateExplicit(cfg *Config, md toml.MetaData) error {
	if md.IsDefined("server", "port") {
		if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
			return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
		}
	}
	if md.IsDefined("auth", "token_ttl_hours") && cfg.Auth.TokenTTLHours < 1 {
		return fmt.Errorf("invalid auth.token_ttl_hours %d: must be >= 1", cfg.Auth.TokenTTLHours)
	}
	if md.IsDefined("server", "auth_rate_limit") && cfg.Server.AuthRateLimit < 1 {
		return fmt.Errorf("invalid server.auth_rate_limit %d: must be >= 1", cfg.Server.AuthRateLimit)
	}
	return nil
}

// applyDefaults sets default values for any zero-valued fields.
func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Server.ReadTimeoutSeconds == 0 {
		cfg.Server.ReadTimeoutSeconds = 30
	}
	if cfg.Server.WriteTimeoutSeconds == 0 {
		cfg.Server.WriteTimeoutSeconds = 120
	}
	if cfg.Server.AuthRateLimit == 0 {
		cfg.Server.AuthRateLimit = 20
	}
	if cfg.Auth.SecretKey == "" {
		cfg.Auth.SecretKey = DefaultSecretKey
	}
	if cfg.Auth.TokenTTLHours == 0 {
		cfg.Auth.TokenTTLHours = 24
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "./data/tribal_wiki.db"
	}
	if cfg.Wiki.Endpoint == "" {
		cfg.Wiki.Endpoint = "https://%s.wikipedia.org/w/api.php"
	}
	if cfg.Wiki.TimeoutSeconds == 0 {
		cfg.Wiki.TimeoutSeconds = 20
	}
	if cfg.Summarizer.Mode == "" {
		cfg.Summarizer.Mode = ModeModel
	}
	if cfg.Summarizer.Provider == "" {
		cfg.Summarizer.Provider = "huggingface"
	}
	if cfg.Summarizer.Model == "" {
		cfg.Summarizer.Model = defaultModels[cfg.Summarizer.Provider]
	}
	if cfg.HuggingFace.InferenceURL == "" {
		cfg.HuggingFace.InferenceURL = "https://api-inference.huggingface.co"
	}
	if cfg.HuggingFace.HubURL == "" {
		cfg.HuggingFace.HubURL = "https://huggingface.co"
	}
	if cfg.HuggingFace.TimeoutSeconds == 0 {
		cfg.HuggingFace.TimeoutSeconds = 120
	}
	if cfg.Speech.TimeoutSeconds == 0 {
		cfg.Speech.TimeoutSeconds = 30
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

// applyEnvOverrides applies environment variable overrides. Environment
// variables take highest priority over config file values.
//
// Priority for auth.secret_key: JWT_SECRET_KEY, then SECRET_KEY.
// Priority for summarizer.api_key: AI_API_KEY, then the provider-specific
// variable (ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY).
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SECRET_KEY"); v != "" {
		cfg.Auth.SecretKey = v
	}
	if v := os.Getenv("JWT_SECRET_KEY"); v != "" {
		cfg.Auth.SecretKey = v
	}

	if v := os.Getenv("SUMMARY_MODE"); v != "" {
		cfg.Summarizer.Mode = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("SUMMARY_MODEL"); v != "" {
		cfg.Summarizer.Model = v
	}
	if v := os.Getenv("HF_API_TOKEN"); v != "" {
		cfg.HuggingFace.APIToken = v
	}

	switch cfg.Summarizer.Provider {
	case "anthropic":
		if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
			cfg.Summarizer.APIKey = v
		}
	case "openai":
		if v := os.Getenv("OPENAI_API_KEY"); v != "" {
			cfg.Summarizer.APIKey = v
		}
	case "gemini":
		if v := os.Getenv("GEMINI_API_KEY"); v != "" {
			cfg.Summarizer.APIKey = v
		}
	}
	if v := os.Getenv("AI_API_KEY"); v != "" {
		cfg.Summarizer.APIKey = v
	}

	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		} else {
			slog.Warn("ignoring invalid PORT environment variable", "value", v)
		}
	}
}

// validate checks that configuration values are within acceptable ranges.
func validate(cfg *Config) error {
	switch cfg.Summarizer.Mode {
	case ModeModel, ModeSimple:
	default:
		return fmt.Errorf("invalid summarizer.mode %q: must be %q or %q", cfg.Summarizer.Mode, ModeModel, ModeSimple)
	}

	if _, ok := defaultModels[cfg.Summarizer.Provider]; !ok {
		return fmt.Errorf("invalid summarizer.provider %q: must be one of huggingface, anthropic, openai, gemini", cfg.Summarizer.Provider)
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level %q", cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log.format %q: must be \"text\" or \"json\"", cfg.Log.Format)
	}

	if cfg.Auth.SecretKey == DefaultSecretKey {
		slog.Warn("auth.secret_key is the development default: set JWT_SECRET_KEY in production")
	}
	if cfg.Summarizer.Mode == ModeModel && cfg.Summarizer.Provider != "huggingface" && cfg.Summarizer.APIKey == "" {
		slog.Warn("summarizer.api_key is empty: model summaries will fall back to the simple heuristic",
			"provider", cfg.Summarizer.Provider)
	}

	return nil
}
