package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"

	defaultOpenRouterModel = "anthropic/claude-3-haiku"
	defaultGeminiModel     = "gemini-1.5-flash"
)

// Config holds application configuration.
type Config struct {
	Port              string   `validate:"required,numeric"`
	Env               string   `validate:"oneof=production staging local dev"`
	CORSAllowOrigin   []string `validate:"dive,url"`
	LLMProvider       string   `validate:"oneof=openrouter gemini"`
	LLMModel          string   `validate:"required"`
	LLMTimeout        time.Duration
	OpenRouterAPIKey  string `validate:"required_if=LLMProvider openrouter"`
	OpenRouterURL     string `validate:"required,url"`
	OpenRouterReferer string
	OpenRouterTitle   string
	GeminiAPIKey      string `validate:"required_if=LLMProvider gemini"`
	DatabaseURL       string
	RedisURL          string
	CacheTTL          time.Duration
	OTelEnabled       bool
	OTelExporter      string `validate:"omitempty,oneof=stdout otlp"`
	PDFFontPath       string
	ShutdownTimeout   time.Duration
}

// ConfigurationError reports configuration the process cannot start with.
type ConfigurationError struct {
	Fields []string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("configuration error: %v", e.Err)
	}
	return fmt.Sprintf("configuration error: invalid %s", strings.Join(e.Fields, ", "))
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// envNames maps struct fields to the variables that feed them, for error messages.
var envNames = map[string]string{
	"Port":             "PORT",
	"Env":              "ENV",
	"CORSAllowOrigin":  "CORS_ALLOW_ORIGINS",
	"LLMProvider":      "LLM_PROVIDER",
	"LLMModel":         "LLM_MODEL",
	"OpenRouterAPIKey": "OPENROUTER_API_KEY",
	"OpenRouterURL":    "OPENROUTER_URL",
	"GeminiAPIKey":     "GEMINI_API_KEY",
	"OTelExporter":     "OTEL_EXPORTER",
}

// Load reads configuration from environment variables with sensible defaults.
// A missing provider credential is a ConfigurationError.
func Load() (Config, error) {
	// Best-effort load of local env files for dev convenience.
	LoadEnvFiles()

	provider := normalizeProvider(getEnv("LLM_PROVIDER", ProviderOpenRouter))
	model := getEnv("LLM_MODEL", "")
	if model == "" {
		model = defaultOpenRouterModel
		if provider == ProviderGemini {
			model = defaultGeminiModel
		}
	}

	cfg := Config{
		Port:              strings.TrimPrefix(getEnv("PORT", "5000"), ":"),
		Env:               normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin:   splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "https://unrise-ai.vercel.app")),
		LLMProvider:       provider,
		LLMModel:          model,
		LLMTimeout:        getDuration("LLM_TIMEOUT_SECONDS", 60*time.Second),
		OpenRouterAPIKey:  strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY")),
		OpenRouterURL:     getEnv("OPENROUTER_URL", "https://openrouter.ai/api/v1/chat/completions"),
		OpenRouterReferer: getEnv("OPENROUTER_REFERER", "https://unrise-ai.vercel.app"),
		OpenRouterTitle:   getEnv("OPENROUTER_TITLE", "UniRise"),
		GeminiAPIKey:      strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		RedisURL:          getEnv("REDIS_URL", ""),
		CacheTTL:          getDuration("CACHE_TTL", 24*time.Hour),
		OTelEnabled:       getBool("OTEL_ENABLED"),
		OTelExporter:      strings.ToLower(getEnv("OTEL_EXPORTER", "")),
		PDFFontPath:       getEnv("PDF_FONT_PATH", ""),
		ShutdownTimeout:   getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks struct constraints and returns a ConfigurationError naming
// the offending environment variables.
func (c Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ConfigurationError{Err: err}
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := fe.StructField()
		if env, ok := envNames[name]; ok {
			name = env
		}
		fields = append(fields, name)
	}
	return &ConfigurationError{Fields: fields, Err: err}
}

// IsDevLike reports whether the environment tolerates degraded dependencies.
func (c Config) IsDevLike() bool {
	switch c.Env {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

// getDuration accepts Go durations ("90s") or bare seconds ("90").
func getDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	return def
}

func getBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "gemini", "google":
		return ProviderGemini
	default:
		return ProviderOpenRouter
	}
}
