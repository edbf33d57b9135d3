package config

import (
	"errors"
	"slices"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OPENROUTER_API_KEY", "GEMINI_API_KEY", "LLM_PROVIDER", "LLM_MODEL", "PORT",
		"ENV", "CORS_ALLOW_ORIGINS", "LLM_TIMEOUT_SECONDS", "CACHE_TTL", "OTEL_EXPORTER",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFailsWithoutProviderCredential(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error when OPENROUTER_API_KEY is missing")
	}
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %T", err)
	}
	if !slices.Contains(cfgErr.Fields, "OPENROUTER_API_KEY") {
		t.Fatalf("expected OPENROUTER_API_KEY in fields, got %v", cfgErr.Fields)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "5000" {
		t.Fatalf("expected default port 5000, got %q", cfg.Port)
	}
	if cfg.LLMProvider != ProviderOpenRouter {
		t.Fatalf("expected openrouter provider, got %q", cfg.LLMProvider)
	}
	if cfg.LLMModel != "anthropic/claude-3-haiku" {
		t.Fatalf("unexpected default model %q", cfg.LLMModel)
	}
	if len(cfg.CORSAllowOrigin) != 1 || cfg.CORSAllowOrigin[0] != "https://unrise-ai.vercel.app" {
		t.Fatalf("unexpected CORS origins %v", cfg.CORSAllowOrigin)
	}
	if cfg.LLMTimeout != 60*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.LLMTimeout)
	}
}

func TestLoadGeminiRequiresItsOwnKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("OPENROUTER_API_KEY", "sk-test")

	_, err := Load()
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if !slices.Contains(cfgErr.Fields, "GEMINI_API_KEY") {
		t.Fatalf("expected GEMINI_API_KEY in fields, got %v", cfgErr.Fields)
	}

	t.Setenv("GEMINI_API_KEY", "g-test")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLMModel != "gemini-1.5-flash" {
		t.Fatalf("unexpected gemini default model %q", cfg.LLMModel)
	}
}

func TestGetDuration(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Duration
	}{
		{name: "empty", raw: "", want: time.Minute},
		{name: "seconds", raw: "90", want: 90 * time.Second},
		{name: "duration", raw: "2h", want: 2 * time.Hour},
		{name: "garbage", raw: "soon", want: time.Minute},
		{name: "negative", raw: "-5", want: time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.raw)
			if got := getDuration("TEST_DURATION", time.Minute); got != tt.want {
				t.Fatalf("getDuration(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
