package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"ENV", "LLM_PROVIDER", "LLM_MODEL", "LLM_API_KEY", "OPENAI_API_KEY", "LLM_TIMEOUT_SECONDS", "LLM_MAX_INPUT_TOKENS", "RATE_LIMIT_RPS", "OBJECT_STORE"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Env != "dev" {
		t.Fatalf("expected dev env, got %q", cfg.Env)
	}
	if cfg.LLMProvider != "none" {
		t.Fatalf("expected none provider, got %q", cfg.LLMProvider)
	}
	if cfg.LLMTimeout != 120*time.Second {
		t.Fatalf("expected 120s timeout, got %s", cfg.LLMTimeout)
	}
	if cfg.LLMMaxInputTokens != 24000 {
		t.Fatalf("expected 24000 max tokens, got %d", cfg.LLMMaxInputTokens)
	}
	if cfg.RateLimitRPS != 2 || cfg.RateLimitBurst != 5 {
		t.Fatalf("unexpected rate limit defaults %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.ObjectStoreType != "local" {
		t.Fatalf("expected local store, got %q", cfg.ObjectStoreType)
	}
}

func TestLoadReadsDotEnvWithoutOverriding(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	content := "LLM_PROVIDER=claude\nANTHROPIC_API_KEY=from-file\nPORT=9999\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("PORT", "7000")
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("LLM_MODEL", "")
	// Unset so godotenv may populate them; t.Setenv restores on cleanup.
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	os.Unsetenv("LLM_PROVIDER")
	os.Unsetenv("ANTHROPIC_API_KEY")

	cfg := Load()
	if cfg.Port != "7000" {
		t.Fatalf("expected process env to win, got %q", cfg.Port)
	}
	if cfg.LLMProvider != "anthropic" {
		t.Fatalf("expected anthropic provider, got %q", cfg.LLMProvider)
	}
	if cfg.LLMAPIKey != "from-file" {
		t.Fatalf("expected api key fallback from .env, got %q", cfg.LLMAPIKey)
	}
	if cfg.LLMModel == "" {
		t.Fatalf("expected default model for anthropic")
	}
}

func TestNormalizeProvider(t *testing.T) {
	tests := map[string]string{
		"OpenAI":  "openai",
		"google":  "gemini",
		"claude":  "anthropic",
		"":        "none",
		"unknown": "none",
	}
	for in, want := range tests {
		if got := normalizeProvider(in, "dev"); got != want {
			t.Fatalf("normalizeProvider(%q) = %q, want %q", in, got, want)
		}
	}
}
