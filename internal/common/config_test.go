package common

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/joseph-ayodele/invoice-parser/constants"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("TEXT_THRESHOLD", "")
	t.Setenv("TEXT_EXTRACTOR", "")
	t.Setenv("LLM_MAX_TOKENS", "")

	cfg := LoadConfig()
	if cfg.LLM.Provider != "anthropic" || cfg.LLM.Model != constants.DefaultModel || cfg.LLM.APIKey != "sk-ant" {
		t.Fatalf("llm config = %+v", cfg.LLM)
	}
	if cfg.Extraction.TextThreshold != 100 || cfg.Extraction.MaxTokens != 2000 || cfg.Extraction.TextExtractor != "auto" {
		t.Fatalf("extraction config = %+v", cfg.Extraction)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoadConfigProviderSpecific(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("OPENAI_API_KEY", "sk-oa")
	t.Setenv("LLM_TIMEOUT", "90s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := LoadConfig()
	if cfg.LLM.Provider != "openai" || cfg.LLM.Model != "gpt-4o-mini" || cfg.LLM.APIKey != "sk-oa" {
		t.Fatalf("llm config = %+v", cfg.LLM)
	}
	if cfg.LLM.Timeout != 90*time.Second || cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("timeout/level = %v/%v", cfg.LLM.Timeout, cfg.LogLevel)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("TEXT_EXTRACTOR", "magic")
	t.Setenv("LLM_MAX_TOKENS", "0")

	err := LoadConfig().Validate()
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	for _, want := range []string{"ANTHROPIC_API_KEY", "TEXT_EXTRACTOR", "LLM_MAX_TOKENS"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %s: %v", want, err)
		}
	}
}

func TestValidateOllamaNeedsNoKey(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "ollama")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("TEXT_EXTRACTOR", "")
	t.Setenv("LLM_MAX_TOKENS", "")
	cfg := LoadConfig()
	if cfg.LLM.Model != "llama3.2-vision" {
		t.Fatalf("model = %q", cfg.LLM.Model)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}
