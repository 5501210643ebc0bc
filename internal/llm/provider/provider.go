// Package provider builds the configured llm.Client.
package provider

import (
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/invoice-parser/internal/common"
	"github.com/joseph-ayodele/invoice-parser/internal/llm"
	"github.com/joseph-ayodele/invoice-parser/internal/llm/anthropic"
	"github.com/joseph-ayodele/invoice-parser/internal/llm/langchain"
	"github.com/joseph-ayodele/invoice-parser/internal/llm/openai"
)

// New returns the client for cfg.Provider. Requests carry cfg.Model, so the
// per-client default model only applies when a request leaves it empty.
func New(cfg common.LLMConfig, logger *slog.Logger) (llm.Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("llm_provider", cfg.Provider)

	switch cfg.Provider {
	case "", "anthropic":
		return anthropic.NewClient(anthropic.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		}, logger), nil
	case "openai":
		return openai.NewClient(openai.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		}, logger), nil
	case "ollama":
		return langchain.NewOllama(cfg.Model, cfg.BaseURL, logger)
	case "mistral":
		return langchain.NewMistral(cfg.Model, cfg.APIKey, logger)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", cfg.Provider)
	}
}
