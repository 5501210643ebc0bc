// Package app wires configuration into a ready extraction pipeline for the
// commands.
package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/invoice-parser/internal/common"
	"github.com/joseph-ayodele/invoice-parser/internal/extract"
	"github.com/joseph-ayodele/invoice-parser/internal/llm"
	"github.com/joseph-ayodele/invoice-parser/internal/llm/provider"
	"github.com/joseph-ayodele/invoice-parser/internal/ocr"
	"github.com/joseph-ayodele/invoice-parser/internal/pipeline"
)

// LoadConfig reads .env files when present, then the environment, and
// validates the result.
func LoadConfig(envFiles ...string) (*common.Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// Missing files are fine; real env vars always win.
		_ = godotenv.Load(f)
	}
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewLogger returns a JSON slog logger at level and installs it as default.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// NewOrchestrator builds the pipeline with the configured model client.
func NewOrchestrator(cfg *common.Config, logger *slog.Logger) (*pipeline.Orchestrator, error) {
	client, err := provider.New(cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("llm client: %w", err)
	}
	return NewOrchestratorWithClient(cfg, client, logger), nil
}

// NewOrchestratorWithClient is NewOrchestrator with an explicit client.
func NewOrchestratorWithClient(cfg *common.Config, client llm.Client, logger *slog.Logger) *pipeline.Orchestrator {
	tools := ocr.NewExtractor(ocr.Config{
		Pdftotext: cfg.OCR.Pdftotext,
		Pdftoppm:  cfg.OCR.Pdftoppm,
		DPI:       cfg.OCR.DPI,
	}, logger)

	return pipeline.NewOrchestrator(logger,
		pipeline.Config{
			TextThreshold: cfg.Extraction.TextThreshold,
			MaxTokens:     cfg.Extraction.MaxTokens,
			Model:         cfg.LLM.Model,
		},
		extract.NewTextExtractor(cfg.Extraction.TextExtractor, cfg.Extraction.TextThreshold, tools, logger),
		extract.NewPopplerRenderer(tools, cfg.OCR.MaxImageWidth, logger),
		client,
	)
}
