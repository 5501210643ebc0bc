// Package ocr wraps the poppler command line tools used for PDF text
// extraction and first-page rasterization.
package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	DPI       int    // rasterization DPI, default 150
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	return NewExtractorWithRunner(cfg, execRunner{}, logger)
}

// NewExtractorWithRunner is NewExtractor with an injected command runner.
func NewExtractorWithRunner(cfg Config, runner Runner, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 150
	}
	return &Extractor{cfg: cfg, runner: runner, logger: logger}
}

// PDFToText runs pdftotext over the whole document.
func (e *Extractor) PDFToText(ctx context.Context, pdf []byte) (text string, pages int, err error) {
	start := time.Now()
	_, in, cleanup, err := e.stage(pdf)
	if err != nil {
		return "", 0, err
	}
	defer cleanup()

	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, e.logger, "-layout", "-enc", "UTF-8", "-eol", "unix", in, "-")
	if err != nil {
		return "", 0, fmt.Errorf("pdftotext: %w: %s", err, truncate(string(errb), 512))
	}
	text = string(out)
	// A form-feed \f is used as page separator by default
	pages = strings.Count(text, "\f")
	if pages == 0 && strings.TrimSpace(text) != "" {
		pages = 1
	}
	e.logger.Debug("pdftotext ok", "pages", pages, "bytes", len(text), "elapsed_ms", time.Since(start).Milliseconds())
	return strings.ReplaceAll(text, "\f", "\n"), pages, nil
}

// RenderFirstPage rasterizes page one to PNG bytes.
func (e *Extractor) RenderFirstPage(ctx context.Context, pdf []byte) ([]byte, error) {
	start := time.Now()
	dir, in, cleanup, err := e.stage(pdf)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	prefix := filepath.Join(dir, "page")
	// pdftoppm -f 1 -l 1 -singlefile -r <dpi> -png <in.pdf> <tmp/page>  -> tmp/page.png
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, e.logger,
		"-f", "1", "-l", "1", "-singlefile",
		"-r", fmt.Sprintf("%d", e.cfg.DPI),
		"-png", in, prefix)
	if err != nil {
		return nil, fmt.Errorf("pdftoppm: %w: %s", err, truncate(string(errb), 512))
	}

	png, err := os.ReadFile(prefix + ".png")
	if err != nil {
		return nil, fmt.Errorf("pdftoppm produced no image: %w", err)
	}
	e.logger.Debug("pdftoppm ok", "bytes", len(png), "dpi", e.cfg.DPI, "elapsed_ms", time.Since(start).Milliseconds())
	return png, nil
}

// stage writes the document to a private temp dir for the CLI tools.
func (e *Extractor) stage(pdf []byte) (dir, path string, cleanup func(), err error) {
	dir, err = os.MkdirTemp("", "inv-pp-*")
	if err != nil {
		return "", "", nil, err
	}
	cleanup = func() {
		if err := os.RemoveAll(dir); err != nil {
			e.logger.Warn("failed to remove temp dir", "dir", dir, "error", err)
		}
	}
	path = filepath.Join(dir, "in.pdf")
	if err := os.WriteFile(path, pdf, 0o600); err != nil {
		cleanup()
		return "", "", nil, err
	}
	return dir, path, cleanup, nil
}
