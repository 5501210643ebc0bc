package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joseph-ayodele/invoice-parser/internal/app"
	"github.com/joseph-ayodele/invoice-parser/internal/async"
	"github.com/joseph-ayodele/invoice-parser/internal/export"
	"github.com/joseph-ayodele/invoice-parser/internal/ingest"
	"github.com/joseph-ayodele/invoice-parser/internal/invoice"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir        = flag.String("dir", "", "directory to process invoices from (required)")
		out        = flag.String("out", "", "output XLSX file path (optional, defaults to parent directory)")
		jsonDir    = flag.String("json-dir", "", "where per-file JSON goes (default: next to each PDF)")
		skipHidden = flag.Bool("skip-hidden", true, "skip hidden files and directories")
		watch      = flag.Bool("watch", false, "keep running and parse PDFs as they appear")
		workers    = flag.Int("workers", 1, "parallel pipeline runs in -watch mode")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(filepath.Clean(*dir)), "invoices.xlsx")
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(2)
	}
	logger := app.NewLogger(os.Stdout, cfg.LogLevel)

	orch, err := app.NewOrchestrator(cfg, logger)
	if err != nil {
		logger.Error("failed to build pipeline", "error", err)
		os.Exit(1)
	}
	uc := ingest.NewUsecase(orch, logger)
	exporter := export.NewService(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *watch {
		runWatch(ctx, logger, uc, *dir, *jsonDir, *workers)
		return
	}

	start := time.Now()
	results, stats, err := uc.IngestDirectory(ctx, *dir, *skipHidden)
	if err != nil {
		logger.Error("batch walk failed", "error", err)
	}

	entries := make([]export.Entry, 0, len(results))
	for _, r := range results {
		if err := writeResultJSON(r, *jsonDir); err != nil {
			logger.Warn("write json failed", "path", r.Path, "error", err)
		}
		if r.Record != nil {
			entries = append(entries, export.Entry{Source: r.Path, Record: r.Record})
		}
		status := "ok"
		if r.Err != nil {
			status = "error: " + r.Err.Error()
		} else if r.Deduplicated {
			status = "ok (duplicate content)"
		}
		fmt.Printf("%-60s %6dms  %s\n", r.Path, r.Elapsed.Milliseconds(), status)
	}

	b, err := exporter.InvoiceXLSX(entries)
	if err != nil {
		logger.Error("export xlsx", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, b, 0o644); err != nil {
		logger.Error("write xlsx", "path", *out, "error", err)
		os.Exit(1)
	}

	fmt.Printf("\nscanned=%d matched=%d succeeded=%d deduplicated=%d failed=%d elapsed=%s\nworkbook: %s\n",
		stats.Scanned, stats.Matched, stats.Succeeded, stats.Deduplicated, stats.Failed,
		time.Since(start).Round(time.Millisecond), *out)
	if stats.Failed > 0 {
		os.Exit(1)
	}
}

// runWatch parses PDFs as they appear under dir until ctx is cancelled.
func runWatch(ctx context.Context, logger *slog.Logger, uc *ingest.Usecase, dir, jsonDir string, workers int) {
	events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       []string{dir},
		InitialScan: true,
		Debounce:    500 * time.Millisecond,
		Logger:      logger,
	})
	if err != nil {
		logger.Error("start watcher", "error", err)
		os.Exit(1)
	}

	var mu sync.Mutex // serializes stdout lines
	q := async.NewProcessorQueue(func(ctx context.Context, job async.Job) error {
		r := uc.IngestPath(ctx, job.Path)
		if err := writeResultJSON(r, jsonDir); err != nil {
			return err
		}
		mu.Lock()
		fmt.Printf("%s -> %s\n", job.Path, jsonPath(r.Path, jsonDir))
		mu.Unlock()
		return r.Err
	}, logger, async.WithWorkers(workers))

	logger.Info("watching for invoices", "dir", dir, "workers", workers)
loop:
	for {
		select {
		case p, ok := <-events:
			if !ok {
				break loop
			}
			if err := q.Enqueue(ctx, async.Job{Path: p}); err != nil {
				logger.Warn("enqueue failed", "path", p, "error", err)
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Warn("watcher error", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	q.Shutdown(shutdownCtx)
}

// writeResultJSON writes the outcome envelope next to the PDF (or into jsonDir).
func writeResultJSON(r ingest.FileResult, jsonDir string) error {
	if r.Record == nil && r.Err == nil {
		return nil
	}
	b, err := json.MarshalIndent(invoice.NewOutcome(r.Record, r.Err), "", "  ")
	if err != nil {
		return err
	}
	path := jsonPath(r.Path, jsonDir)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}

func jsonPath(pdfPath, jsonDir string) string {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath)) + ".json"
	if jsonDir == "" {
		return filepath.Join(filepath.Dir(pdfPath), base)
	}
	return filepath.Join(jsonDir, base)
}
