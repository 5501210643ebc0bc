package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/invoice-parser/constants"
	"github.com/joseph-ayodele/invoice-parser/internal/app"
	"github.com/joseph-ayodele/invoice-parser/internal/document"
	"github.com/joseph-ayodele/invoice-parser/internal/export"
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
		format  = flag.String("format", "json", "output format: json | summary | xlsx")
		out     = flag.String("out", "", "output file (default stdout; xlsx defaults to invoice_<number>.xlsx)")
		timeout = flag.Duration("timeout", 3*time.Minute, "overall timeout")
	)
	flag.Usage = func() {
		printError("usage: parse-invoice [flags] <invoice.pdf>\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	switch *format {
	case "json", "summary", "xlsx":
	default:
		printError("Error: unknown -format %q\n", *format)
		os.Exit(2)
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(2)
	}
	// Logs go to stderr so stdout stays clean for the result.
	logger := app.NewLogger(os.Stderr, cfg.LogLevel)

	orch, err := app.NewOrchestrator(cfg, logger)
	if err != nil {
		logger.Error("failed to build pipeline", "error", err)
		os.Exit(1)
	}

	doc, err := document.Open(flag.Arg(0))
	if err != nil {
		logger.Error("open document", "error", err)
		os.Exit(1)
	}
	if !constants.IsAllowedExt(filepath.Ext(doc.Name)) {
		printError("Error: %s is not a .pdf file\n", flag.Arg(0))
		os.Exit(2)
	}
	if !doc.LooksLikePDF() {
		logger.Warn("document has no PDF header", "path", flag.Arg(0))
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	rec, err := orch.Extract(ctx, doc)
	outcome := invoice.NewOutcome(rec, err)
	if outcome.Err != nil {
		// The error envelope is the result; print it as JSON whatever the format.
		writeJSON(os.Stdout, outcome)
		os.Exit(1)
	}

	switch *format {
	case "summary":
		w, closeFn := openOut(*out)
		defer closeFn()
		if err := export.Summary(w, rec); err != nil {
			logger.Error("write summary", "error", err)
			os.Exit(1)
		}
	case "xlsx":
		b, err := export.NewService(logger).InvoiceXLSX([]export.Entry{{Source: doc.Name, Record: rec}})
		if err != nil {
			logger.Error("export xlsx", "error", err)
			os.Exit(1)
		}
		path := *out
		if path == "" {
			path = export.FileName(rec, "xlsx")
		}
		if err := os.WriteFile(path, b, 0o644); err != nil {
			logger.Error("write xlsx", "path", path, "error", err)
			os.Exit(1)
		}
		fmt.Println(path)
	default:
		w, closeFn := openOut(*out)
		defer closeFn()
		writeJSON(w, outcome)
	}
}

func openOut(path string) (io.Writer, func()) {
	if path == "" {
		return os.Stdout, func() {}
	}
	f, err := os.Create(path)
	if err != nil {
		printError("Error: create %s: %v\n", path, err)
		os.Exit(1)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			printError("Error: close %s: %v\n", path, err)
		}
	}
}

func writeJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		printError("Error: encode: %v\n", err)
	}
}
