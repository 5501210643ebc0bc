package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/joseph-ayodele/invoice-parser/internal/document"
)

type Usecase struct {
	Extractor Extractor
	Logger    *slog.Logger

	mu   sync.Mutex
	seen map[string]FileResult // by content hash
}

func NewUsecase(x Extractor, logger *slog.Logger) *Usecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &Usecase{Extractor: x, Logger: logger, seen: map[string]FileResult{}}
}

// IngestPath parses one file. Identical content already parsed successfully by
// this Usecase reuses the earlier record; failures are never remembered so a
// later call retries the model.
func (u *Usecase) IngestPath(ctx context.Context, path string) FileResult {
	start := time.Now()
	res := FileResult{Path: path}

	abs, err := filepath.Abs(path)
	if err != nil {
		res.Err = fmt.Errorf("abs path: %w", err)
		return res
	}
	if !AllowedExt(filepath.Ext(abs)) {
		res.Err = fmt.Errorf("unsupported or missing extension: %q", filepath.Ext(abs))
		return res
	}

	b, err := os.ReadFile(abs)
	if err != nil {
		res.Err = fmt.Errorf("open: %w", err)
		return res
	}
	sum := sha256.Sum256(b)
	res.HashHex = hex.EncodeToString(sum[:])

	u.mu.Lock()
	prev, dup := u.seen[res.HashHex]
	u.mu.Unlock()
	if dup {
		u.Logger.Info("ingest.dedup", "path", path, "first_seen", prev.Path)
		prev.Path, prev.Deduplicated, prev.Elapsed = path, true, time.Since(start)
		return prev
	}

	doc := document.FromBytes(filepath.Base(abs), b)
	res.Record, res.Err = u.Extractor.Extract(ctx, doc)
	res.Elapsed = time.Since(start)

	if res.Err != nil {
		u.Logger.Warn("ingest.file.failed", "path", path, "error", res.Err, "elapsed_ms", res.Elapsed.Milliseconds())
		return res
	}

	u.mu.Lock()
	u.seen[res.HashHex] = res
	u.mu.Unlock()
	u.Logger.Info("ingest.file.ok", "path", path, "elapsed_ms", res.Elapsed.Milliseconds())
	return res
}
