// Package ingest feeds PDFs from the local filesystem through the extraction
// pipeline, either as a one-shot directory walk or by watching for new files.
package ingest

import (
	"context"
	"time"

	"github.com/joseph-ayodele/invoice-parser/internal/document"
	"github.com/joseph-ayodele/invoice-parser/internal/invoice"
)

// Extractor is satisfied by *pipeline.Orchestrator.
type Extractor interface {
	Extract(ctx context.Context, doc *document.Document) (*invoice.Record, error)
}

// FileResult is the per-file outcome. Exactly one of Record and Err is set.
type FileResult struct {
	Path         string
	HashHex      string
	Deduplicated bool // same content already processed in this run
	Record       *invoice.Record
	Err          error
	Elapsed      time.Duration
}

// DirStats summarizes a directory run.
type DirStats struct {
	Scanned      uint32
	Matched      uint32
	Succeeded    uint32
	Deduplicated uint32
	Failed       uint32
}
