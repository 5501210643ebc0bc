package extract

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/joseph-ayodele/invoice-parser/internal/document"
	"github.com/joseph-ayodele/invoice-parser/internal/ocr"
)

// PopplerExtractor reads the text layer through pdftotext.
type PopplerExtractor struct {
	tool   TextLayerTool
	logger *slog.Logger
}

func NewPopplerExtractor(tool TextLayerTool, logger *slog.Logger) *PopplerExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PopplerExtractor{tool: tool, logger: logger}
}

func (p *PopplerExtractor) ExtractText(ctx context.Context, doc *document.Document) string {
	b, err := doc.Bytes()
	if err != nil {
		p.logger.Warn("extract.poppler.read_error", "doc", doc.Name, "error", err)
		return ""
	}
	text, pages, err := p.tool.PDFToText(ctx, b)
	if err != nil {
		p.logger.Warn("extract.poppler.error", "doc", doc.Name, "error", err)
		return ""
	}
	text = ocr.Normalize(text)
	p.logger.Debug("extract.poppler.ok", "doc", doc.Name, "pages", pages, "text_len", len(text))
	return text
}

// ChainExtractor tries each extractor in order and returns the first result
// longer than Enough runes; otherwise the longest result seen.
type ChainExtractor struct {
	Extractors []TextExtractor
	Enough     int
}

func (c ChainExtractor) ExtractText(ctx context.Context, doc *document.Document) string {
	var best string
	bestLen := 0
	for _, e := range c.Extractors {
		t := e.ExtractText(ctx, doc)
		n := utf8.RuneCountInString(t)
		if n > c.Enough {
			return t
		}
		if n > bestLen {
			best, bestLen = t, n
		}
	}
	return best
}
