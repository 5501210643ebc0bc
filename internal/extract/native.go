package extract

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"rsc.io/pdf"

	"github.com/joseph-ayodele/invoice-parser/internal/document"
)

// NativeExtractor reads the text layer in-process with rsc.io/pdf.
type NativeExtractor struct {
	logger *slog.Logger
}

func NewNativeExtractor(logger *slog.Logger) *NativeExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &NativeExtractor{logger: logger}
}

func (n *NativeExtractor) ExtractText(_ context.Context, doc *document.Document) string {
	b, err := doc.Bytes()
	if err != nil {
		n.logger.Warn("extract.native.read_error", "doc", doc.Name, "error", err)
		return ""
	}
	text, pages, err := readTextLayer(b)
	if err != nil {
		n.logger.Warn("extract.native.parse_error", "doc", doc.Name, "error", err)
		return ""
	}
	n.logger.Debug("extract.native.ok", "doc", doc.Name, "pages", pages, "text_len", len(text))
	return text
}

// readTextLayer converts parser panics into errors; rsc.io/pdf panics on
// many malformed inputs.
func readTextLayer(b []byte) (text string, pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, pages, err = "", 0, fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return "", 0, err
	}

	var sb strings.Builder
	pages = r.NumPage()
	for i := 1; i <= pages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		if t := pageText(p.Content().Text); t != "" {
			sb.WriteString(t)
			sb.WriteString("\n")
		}
	}
	return strings.TrimSpace(sb.String()), pages, nil
}

// pageText joins positioned glyph runs: a baseline change starts a new line,
// a horizontal gap inserts a space.
func pageText(runs []pdf.Text) string {
	var sb strings.Builder
	for i, t := range runs {
		if i > 0 {
			prev := runs[i-1]
			switch {
			case math.Abs(t.Y-prev.Y) > math.Max(prev.FontSize*0.5, 1):
				sb.WriteByte('\n')
			case t.X-(prev.X+prev.W) > prev.FontSize*0.15 && !strings.HasSuffix(prev.S, " ") && !strings.HasPrefix(t.S, " "):
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(t.S)
	}
	return strings.TrimSpace(sb.String())
}
