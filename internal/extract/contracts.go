// Package extract obtains model input from a document: its text layer, or
// failing that, an image of the first page.
package extract

import (
	"context"

	"github.com/joseph-ayodele/invoice-parser/internal/document"
)

// TextExtractor recovers the embedded text of a document. It never fails:
// any parse problem yields "" so the caller can fall back to rendering.
type TextExtractor interface {
	ExtractText(ctx context.Context, doc *document.Document) string
}

// PageRenderer rasterizes the first page. ok is false when rendering is not
// possible (corrupt file, no pages, tool missing).
type PageRenderer interface {
	RenderFirstPage(ctx context.Context, doc *document.Document) (page *RenderedPage, ok bool)
}

// RenderedPage is an encoded bitmap ready for transport.
type RenderedPage struct {
	MediaType string // always image/png
	Data      string // standard base64
	Width     int
	Height    int
}

// TextLayerTool and Rasterizer are satisfied by *ocr.Extractor.
type TextLayerTool interface {
	PDFToText(ctx context.Context, pdf []byte) (text string, pages int, err error)
}

type Rasterizer interface {
	RenderFirstPage(ctx context.Context, pdf []byte) ([]byte, error)
}
