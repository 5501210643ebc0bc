package extract

import (
	"bytes"
	"context"
	"encoding/base64"
	"log/slog"
	"time"

	"github.com/disintegration/imaging"

	"github.com/joseph-ayodele/invoice-parser/constants"
	"github.com/joseph-ayodele/invoice-parser/internal/document"
)

// PopplerRenderer rasterizes page one with pdftoppm and shrinks it to fit
// the model's image budget.
type PopplerRenderer struct {
	raster   Rasterizer
	maxWidth int
	logger   *slog.Logger
}

func NewPopplerRenderer(raster Rasterizer, maxWidth int, logger *slog.Logger) *PopplerRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &PopplerRenderer{raster: raster, maxWidth: maxWidth, logger: logger}
}

func (r *PopplerRenderer) RenderFirstPage(ctx context.Context, doc *document.Document) (*RenderedPage, bool) {
	start := time.Now()

	// Bytes leaves the document cursor rewound for later readers.
	b, err := doc.Bytes()
	if err != nil {
		r.logger.Warn("render.read_error", "doc", doc.Name, "error", err)
		return nil, false
	}

	raw, err := r.raster.RenderFirstPage(ctx, b)
	if err != nil {
		r.logger.Warn("render.rasterize_error", "doc", doc.Name, "error", err)
		return nil, false
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		r.logger.Warn("render.decode_error", "doc", doc.Name, "error", err)
		return nil, false
	}
	if r.maxWidth > 0 && img.Bounds().Dx() > r.maxWidth {
		img = imaging.Resize(img, r.maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		r.logger.Warn("render.encode_error", "doc", doc.Name, "error", err)
		return nil, false
	}

	page := &RenderedPage{
		MediaType: constants.MediaTypePNG,
		Data:      base64.StdEncoding.EncodeToString(buf.Bytes()),
		Width:     img.Bounds().Dx(),
		Height:    img.Bounds().Dy(),
	}
	r.logger.Debug("render.ok",
		"doc", doc.Name,
		"width", page.Width,
		"height", page.Height,
		"png_bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return page, true
}
