package extract

import (
	"log/slog"
)

// NewTextExtractor picks the text layer strategy by mode: "native",
// "poppler", or "auto" (native first, pdftotext when native recovers no more
// than threshold runes).
func NewTextExtractor(mode string, threshold int, tool TextLayerTool, logger *slog.Logger) TextExtractor {
	switch mode {
	case "native":
		return NewNativeExtractor(logger)
	case "poppler":
		return NewPopplerExtractor(tool, logger)
	default:
		return ChainExtractor{
			Extractors: []TextExtractor{NewNativeExtractor(logger), NewPopplerExtractor(tool, logger)},
			Enough:     threshold,
		}
	}
}
