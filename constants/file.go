package constants

import "strings"

// AllowedExtensions holds the file extensions accepted for invoice parsing.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
}

// PDFMagic is the header every PDF starts with (possibly after a few junk bytes).
const PDFMagic = "%PDF-"

// MediaTypePNG is the declared media type of rendered pages sent to the model.
const MediaTypePNG = "image/png"

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsAllowedExt reports whether ext (with or without the dot) is accepted.
func IsAllowedExt(ext string) bool {
	_, ok := AllowedExtensions[NormalizeExt(ext)]
	return ok
}
