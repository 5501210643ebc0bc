package constants

// Mode is the payload kind sent to the model for one document.
type Mode string

const (
	ModeText  Mode = "TEXT"  // embedded text layer was long enough
	ModeImage Mode = "IMAGE" // first page rendered and attached
)

const (
	// TextModeThreshold is the minimum text length (exclusive) for text-mode.
	TextModeThreshold = 100

	// DefaultMaxTokens bounds the model reply length.
	DefaultMaxTokens = 2000

	// DefaultModel is the pinned model used when LLM_MODEL is unset.
	DefaultModel = "claude-sonnet-4-20250514"

	// DefaultRenderDPI is the rasterization resolution for scanned pages.
	DefaultRenderDPI = 150

	// DefaultMaxImageWidth caps the rendered page width in pixels.
	DefaultMaxImageWidth = 1600
)

// Error codes carried by common.AppError.
const (
	CodeUnreadableDocument = "UNREADABLE_DOCUMENT"
	CodeModelCallFailed    = "MODEL_CALL_FAILED"
	CodeMalformedReply     = "MALFORMED_REPLY"
	CodeConfig             = "CONFIG_ERROR"
	CodeInternal           = "INTERNAL_ERROR"
)
