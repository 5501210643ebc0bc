// Package pipeline runs one document through text-or-image extraction, the
// model call and reply parsing.
package pipeline

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/invoice-parser/constants"
	"github.com/joseph-ayodele/invoice-parser/internal/common"
	"github.com/joseph-ayodele/invoice-parser/internal/document"
	"github.com/joseph-ayodele/invoice-parser/internal/extract"
	"github.com/joseph-ayodele/invoice-parser/internal/invoice"
	"github.com/joseph-ayodele/invoice-parser/internal/llm"
)

// Config holds the mode threshold and model budget.
type Config struct {
	TextThreshold int    // text-mode when the text has more runes than this
	MaxTokens     int    // reply budget
	Model         string // pinned model id
}

type Orchestrator struct {
	Logger   *slog.Logger
	Cfg      Config
	Text     extract.TextExtractor
	Renderer extract.PageRenderer
	Client   llm.Client
}

func NewOrchestrator(
	logger *slog.Logger,
	cfg Config,
	text extract.TextExtractor,
	renderer extract.PageRenderer,
	client llm.Client,
) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TextThreshold <= 0 {
		cfg.TextThreshold = constants.TextModeThreshold
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = constants.DefaultMaxTokens
	}
	if cfg.Model == "" {
		cfg.Model = constants.DefaultModel
	}
	return &Orchestrator{Logger: logger, Cfg: cfg, Text: text, Renderer: renderer, Client: client}
}

// Extract returns exactly one of a record or an *common.AppError:
// UNREADABLE_DOCUMENT when neither path yields input (the model is not
// called), MODEL_CALL_FAILED on any client failure (not retried), and
// MALFORMED_REPLY when the reply does not decode.
func (o *Orchestrator) Extract(ctx context.Context, doc *document.Document) (*invoice.Record, error) {
	rid := common.RequestIDFromContext(ctx)
	if rid == "" {
		rid = uuid.New().String()
		ctx = common.WithRequestID(ctx, rid)
	}
	log := o.Logger.With("req_id", rid, "doc", doc.Name)
	start := time.Now()

	req, ok := o.buildRequest(ctx, doc, log)
	if !ok {
		log.Warn("extract.unreadable", "elapsed_ms", time.Since(start).Milliseconds())
		return nil, common.UnreadableDocument()
	}

	callStart := time.Now()
	reply, err := o.Client.Complete(ctx, llm.CompletionRequest{
		Model:     o.Cfg.Model,
		MaxTokens: o.Cfg.MaxTokens,
		Messages:  req.Messages(),
	})
	if err != nil {
		log.Error("extract.model_call_failed", "error", err, "elapsed_ms", time.Since(callStart).Milliseconds())
		return nil, common.ModelCallFailed(err)
	}
	log.Info("extract.model_call_ok", "reply_bytes", len(reply), "elapsed_ms", time.Since(callStart).Milliseconds())

	rec, err := invoice.ParseReply(reply, log)
	if err != nil {
		log.Warn("extract.malformed_reply", "error", err)
		return nil, err
	}

	log.Info("extract.ok",
		"mode", req.Payload.Mode(),
		"invoice_number", invoice.Str(rec.InvoiceNumber),
		"line_items", len(rec.LineItems),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rec, nil
}

// buildRequest prefers the text layer and only renders when it is too short.
func (o *Orchestrator) buildRequest(ctx context.Context, doc *document.Document, log *slog.Logger) (ExtractionRequest, bool) {
	text := o.Text.ExtractText(ctx, doc)
	n := utf8.RuneCountInString(text)
	log.Info("extract.text_layer", "chars", n, "threshold", o.Cfg.TextThreshold)
	if n > o.Cfg.TextThreshold {
		return NewTextRequest(text), true
	}

	page, ok := o.Renderer.RenderFirstPage(ctx, doc)
	if !ok || page == nil {
		return ExtractionRequest{}, false
	}
	log.Info("extract.image_mode", "width", page.Width, "height", page.Height, "b64_bytes", len(page.Data))
	return NewImageRequest(page), true
}
