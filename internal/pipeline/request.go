package pipeline

import (
	"github.com/joseph-ayodele/invoice-parser/constants"
	"github.com/joseph-ayodele/invoice-parser/internal/extract"
	"github.com/joseph-ayodele/invoice-parser/internal/llm"
)

// Payload is what accompanies the prompt: the document text or a rendered
// page, never both. Only this package implements it.
type Payload interface {
	Mode() constants.Mode
	parts() []llm.Part
}

// TextPayload carries the extracted text layer; the prompt and text travel
// as one text part.
type TextPayload struct {
	Text string
}

func (TextPayload) Mode() constants.Mode { return constants.ModeText }

func (p TextPayload) parts() []llm.Part {
	return []llm.Part{llm.TextPart(llm.TextPrompt(p.Text))}
}

// ImagePayload carries the first page image after the prompt.
type ImagePayload struct {
	Page *extract.RenderedPage
}

func (ImagePayload) Mode() constants.Mode { return constants.ModeImage }

func (p ImagePayload) parts() []llm.Part {
	return []llm.Part{
		llm.TextPart(llm.ImagePrompt()),
		llm.ImagePart(p.Page.MediaType, p.Page.Data),
	}
}

// ExtractionRequest is the prompt plus exactly one payload.
type ExtractionRequest struct {
	Payload Payload
}

func NewTextRequest(text string) ExtractionRequest {
	return ExtractionRequest{Payload: TextPayload{Text: text}}
}

func NewImageRequest(page *extract.RenderedPage) ExtractionRequest {
	return ExtractionRequest{Payload: ImagePayload{Page: page}}
}

// Messages renders the request as a single user message.
func (r ExtractionRequest) Messages() []llm.Message {
	return []llm.Message{{Role: llm.RoleUser, Parts: r.Payload.parts()}}
}
