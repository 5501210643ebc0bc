package llm

import "context"

// Role tags a message in the conversation sent to the model.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// PartType distinguishes text and image content parts.
type PartType string

const (
	PartText  PartType = "text"
	PartImage PartType = "image"
)

// Part is one typed content part. Image parts carry base64 data and the
// declared media type.
type Part struct {
	Type      PartType
	Text      string
	MediaType string
	Data      string
}

// TextPart and ImagePart build the two part kinds.
func TextPart(s string) Part { return Part{Type: PartText, Text: s} }

func ImagePart(mediaType, base64Data string) Part {
	return Part{Type: PartImage, MediaType: mediaType, Data: base64Data}
}

type Message struct {
	Role  Role
	Parts []Part
}

// CompletionRequest is the provider-neutral request shape.
type CompletionRequest struct {
	Model     string
	MaxTokens int
	Messages  []Message
}

// Client is the capability the extraction pipeline depends on: it returns
// the text of the first content part of the model's reply.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
