package langchain

import (
	"context"
	"errors"
	"testing"

	"github.com/tmc/langchaingo/llms"

	"github.com/joseph-ayodele/invoice-parser/internal/llm"
)

type fakeModel struct {
	got  []llms.MessageContent
	opts llms.CallOptions
	resp *llms.ContentResponse
	err  error
}

func (f *fakeModel) GenerateContent(_ context.Context, msgs []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.got = msgs
	for _, o := range options {
		o(&f.opts)
	}
	return f.resp, f.err
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func imageRequest() llm.CompletionRequest {
	return llm.CompletionRequest{
		Model:     "llava",
		MaxTokens: 2000,
		Messages: []llm.Message{{Role: llm.RoleUser, Parts: []llm.Part{
			llm.TextPart("prompt"),
			llm.ImagePart("image/png", "aGk="),
		}}},
	}
}

func TestCompleteBinaryImage(t *testing.T) {
	fm := &fakeModel{resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: `{"a":1}`}}}}
	c := New("ollama", fm, false, nil)

	out, err := c.Complete(context.Background(), imageRequest())
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != `{"a":1}` {
		t.Fatalf("out = %q", out)
	}
	if fm.opts.MaxTokens != 2000 || fm.opts.Model != "llava" {
		t.Fatalf("call options not applied: %+v", fm.opts)
	}
	if len(fm.got) != 1 || fm.got[0].Role != llms.ChatMessageTypeHuman {
		t.Fatalf("unexpected messages: %+v", fm.got)
	}
	bin, ok := fm.got[0].Parts[1].(llms.BinaryContent)
	if !ok {
		t.Fatalf("expected BinaryContent, got %T", fm.got[0].Parts[1])
	}
	if bin.MIMEType != "image/png" || string(bin.Data) != "hi" {
		t.Fatalf("bad binary part: %+v", bin)
	}
}

func TestCompleteImageURL(t *testing.T) {
	fm := &fakeModel{resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: "ok"}}}}
	c := New("mistral", fm, true, nil)

	if _, err := c.Complete(context.Background(), imageRequest()); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	img, ok := fm.got[0].Parts[1].(llms.ImageURLContent)
	if !ok {
		t.Fatalf("expected ImageURLContent, got %T", fm.got[0].Parts[1])
	}
	if img.URL != "data:image/png;base64,aGk=" {
		t.Fatalf("url = %q", img.URL)
	}
}

func TestCompleteErrors(t *testing.T) {
	c := New("ollama", &fakeModel{err: errors.New("connection refused")}, false, nil)
	if _, err := c.Complete(context.Background(), imageRequest()); err == nil {
		t.Fatal("expected model error")
	}

	c = New("ollama", &fakeModel{resp: &llms.ContentResponse{}}, false, nil)
	if _, err := c.Complete(context.Background(), imageRequest()); err == nil {
		t.Fatal("expected error for empty choices")
	}

	req := imageRequest()
	req.Messages[0].Parts[1].Data = "not base64!"
	c = New("ollama", &fakeModel{}, false, nil)
	if _, err := c.Complete(context.Background(), req); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestNewMistralRequiresKey(t *testing.T) {
	if _, err := NewMistral("pixtral-12b-2409", "", nil); err == nil {
		t.Fatal("expected missing key error")
	}
}
