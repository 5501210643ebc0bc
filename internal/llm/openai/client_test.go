package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/joseph-ayodele/invoice-parser/internal/llm"
)

func TestCompleteSendsVisionParts(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("auth = %q", r.Header.Get("Authorization"))
		}
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &got)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{}"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL}, nil)
	out, err := c.Complete(context.Background(), llm.CompletionRequest{
		Model:     "gpt-4o",
		MaxTokens: 2000,
		Messages: []llm.Message{{Role: llm.RoleUser, Parts: []llm.Part{
			llm.TextPart("read this"),
			llm.ImagePart("image/png", "QUJD"),
		}}},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != "{}" {
		t.Fatalf("out = %q", out)
	}
	if got["model"] != "gpt-4o" || got["max_tokens"] != float64(2000) {
		t.Fatalf("unexpected body: %v", got)
	}
	parts := got["messages"].([]any)[0].(map[string]any)["content"].([]any)
	img := parts[1].(map[string]any)
	if img["type"] != "image_url" {
		t.Fatalf("type = %v", img["type"])
	}
	if url := img["image_url"].(map[string]any)["url"]; url != "data:image/png;base64,QUJD" {
		t.Fatalf("url = %v", url)
	}
}

func TestCompleteNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, nil)
	_, err := c.Complete(context.Background(), llm.CompletionRequest{
		Messages: []llm.Message{{Role: llm.RoleUser, Parts: []llm.Part{llm.TextPart("x")}}},
	})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestCompleteStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"bad key"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, nil)
	_, err := c.Complete(context.Background(), llm.CompletionRequest{})
	var se *llm.StatusError
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.As(err, &se) || se.Status != http.StatusUnauthorized {
		t.Fatalf("expected StatusError 401, got %v", err)
	}
}
