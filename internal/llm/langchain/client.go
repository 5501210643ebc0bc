// Package langchain adapts langchaingo models (ollama, mistral) to llm.Client.
package langchain

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/mistral"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/joseph-ayodele/invoice-parser/internal/common"
	"github.com/joseph-ayodele/invoice-parser/internal/llm"
)

type Client struct {
	name  string
	model llms.Model
	// imageAsURL sends images as data URLs instead of raw bytes.
	imageAsURL bool
	log        *slog.Logger
}

// New wraps an already constructed langchaingo model.
func New(name string, model llms.Model, imageAsURL bool, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{name: name, model: model, imageAsURL: imageAsURL, log: logger}
}

// NewOllama connects to an Ollama server; an empty serverURL uses the local default.
func NewOllama(model, serverURL string, logger *slog.Logger) (*Client, error) {
	opts := []ollama.Option{ollama.WithModel(model)}
	if serverURL == "" {
		serverURL = "http://127.0.0.1:11434"
	}
	opts = append(opts, ollama.WithServerURL(serverURL))
	m, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}
	return New("ollama", m, false, logger), nil
}

func NewMistral(model, apiKey string, logger *slog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("mistral API key is not set")
	}
	m, err := mistral.New(
		mistral.WithModel(model),
		mistral.WithAPIKey(apiKey),
	)
	if err != nil {
		return nil, fmt.Errorf("create mistral client: %w", err)
	}
	return New("mistral", m, true, logger), nil
}

// Complete implements llm.Client.
func (c *Client) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	rid := common.RequestIDFromContext(ctx)
	start := time.Now()

	msgs, err := c.toMessageContent(req.Messages)
	if err != nil {
		return "", err
	}

	var opts []llms.CallOption
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}
	if req.Model != "" {
		opts = append(opts, llms.WithModel(req.Model))
	}

	c.log.Info("llm.langchain.start", "req_id", rid, "provider", c.name, "model", req.Model, "messages", len(msgs))

	resp, err := c.model.GenerateContent(ctx, msgs, opts...)
	if err != nil {
		c.log.Error("llm.langchain.error",
			"req_id", rid, "provider", c.name, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("%s: %w", c.name, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices in response", c.name)
	}

	c.log.Info("llm.langchain.ok",
		"req_id", rid, "provider", c.name,
		"stop_reason", resp.Choices[0].StopReason,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return resp.Choices[0].Content, nil
}

func (c *Client) toMessageContent(in []llm.Message) ([]llms.MessageContent, error) {
	out := make([]llms.MessageContent, 0, len(in))
	for _, m := range in {
		mc := llms.MessageContent{Role: chatRole(m.Role)}
		for _, p := range m.Parts {
			switch p.Type {
			case llm.PartImage:
				if c.imageAsURL {
					mc.Parts = append(mc.Parts, llms.ImageURLPart("data:"+p.MediaType+";base64,"+p.Data))
					continue
				}
				raw, err := base64.StdEncoding.DecodeString(p.Data)
				if err != nil {
					return nil, fmt.Errorf("decode image part: %w", err)
				}
				mc.Parts = append(mc.Parts, llms.BinaryPart(p.MediaType, raw))
			default:
				mc.Parts = append(mc.Parts, llms.TextPart(p.Text))
			}
		}
		out = append(out, mc)
	}
	return out, nil
}

func chatRole(r llm.Role) llms.ChatMessageType {
	if r == llm.RoleAssistant {
		return llms.ChatMessageTypeAI
	}
	return llms.ChatMessageTypeHuman
}
