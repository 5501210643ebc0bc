package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joseph-ayodele/invoice-parser/internal/common"
	"github.com/joseph-ayodele/invoice-parser/internal/llm"
)

type imageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type contentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *imageSource `json:"source,omitempty"`
}

type message struct {
	Role    string `json:"role"`
	Content any    `json:"content"` // string, or []contentBlock
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete implements llm.Client against POST /v1/messages.
func (c *Client) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	rid := common.RequestIDFromContext(ctx)
	start := time.Now()

	model := req.Model
	if model == "" {
		model = c.cfg.Model
	}
	body := messagesRequest{
		Model:     model,
		MaxTokens: req.MaxTokens,
		Messages:  toMessages(req.Messages),
	}

	c.log.Info("llm.anthropic.start",
		"req_id", rid,
		"model", model,
		"max_tokens", req.MaxTokens,
		"messages", len(body.Messages),
	)

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/v1/messages"
	raw, _, err := llm.SendJSON(ctx, c.httpClient, endpoint, body, map[string]string{
		"x-api-key":         c.cfg.APIKey,
		"anthropic-version": c.cfg.Version,
	}, c.log)
	if err != nil {
		var se *llm.StatusError
		if errors.As(err, &se) {
			var er errorResponse
			if json.Unmarshal(se.Body, &er) == nil && er.Error.Message != "" {
				err = fmt.Errorf("anthropic %s (status %d): %s", er.Error.Type, se.Status, er.Error.Message)
			}
		}
		c.log.Error("llm.anthropic.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", err
	}

	var mr messagesResponse
	if err := json.Unmarshal(raw, &mr); err != nil {
		c.log.Error("llm.anthropic.decode_error", "req_id", rid, "error", err, "raw_bytes", len(raw))
		return "", fmt.Errorf("decode anthropic response: %w", err)
	}
	if len(mr.Content) == 0 {
		return "", fmt.Errorf("no content in anthropic response")
	}

	c.log.Info("llm.anthropic.ok",
		"req_id", rid,
		"stop_reason", mr.StopReason,
		"input_tokens", mr.Usage.InputTokens,
		"output_tokens", mr.Usage.OutputTokens,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return mr.Content[0].Text, nil
}

// toMessages sends a lone text part as plain string content and anything
// else as a list of typed blocks.
func toMessages(in []llm.Message) []message {
	out := make([]message, 0, len(in))
	for _, m := range in {
		if len(m.Parts) == 1 && m.Parts[0].Type == llm.PartText {
			out = append(out, message{Role: string(m.Role), Content: m.Parts[0].Text})
			continue
		}
		blocks := make([]contentBlock, 0, len(m.Parts))
		for _, p := range m.Parts {
			switch p.Type {
			case llm.PartImage:
				blocks = append(blocks, contentBlock{
					Type:   "image",
					Source: &imageSource{Type: "base64", MediaType: p.MediaType, Data: p.Data},
				})
			default:
				blocks = append(blocks, contentBlock{Type: "text", Text: p.Text})
			}
		}
		out = append(out, message{Role: string(m.Role), Content: blocks})
	}
	return out
}
