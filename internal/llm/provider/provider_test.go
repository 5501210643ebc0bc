package provider

import (
	"testing"
	"time"

	"github.com/joseph-ayodele/invoice-parser/internal/common"
	"github.com/joseph-ayodele/invoice-parser/internal/llm/anthropic"
	"github.com/joseph-ayodele/invoice-parser/internal/llm/langchain"
	"github.com/joseph-ayodele/invoice-parser/internal/llm/openai"
)

func TestNew(t *testing.T) {
	cases := []struct {
		provider string
		check    func(t *testing.T, v any)
	}{
		{"anthropic", func(t *testing.T, v any) {
			if _, ok := v.(*anthropic.Client); !ok {
				t.Fatalf("got %T", v)
			}
		}},
		{"", func(t *testing.T, v any) {
			if _, ok := v.(*anthropic.Client); !ok {
				t.Fatalf("got %T", v)
			}
		}},
		{"openai", func(t *testing.T, v any) {
			if _, ok := v.(*openai.Client); !ok {
				t.Fatalf("got %T", v)
			}
		}},
		{"ollama", func(t *testing.T, v any) {
			if _, ok := v.(*langchain.Client); !ok {
				t.Fatalf("got %T", v)
			}
		}},
		{"mistral", func(t *testing.T, v any) {
			if _, ok := v.(*langchain.Client); !ok {
				t.Fatalf("got %T", v)
			}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.provider, func(t *testing.T) {
			c, err := New(common.LLMConfig{
				Provider: tc.provider,
				Model:    "m",
				APIKey:   "k",
				Timeout:  time.Second,
			}, nil)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			tc.check(t, c)
		})
	}
}

func TestNewUnknownProvider(t *testing.T) {
	if _, err := New(common.LLMConfig{Provider: "bard"}, nil); err == nil {
		t.Fatal("expected error")
	}
}
