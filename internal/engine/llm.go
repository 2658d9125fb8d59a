package engine

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
)

// Gemini generates completions through Gemini's OpenAI-compatible endpoint.
type Gemini struct {
	model    string
	complete func(ctx context.Context, prompt string) (string, error)
}

// NewGemini builds a Gemini generator from the engine config.
// Temperature and max tokens are fixed per client, so every completion samples the same way.
func NewGemini(c Config) *Gemini {
	timeout := c.LLMTimeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	client := llm.NewClient(c.LLMAPIBase, c.LLMAPIKey, c.Model(),
		llm.WithMaxTokens(c.LLMMaxTokens),
		llm.WithTemperature(c.LLMTemperature),
		llm.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
	return &Gemini{
		model: c.Model(),
		complete: func(ctx context.Context, prompt string) (string, error) {
			return client.Complete(ctx, "", prompt)
		},
	}
}

// Model returns the model name requests are sent to.
func (g *Gemini) Model() string { return g.model }

// Generate sends prompt as a single user message and returns the reply text.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	IncrLLMCalls()
	start := time.Now()
	resp, err := g.complete(ctx, prompt)
	ObserveLLMLatency(time.Since(start))
	if err != nil {
		IncrLLMErrors()
		return "", err
	}
	return resp, nil
}

// stripFences removes a markdown code fence wrapping from LLM output.
// Text that does not open with a fence is only trimmed.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
