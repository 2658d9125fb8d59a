package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Summarizer turns transcript text into a Summary using a Generator.
type Summarizer struct {
	gen    Generator
	apiKey string
}

// NewSummarizer creates a Summarizer. An empty apiKey makes every call fail
// with ErrMissingAPIKey before the generator is reached.
func NewSummarizer(gen Generator, apiKey string) *Summarizer {
	return &Summarizer{gen: gen, apiKey: apiKey}
}

// Summarize asks the model for a summary of transcript and parses the reply.
func (s *Summarizer) Summarize(ctx context.Context, transcript string) (*Summary, error) {
	if s.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	raw, err := s.gen.Generate(ctx, BuildSummaryPrompt(transcript))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	return ParseSummary(raw)
}

// BuildSummaryPrompt embeds transcript verbatim into the summary prompt.
func BuildSummaryPrompt(transcript string) string {
	return fmt.Sprintf(summaryPrompt, transcript)
}

// summaryWire detects missing fields, which a plain Summary would zero silently.
type summaryWire struct {
	TopicName    *string `json:"topic_name"`
	TopicSummary *string `json:"topic_summary"`
}

// ParseSummary parses a model reply, optionally fenced in ```json ... ```,
// into a Summary. The reply must be exactly one object with both fields.
func ParseSummary(raw string) (*Summary, error) {
	cleaned := stripFences(raw)

	dec := json.NewDecoder(strings.NewReader(cleaned))
	dec.DisallowUnknownFields()

	var w summaryWire
	if err := dec.Decode(&w); err != nil {
		return nil, &ParseError{Raw: cleaned, Err: err}
	}
	if dec.More() || hasTrailing(dec) {
		return nil, &ParseError{Raw: cleaned, Err: errors.New("unexpected data after JSON object")}
	}
	if w.TopicName == nil || w.TopicSummary == nil {
		return nil, &ParseError{Raw: cleaned, Err: errors.New(`missing "topic_name" or "topic_summary"`)}
	}
	return &Summary{TopicName: *w.TopicName, TopicSummary: *w.TopicSummary}, nil
}

// hasTrailing reports non-whitespace input left in dec after the first value.
func hasTrailing(dec *json.Decoder) bool {
	var rest bytes.Buffer
	_, _ = rest.ReadFrom(dec.Buffered())
	return len(bytes.TrimSpace(rest.Bytes())) > 0
}
