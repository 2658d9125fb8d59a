package engine

import (
	"errors"
	"fmt"
)

// Failure kinds surfaced by the summarize pipeline.
var (
	ErrInvalidURL    = errors.New("invalid YouTube URL")
	ErrNoTranscript  = errors.New("no usable transcript found")
	ErrMissingAPIKey = errors.New("gemini API key not set")
	ErrGeneration    = errors.New("summary generation failed")
	ErrParse         = errors.New("failed to parse model output")
)

// ParseError reports a model reply that is not the expected JSON object.
// Raw keeps the cleaned reply text so callers can see what the model said.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse Gemini response as JSON: %v\nRaw response: %s", e.Err, e.Raw)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

// ErrorKind classifies err into a short label for metrics and logs.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidURL):
		return "invalid_url"
	case errors.Is(err, ErrNoTranscript):
		return "no_transcript"
	case errors.Is(err, ErrMissingAPIKey):
		return "config"
	case errors.Is(err, ErrGeneration):
		return "generation"
	case errors.Is(err, ErrParse):
		return "parse"
	}
	return "internal"
}
