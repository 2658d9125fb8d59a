package engine

import "context"

// Origin describes how a transcript track was produced.
type Origin int

const (
	OriginManual Origin = iota
	OriginGenerated
	OriginTranslated
)

func (o Origin) String() string {
	switch o {
	case OriginManual:
		return "manual"
	case OriginGenerated:
		return "generated"
	case OriginTranslated:
		return "translated"
	}
	return "unknown"
}

// Fragment is one caption entry of a transcript track.
type Fragment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Candidate is one transcript track a provider has available for a video.
type Candidate interface {
	// Language returns the track's language code, e.g. "en".
	Language() string
	// Generated reports whether the track was auto-generated (ASR).
	Generated() bool
	// Translatable reports whether the provider can translate the track into lang.
	Translatable(lang string) bool
	// Translate returns a candidate whose fragments are translated into lang.
	Translate(lang string) (Candidate, error)
	// Fetch returns the caption fragments in temporal order.
	Fetch(ctx context.Context) ([]Fragment, error)
}

// TranscriptProvider lists transcript tracks for a video.
type TranscriptProvider interface {
	List(ctx context.Context, videoID string) ([]Candidate, error)
}

// Generator produces a single non-streaming text completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Summary is the two-field result returned for a video.
type Summary struct {
	TopicName    string `json:"topic_name" jsonschema:"name of the video's topic"`
	TopicSummary string `json:"topic_summary" jsonschema:"short summary of the topic"`
}

// SummarizeInput is the MCP tool input for youtube_summarize.
type SummarizeInput struct {
	URL string `json:"url" jsonschema:"YouTube video URL (youtube.com/watch?v=... or youtu.be/...)"`
}
