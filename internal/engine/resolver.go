package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// selectStep picks at most one candidate from the listed tracks.
type selectStep struct {
	origin Origin
	pick   func(cands []Candidate, lang string) (Candidate, bool)
}

// selectionPolicy is the ordered fallback: manual, generated, then translated.
var selectionPolicy = []selectStep{
	{OriginManual, pickManual},
	{OriginGenerated, pickGenerated},
	{OriginTranslated, pickTranslated},
}

func pickManual(cands []Candidate, lang string) (Candidate, bool) {
	for _, c := range cands {
		if c.Language() == lang && !c.Generated() {
			return c, true
		}
	}
	return nil, false
}

func pickGenerated(cands []Candidate, lang string) (Candidate, bool) {
	for _, c := range cands {
		if c.Language() == lang && c.Generated() {
			return c, true
		}
	}
	return nil, false
}

// pickTranslated translates the first other-language track that allows it.
// A failed Translate call only moves on to the next track.
func pickTranslated(cands []Candidate, lang string) (Candidate, bool) {
	for _, c := range cands {
		if c.Language() == lang || !c.Translatable(lang) {
			continue
		}
		t, err := c.Translate(lang)
		if err != nil {
			slog.Debug("transcript: translate failed",
				slog.String("from", c.Language()), slog.String("to", lang), slog.Any("error", err))
			continue
		}
		return t, true
	}
	return nil, false
}

// firstOf runs steps in order and returns the first candidate found.
func firstOf(steps []selectStep, cands []Candidate, lang string) (Candidate, Origin, bool) {
	for _, s := range steps {
		if c, ok := s.pick(cands, lang); ok {
			return c, s.origin, true
		}
	}
	return nil, 0, false
}

// Resolver finds the best available transcript for a video.
type Resolver struct {
	provider TranscriptProvider
	lang     string
}

// NewResolver creates a Resolver targeting lang (DefaultLanguage if empty).
func NewResolver(p TranscriptProvider, lang string) *Resolver {
	if lang == "" {
		lang = DefaultLanguage
	}
	return &Resolver{provider: p, lang: lang}
}

// Select applies the selection policy and returns the chosen candidate.
// Listing failures count as "nothing available", so the only error is ErrNoTranscript.
func (r *Resolver) Select(ctx context.Context, videoID string) (Candidate, Origin, error) {
	cands, err := r.provider.List(ctx, videoID)
	if err != nil {
		slog.Warn("transcript: list failed", slog.String("id", videoID), slog.Any("error", err))
		return nil, 0, fmt.Errorf("%w: %w", ErrNoTranscript, err)
	}
	c, origin, ok := firstOf(selectionPolicy, cands, r.lang)
	if !ok {
		return nil, 0, ErrNoTranscript
	}
	slog.Debug("transcript: selected",
		slog.String("id", videoID),
		slog.String("lang", c.Language()),
		slog.String("origin", origin.String()),
	)
	return c, origin, nil
}

// Resolve returns the newline-joined transcript text for videoID.
func (r *Resolver) Resolve(ctx context.Context, videoID string) (string, error) {
	c, origin, err := r.Select(ctx, videoID)
	if err != nil {
		return "", err
	}
	frags, err := c.Fetch(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: fetch %s transcript: %w", ErrNoTranscript, origin, err)
	}
	text := JoinFragments(frags)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s transcript is empty", ErrNoTranscript, origin)
	}
	IncrTranscriptSelected(origin)
	return text, nil
}

// JoinFragments joins fragment texts with newlines, preserving order.
func JoinFragments(frags []Fragment) string {
	var sb strings.Builder
	for i, f := range frags {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(f.Text)
	}
	return sb.String()
}
