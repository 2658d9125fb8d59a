package engine

import (
	"context"
	"log/slog"
	"time"
)

// slowSummarize is the latency above which a summarize call is logged as slow.
const slowSummarize = 30 * time.Second

// Pipeline runs URL → video ID → transcript → summary in strict sequence.
type Pipeline struct {
	resolver   *Resolver
	summarizer *Summarizer
	cache      *Cache
	model      string
}

// NewPipeline wires the pipeline stages. cache may be nil; the default service
// runs without one and keeps no results across requests.
func NewPipeline(r *Resolver, s *Summarizer, cache *Cache, model string) *Pipeline {
	return &Pipeline{resolver: r, summarizer: s, cache: cache, model: model}
}

// Summarize produces the summary for the video at rawURL.
// The first failing stage aborts the rest; its error is returned unchanged.
func (p *Pipeline) Summarize(ctx context.Context, rawURL string) (*Summary, error) {
	start := time.Now()
	var out *Summary
	err := TrackOperation(ctx, "summarize", slowSummarize, func(ctx context.Context) error {
		var err error
		out, err = p.run(ctx, rawURL)
		return err
	})
	RecordSummarize(err, time.Since(start))
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Pipeline) run(ctx context.Context, rawURL string) (*Summary, error) {
	videoID, err := ExtractVideoID(rawURL)
	if err != nil {
		return nil, err
	}

	key := CacheKey("summary", p.model, videoID)
	if s, ok := p.cache.Get(ctx, key); ok {
		return s, nil
	}

	transcript, err := p.resolver.Resolve(ctx, videoID)
	if err != nil {
		return nil, err
	}
	slog.Debug("summarize: transcript resolved",
		slog.String("id", videoID), slog.Int("chars", len(transcript)))

	summary, err := p.summarizer.Summarize(ctx, transcript)
	if err != nil {
		return nil, err
	}

	p.cache.Set(ctx, key, summary)
	return summary, nil
}
