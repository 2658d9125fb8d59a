package engine

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fencedReply = "```json\n{\"topic_name\":\"Rust\",\"topic_summary\":\"A talk about Rust.\"}\n```"

func newTestPipeline(p TranscriptProvider, gen Generator, key string, cache *Cache) *Pipeline {
	return NewPipeline(NewResolver(p, "en"), NewSummarizer(gen, key), cache, "test-model")
}

func TestPipelineEndToEnd(t *testing.T) {
	p := &fakeProvider{cands: []Candidate{&fakeCandidate{lang: "en", frags: frags("rust is", "fast")}}}
	gen := &fakeGenerator{reply: fencedReply}

	got, err := newTestPipeline(p, gen, "key", nil).Summarize(context.Background(), "https://youtu.be/abc123?t=5")
	require.NoError(t, err)
	assert.Equal(t, &Summary{TopicName: "Rust", TopicSummary: "A talk about Rust."}, got)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "rust is\nfast")
}

func TestPipelineStopsAtFirstFailure(t *testing.T) {
	t.Run("invalid url skips provider", func(t *testing.T) {
		p := &fakeProvider{}
		gen := &fakeGenerator{reply: fencedReply}
		_, err := newTestPipeline(p, gen, "key", nil).Summarize(context.Background(), "https://example.com/video")
		assert.ErrorIs(t, err, ErrInvalidURL)
		assert.Zero(t, p.calls)
		assert.Empty(t, gen.prompts)
	})

	t.Run("no transcript skips generator", func(t *testing.T) {
		gen := &fakeGenerator{reply: fencedReply}
		_, err := newTestPipeline(&fakeProvider{}, gen, "key", nil).Summarize(context.Background(), "https://youtu.be/abc")
		assert.ErrorIs(t, err, ErrNoTranscript)
		assert.Empty(t, gen.prompts)
	})

	t.Run("missing key", func(t *testing.T) {
		p := &fakeProvider{cands: []Candidate{&fakeCandidate{lang: "en", frags: frags("x")}}}
		gen := &fakeGenerator{reply: fencedReply}
		_, err := newTestPipeline(p, gen, "", nil).Summarize(context.Background(), "https://youtu.be/abc")
		assert.ErrorIs(t, err, ErrMissingAPIKey)
		assert.Empty(t, gen.prompts)
	})
}

func TestPipelineRecordsOutcome(t *testing.T) {
	before := testutil.ToFloat64(metrics.Summarize.WithLabelValues("invalid_url"))
	_, _ = newTestPipeline(&fakeProvider{}, &fakeGenerator{}, "key", nil).Summarize(context.Background(), "nope")
	after := testutil.ToFloat64(metrics.Summarize.WithLabelValues("invalid_url"))
	assert.Equal(t, before+1, after)
}

func TestPipelineUsesCache(t *testing.T) {
	cache := NewCache("", time.Minute, 10, time.Minute)
	t.Cleanup(func() { _ = cache.Close() })

	p := &fakeProvider{cands: []Candidate{&fakeCandidate{lang: "en", frags: frags("x")}}}
	gen := &fakeGenerator{reply: fencedReply}
	pl := newTestPipeline(p, gen, "key", cache)

	first, err := pl.Summarize(context.Background(), "https://www.youtube.com/watch?v=abc&t=1")
	require.NoError(t, err)
	second, err := pl.Summarize(context.Background(), "https://youtu.be/abc")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, p.calls, "second call should be served from cache")
	assert.Len(t, gen.prompts, 1)
}

func TestPipelineDoesNotCacheFailures(t *testing.T) {
	cache := NewCache("", time.Minute, 10, time.Minute)
	t.Cleanup(func() { _ = cache.Close() })

	p := &fakeProvider{cands: []Candidate{&fakeCandidate{lang: "en", frags: frags("x")}}}
	gen := &fakeGenerator{reply: "not json"}
	pl := newTestPipeline(p, gen, "key", cache)

	_, err := pl.Summarize(context.Background(), "https://youtu.be/abc")
	require.ErrorIs(t, err, ErrParse)
	assert.Zero(t, cache.Len())
}
