package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "ytsum"

// metrics holds the engine's Prometheus collectors, registered once on the default registry.
var metrics = struct {
	Summarize          *prometheus.CounterVec
	SummarizeDuration  prometheus.Histogram
	LLMCalls           prometheus.Counter
	LLMErrors          prometheus.Counter
	LLMLatency         prometheus.Histogram
	TranscriptSelected *prometheus.CounterVec
	CacheHits          prometheus.Counter
	CacheMisses        prometheus.Counter
}{
	Summarize: promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "summarize_total",
		Help:      "Summarize requests by outcome",
	}, []string{"outcome"}),
	SummarizeDuration: promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "summarize_duration_seconds",
		Help:      "End-to-end summarize latency in seconds",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	}),
	LLMCalls: promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "llm_calls_total",
		Help:      "Total generation API calls",
	}),
	LLMErrors: promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "llm_errors_total",
		Help:      "Total failed generation API calls",
	}),
	LLMLatency: promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "llm_latency_seconds",
		Help:      "Generation API call latency in seconds",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 60},
	}),
	TranscriptSelected: promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "transcript_selected_total",
		Help:      "Transcripts fetched, by origin",
	}, []string{"origin"}),
	CacheHits: promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "cache_hits_total",
		Help:      "Summary cache hits",
	}),
	CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "cache_misses_total",
		Help:      "Summary cache misses",
	}),
}

func IncrLLMCalls() { metrics.LLMCalls.Inc() }
func IncrLLMErrors() { metrics.LLMErrors.Inc() }
func ObserveLLMLatency(d time.Duration) { metrics.LLMLatency.Observe(d.Seconds()) }
func IncrTranscriptSelected(origin Origin) { metrics.TranscriptSelected.WithLabelValues(origin.String()).Inc() }
func incrCacheHit() { metrics.CacheHits.Inc() }
func incrCacheMiss() { metrics.CacheMisses.Inc() }

// RecordSummarize records one finished summarize call.
func RecordSummarize(err error, d time.Duration) {
	metrics.Summarize.WithLabelValues(ErrorKind(err)).Inc()
	metrics.SummarizeDuration.Observe(d.Seconds())
}

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, threshold time.Duration, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > threshold {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
