// go_ytsum is a YouTube transcript summarizer.
//
// Serves GET /summarize?url=<youtube url>, which picks the best available
// transcript (manual, auto-generated, then translated English) and asks Gemini
// for a {"topic_name","topic_summary"} JSON summary. The same pipeline is
// exposed as the youtube_summarize MCP tool at /mcp and through a small UI at /app/.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/joho/godotenv"

	"github.com/anatolykoptev/go_ytsum/internal/engine"
	"github.com/anatolykoptev/go_ytsum/internal/engine/sources"
	"github.com/anatolykoptev/go_ytsum/internal/server"
)

var version = "dev"

// defaultWriteTimeout leaves room for long-lived MCP streamable-HTTP sessions.
const defaultWriteTimeout = 600 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		// Environment variables may be set directly.
		slog.Debug("no .env file loaded", slog.Any("error", err))
	}

	cfg := loadConfig()
	setupLogging(cfg.LogLevel)

	if cfg.LLMAPIKey == "" {
		slog.Warn("GEMINI_API_KEY not set, /summarize will fail until it is configured")
	}

	cache := engine.NewCache(cfg.RedisURL, cfg.CacheTTL, cfg.CacheMaxEntries, cfg.CacheCleanupInterval)
	defer cache.Close()

	gemini := engine.NewGemini(cfg)
	pipeline := engine.NewPipeline(
		engine.NewResolver(sources.NewYouTube(cfg.HTTPClient), cfg.Language()),
		engine.NewSummarizer(gemini, cfg.LLMAPIKey),
		cache,
		gemini.Model(),
	)

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: server.NewRouter(pipeline, server.Options{
			Version:        version,
			RateLimitRPS:   cfg.RateLimitRPS,
			RateLimitBurst: cfg.RateLimitBurst,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("starting go_ytsum",
			slog.String("port", cfg.Port),
			slog.String("version", version),
			slog.String("model", gemini.Model()),
			slog.String("lang", cfg.Language()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown failed", slog.Any("error", err))
	}
}

func loadConfig() engine.Config {
	fetchTimeout := env.Duration("FETCH_TIMEOUT", 15*time.Second)
	apiKey := env.Str("GEMINI_API_KEY", "")
	if apiKey == "" {
		apiKey = env.Str("LLM_API_KEY", "")
	}
	return engine.Config{
		Port:                 env.Str("PORT", "8080"),
		LLMAPIKey:            apiKey,
		LLMAPIBase:           env.Str("LLM_API_BASE", "https://generativelanguage.googleapis.com/v1beta/openai"),
		LLMModel:             env.Str("LLM_MODEL", engine.DefaultModel),
		LLMTemperature:       env.Float("LLM_TEMPERATURE", 0.6),
		LLMMaxTokens:         env.Int("LLM_MAX_TOKENS", 8192),
		LLMTimeout:           env.Duration("LLM_TIMEOUT", 120*time.Second),
		TranscriptLanguage:   env.Str("TRANSCRIPT_LANGUAGE", engine.DefaultLanguage),
		FetchTimeout:         fetchTimeout,
		CacheTTL:             env.Duration("CACHE_TTL", 0),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 500),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 5*time.Minute),
		RedisURL:             env.Str("REDIS_URL", ""),
		RateLimitRPS:         env.Float("RATE_LIMIT_RPS", 0),
		RateLimitBurst:       env.Int("RATE_LIMIT_BURST", 5),
		WriteTimeout:         env.Duration("HTTP_WRITE_TIMEOUT", defaultWriteTimeout),
		LogLevel:             env.Str("LOG_LEVEL", "info"),
		HTTPClient: &http.Client{
			Timeout: fetchTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}
}

func setupLogging(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}
