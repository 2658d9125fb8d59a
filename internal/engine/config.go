package engine

import (
	"net/http"
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	Port                 string
	LLMAPIKey            string
	LLMAPIBase           string
	LLMModel             string
	LLMTemperature       float64
	LLMMaxTokens         int
	LLMTimeout           time.Duration
	TranscriptLanguage   string
	FetchTimeout         time.Duration
	CacheTTL             time.Duration // 0 = summary cache disabled
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration
	RedisURL             string  // empty = L1 only
	RateLimitRPS         float64 // 0 = /summarize not rate limited
	RateLimitBurst       int
	WriteTimeout         time.Duration // covers /mcp streams as well as /summarize
	LogLevel             string
	HTTPClient           *http.Client
}

// DefaultLanguage is the transcript language used when none is configured.
const DefaultLanguage = "en"

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-pro"

// Language returns the configured transcript target language.
func (c Config) Language() string {
	if c.TranscriptLanguage == "" {
		return DefaultLanguage
	}
	return c.TranscriptLanguage
}

// Model returns the configured generation model name.
func (c Config) Model() string {
	if c.LLMModel == "" {
		return DefaultModel
	}
	return c.LLMModel
}
