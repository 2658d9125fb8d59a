// Package server exposes the summarize pipeline over HTTP, MCP and a small browser UI.
package server

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed static/*
var staticFiles embed.FS

// Options configures the router.
type Options struct {
	Version        string
	RateLimitRPS   float64 // 0 = unlimited
	RateLimitBurst int
}

// NewRouter constructs the HTTP router for the service.
func NewRouter(s Summarizer, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/", handleRoot)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.With(rateLimit(opts.RateLimitRPS, opts.RateLimitBurst)).
		Get("/summarize", handleSummarize(s))

	r.Handle("/mcp", mcpHandler(NewMCPServer(s, opts.Version)))

	static, _ := fs.Sub(staticFiles, "static")
	r.Get("/app", http.RedirectHandler("/app/", http.StatusMovedPermanently).ServeHTTP)
	r.Handle("/app/*", http.StripPrefix("/app/", http.FileServer(http.FS(static))))

	return r
}
