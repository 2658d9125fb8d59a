package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/anatolykoptev/go_ytsum/internal/engine"
)

// Summarizer produces a summary for a YouTube URL.
type Summarizer interface {
	Summarize(ctx context.Context, rawURL string) (*engine.Summary, error)
}

// errorEnvelope is the body of every failed response.
type errorEnvelope struct {
	Error string `json:"error"`
}

func handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "API is running"})
}

func handleSummarize(s Summarizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawURL := r.URL.Query().Get("url")
		if rawURL == "" {
			writeError(w, r, fmt.Errorf("%w: missing url query parameter", engine.ErrInvalidURL))
			return
		}
		summary, err := s.Summarize(r.Context(), rawURL)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}

// writeError converts err into the error envelope. The message is passed through verbatim.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Warn("summarize failed",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("kind", engine.ErrorKind(err)),
		slog.String("error", engine.Truncate(err.Error(), 500)),
	)
	writeJSON(w, http.StatusInternalServerError, errorEnvelope{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("write response failed", slog.Any("error", err))
	}
}
