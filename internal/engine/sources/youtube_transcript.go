package sources

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"

	stealth "github.com/anatolykoptev/go-stealth"

	"github.com/anatolykoptev/go_ytsum/internal/engine"
)

// YouTube lists caption tracks for a video.
// Primary:  scrape watch page ytInitialPlayerResponse → captionTracks (works from any IP)
// Fallback: ANDROID Innertube /player → captionTracks
type YouTube struct {
	client  *http.Client
	baseURL string
	retry   stealth.RetryConfig
}

// Option configures a YouTube provider.
type Option func(*YouTube)

// WithBaseURL points the provider at a different host, e.g. a test server.
func WithBaseURL(base string) Option {
	return func(y *YouTube) { y.baseURL = strings.TrimSuffix(base, "/") }
}

// WithRetry overrides the retry policy for transient HTTP failures.
func WithRetry(rc stealth.RetryConfig) Option {
	return func(y *YouTube) { y.retry = rc }
}

// NewYouTube creates a provider using client (http.DefaultClient if nil).
func NewYouTube(client *http.Client, opts ...Option) *YouTube {
	if client == nil {
		client = http.DefaultClient
	}
	y := &YouTube{client: client, baseURL: ytBaseURL, retry: stealth.DefaultRetryConfig}
	for _, o := range opts {
		o(y)
	}
	return y
}

// List returns the usable caption tracks of videoID, in the order YouTube reports them.
// A watch page without usable tracks (none listed, or all PoToken-bound) falls back to the player.
func (y *YouTube) List(ctx context.Context, videoID string) ([]engine.Candidate, error) {
	player, err := y.playerViaPageScrape(ctx, videoID)
	if err == nil {
		if cands := y.candidates(videoID, player); len(cands) > 0 {
			return cands, nil
		}
		err = errors.New("no usable caption tracks in watch page")
	}
	slog.Warn("youtube: page scrape failed, trying player",
		slog.String("id", videoID), slog.Any("err", err))
	player, err = y.playerViaAndroid(ctx, videoID)
	if err != nil {
		return nil, err
	}
	return y.candidates(videoID, player), nil
}

func (y *YouTube) candidates(videoID string, player *innertubePlayerResp) []engine.Candidate {
	if player.Captions == nil {
		return nil
	}
	r := player.Captions.PlayerCaptionsTracklistRenderer
	langs := make([]string, 0, len(r.TranslationLanguages))
	for _, l := range r.TranslationLanguages {
		langs = append(langs, l.LanguageCode)
	}

	out := make([]engine.Candidate, 0, len(r.CaptionTracks))
	for _, t := range r.CaptionTracks {
		if needsPoToken(t.BaseURL) {
			slog.Debug("youtube: skipping PoToken track",
				slog.String("id", videoID), slog.String("lang", t.LanguageCode))
			continue
		}
		out = append(out, &track{yt: y, track: t, translations: langs})
	}
	return out
}

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
// Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// ytInitialPlayerResponseMarker marks the start of the player response JSON in watch page HTML.
const ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "

// playerViaPageScrape scrapes the watch page and decodes its ytInitialPlayerResponse.
func (y *YouTube) playerViaPageScrape(ctx context.Context, videoID string) (*innertubePlayerResp, error) {
	watchURL := y.baseURL + ytWatchPath + "?v=" + url.QueryEscape(videoID)
	body, err := y.get(ctx, watchURL, 6*1024*1024)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}

	idx := strings.Index(string(body), ytInitialPlayerResponseMarker)
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	jsonData := extractJSON(body[idx+len(ytInitialPlayerResponseMarker):])
	if jsonData == nil {
		return nil, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}

	var player innertubePlayerResp
	if err := json.Unmarshal(jsonData, &player); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	if player.Captions == nil {
		return nil, errors.New("no captions in ytInitialPlayerResponse")
	}
	return &player, nil
}

// playerViaAndroid uses the ANDROID Innertube /player endpoint.
// Works from non-blocked (residential/cloud) IP addresses.
func (y *YouTube) playerViaAndroid(ctx context.Context, videoID string) (*innertubePlayerResp, error) {
	data, err := y.postInnerTubeAndroid(ctx, innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     ytAndroidVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, err
	}

	var player innertubePlayerResp
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, fmt.Errorf("decode player: %w", err)
	}
	if player.Captions == nil {
		if player.PlayabilityStatus != nil && player.PlayabilityStatus.Reason != "" {
			return nil, fmt.Errorf("captions unavailable: %s", player.PlayabilityStatus.Reason)
		}
		return nil, errors.New("no captions in player response")
	}
	return &player, nil
}

// fetchTimedText fetches and parses a YouTube timedtext XML caption URL.
func (y *YouTube) fetchTimedText(ctx context.Context, baseURL string) ([]engine.Fragment, error) {
	body, err := y.get(ctx, baseURL, 2*1024*1024)
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	return parseTimedText(body)
}

// parseTimedText decodes caption XML into fragments, skipping empty lines.
func parseTimedText(body []byte) ([]engine.Fragment, error) {
	var tt ytTimedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	frags := make([]engine.Fragment, 0, len(tt.Lines)+len(tt.Paragraphs))
	for _, line := range tt.Lines {
		if text := engine.CleanHTML(line.Text); text != "" {
			frags = append(frags, engine.Fragment{Text: text, Start: line.Start, Duration: line.Dur})
		}
	}
	for _, p := range tt.Paragraphs {
		if text := engine.CleanHTML(p.Inner); text != "" {
			frags = append(frags, engine.Fragment{
				Text:     text,
				Start:    float64(p.T) / 1000,
				Duration: float64(p.D) / 1000,
			})
		}
	}
	return frags, nil
}

// track is one caption track, optionally translated into tlang.
type track struct {
	yt           *YouTube
	track        captionTrack
	translations []string
	tlang        string
}

func (t *track) Language() string {
	if t.tlang != "" {
		return t.tlang
	}
	return t.track.LanguageCode
}

func (t *track) Generated() bool { return t.track.Kind == "asr" }

func (t *track) Translatable(lang string) bool {
	return t.tlang == "" && t.track.IsTranslatable && slices.Contains(t.translations, lang)
}

func (t *track) Translate(lang string) (engine.Candidate, error) {
	if !t.Translatable(lang) {
		return nil, fmt.Errorf("track %s is not translatable to %s", t.track.LanguageCode, lang)
	}
	cp := *t
	cp.tlang = lang
	return &cp, nil
}

func (t *track) Fetch(ctx context.Context) ([]engine.Fragment, error) {
	u := t.track.BaseURL
	if t.tlang != "" {
		u += "&tlang=" + url.QueryEscape(t.tlang)
	}
	return t.yt.fetchTimedText(ctx, u)
}
