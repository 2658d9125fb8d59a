package engine

import (
	"context"
	"errors"
	"strings"
)

// fakeCandidate is an in-memory transcript track.
type fakeCandidate struct {
	lang         string
	generated    bool
	translations []string
	frags        []Fragment
	fetchErr     error
	translateErr error

	translated *[]string // records Translate calls, shared across copies
}

func (c *fakeCandidate) Language() string { return c.lang }
func (c *fakeCandidate) Generated() bool  { return c.generated }

func (c *fakeCandidate) Translatable(lang string) bool {
	for _, l := range c.translations {
		if l == lang {
			return true
		}
	}
	return false
}

func (c *fakeCandidate) Translate(lang string) (Candidate, error) {
	if c.translated != nil {
		*c.translated = append(*c.translated, c.lang+"->"+lang)
	}
	if c.translateErr != nil {
		return nil, c.translateErr
	}
	frags := make([]Fragment, len(c.frags))
	for i, f := range c.frags {
		f.Text = "[" + lang + "] " + f.Text
		frags[i] = f
	}
	return &fakeCandidate{lang: lang, frags: frags}, nil
}

func (c *fakeCandidate) Fetch(context.Context) ([]Fragment, error) {
	if c.fetchErr != nil {
		return nil, c.fetchErr
	}
	return c.frags, nil
}

// fakeProvider returns a fixed candidate list, or err.
type fakeProvider struct {
	cands []Candidate
	err   error
	calls int
}

func (p *fakeProvider) List(context.Context, string) ([]Candidate, error) {
	p.calls++
	return p.cands, p.err
}

// fakeGenerator replies with a fixed text, or err.
type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.reply, g.err
}

func frags(lines ...string) []Fragment {
	out := make([]Fragment, len(lines))
	for i, l := range lines {
		out[i] = Fragment{Text: l, Start: float64(i)}
	}
	return out
}

var errProvider = errors.New("provider unavailable")

func joined(lines ...string) string { return strings.Join(lines, "\n") }
