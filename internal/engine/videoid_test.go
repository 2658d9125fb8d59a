package engine

import (
	"errors"
	"testing"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"watch", "https://www.youtube.com/watch?v=abc123", "abc123"},
		{"watch with params", "https://www.youtube.com/watch?v=abc123&t=5", "abc123"},
		{"watch many params", "https://youtube.com/watch?v=dQw4w9WgXcQ&list=PL1&index=2", "dQw4w9WgXcQ"},
		{"mobile watch", "https://m.youtube.com/watch?v=xyz", "xyz"},
		{"short", "https://youtu.be/abc123", "abc123"},
		{"short with query", "https://youtu.be/abc123?t=5", "abc123"},
		{"short with si and t", "https://youtu.be/abc123?si=Qx&t=42", "abc123"},
		{"short no scheme", "youtu.be/abc123", "abc123"},
		{"id shape not validated", "https://youtu.be/!!", "!!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVideoID(tt.url)
			if err != nil {
				t.Fatalf("ExtractVideoID(%q) error: %v", tt.url, err)
			}
			if got != tt.want {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestExtractVideoIDInvalid(t *testing.T) {
	for _, u := range []string{
		"https://example.com/video",
		"",
		"https://www.youtube.com/channel/UC123",
		"https://vimeo.com/12345",
		"https://youtu.be/",
		"https://www.youtube.com/watch?v=",
	} {
		t.Run(u, func(t *testing.T) {
			_, err := ExtractVideoID(u)
			if !errors.Is(err, ErrInvalidURL) {
				t.Errorf("ExtractVideoID(%q) error = %v, want ErrInvalidURL", u, err)
			}
		})
	}
}
