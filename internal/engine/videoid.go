package engine

import "strings"

const (
	watchMarker = "youtube.com/watch?v="
	shortMarker = "youtu.be/"
)

// ExtractVideoID parses a YouTube URL into its video identifier.
//
// Two shapes are recognised: ".../watch?v=<id>[&...]" and "youtu.be/<id>[?...]".
// Anything else fails with ErrInvalidURL. The identifier itself is not validated.
func ExtractVideoID(rawURL string) (string, error) {
	var id string
	switch {
	case strings.Contains(rawURL, watchMarker):
		_, rest, _ := strings.Cut(rawURL, "v=")
		id = cutAt(rest, "&", "?")
	case strings.Contains(rawURL, shortMarker):
		id = rawURL[strings.LastIndex(rawURL, "/")+1:]
		id = cutAt(id, "?", "&")
	default:
		return "", ErrInvalidURL
	}
	if id == "" {
		return "", ErrInvalidURL
	}
	return id, nil
}

// cutAt truncates s at the first occurrence of each separator, in order.
func cutAt(s string, seps ...string) string {
	for _, sep := range seps {
		s, _, _ = strings.Cut(s, sep)
	}
	return s
}
