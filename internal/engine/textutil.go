package engine

import (
	"strings"

	"github.com/anatolykoptev/go-kit/strutil"
	"golang.org/x/net/html"
)

// CleanHTML extracts the text of an HTML fragment, decodes entities and trims whitespace.
// Caption XML is often double-escaped ("&amp;#39;"), so entities are decoded until stable.
func CleanHTML(s string) string {
	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(unescapeAll(sb.String()))
		case html.TextToken:
			sb.Write(z.Text())
		}
	}
}

func unescapeAll(s string) string {
	for range 3 {
		u := html.UnescapeString(s)
		if u == s {
			break
		}
		s = u
	}
	return s
}

// Truncate caps s at n runes, appending "..." if cut. Safe for multi-byte UTF-8.
func Truncate(s string, n int) string {
	return strutil.TruncateWith(s, n, "...")
}
