package validators

import (
	"strings"
	"unicode"
)

// SanitizeString drops control characters, collapses runs of whitespace and
// truncates to maxLen runes. A maxLen of zero disables truncation.
func SanitizeString(input string, maxLen int) string {
	var b strings.Builder
	b.Grow(len(input))
	space := false
	for _, r := range strings.TrimSpace(input) {
		switch {
		case unicode.IsSpace(r):
			space = true
			continue
		case unicode.IsControl(r):
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	out := []rune(b.String())
	if maxLen > 0 && len(out) > maxLen {
		out = out[:maxLen]
	}
	return strings.TrimSpace(string(out))
}
