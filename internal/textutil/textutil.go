package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalize prepares a raw note line for matching. Full-width ASCII
// variants (［, ］, ：, ，) fold to their narrow forms, half-width katakana
// folds to full width, and the result is NFC-composed so that kana written
// with combining voiced marks compare equal to their precomposed forms.
func Normalize(s string) string {
	s = width.Fold.String(s)
	s = norm.NFC.String(s)
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// Truncate shortens a string to maxLen runes, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen]) + "..."
}
