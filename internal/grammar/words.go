package grammar

import (
	"sort"
	"strings"
	"unicode"
)

// EntrySeparator divides the Japanese side of a word line from its
// translation.
const EntrySeparator = "---"

// Style names an inline text style toggled by a control marker.
type Style string

const (
	Bold     Style = "bold"
	Semibold Style = "semibold"
)

// ControlMarkers maps in-text marker literals to the style they toggle.
var ControlMarkers = map[string]Style{
	"**": Bold,
}

// markerOrder lists marker literals longest first so that matching is
// deterministic when one marker prefixes another.
var markerOrder = func() []string {
	markers := make([]string, 0, len(ControlMarkers))
	for m := range ControlMarkers {
		markers = append(markers, m)
	}
	sort.Slice(markers, func(i, j int) bool {
		if len(markers[i]) != len(markers[j]) {
			return len(markers[i]) > len(markers[j])
		}
		return markers[i] < markers[j]
	})
	return markers
}()

// IsWordRune reports whether r can be part of a word: letters, digits,
// combining marks and underscore.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r)
}

// WordRun returns the byte length of the leading run of word runes in s.
func WordRun(s string) int {
	for i, r := range s {
		if !IsWordRune(r) {
			return i
		}
	}
	return len(s)
}

// MatchControl reports whether s starts with a control marker.
func MatchControl(s string) (marker string, style Style, ok bool) {
	for _, m := range markerOrder {
		if strings.HasPrefix(s, m) {
			return m, ControlMarkers[m], true
		}
	}
	return "", "", false
}
