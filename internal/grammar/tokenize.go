package grammar

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	spanOpen  = '['
	spanClose = ']'
)

// SplitList splits a reading list field into trimmed items. A separator
// only splits when it is not inside a bracketed translation.
func SplitList(field string) []string {
	return splitOutside(field, Separator.Contains)
}

// splitOutside splits s on runes matching isSep, ignoring separators that
// sit inside a bracketed span. A separator counts as inside a span when a
// closing bracket follows it before the next opening bracket.
func splitOutside(s string, isSep func(rune) bool) []string {
	var parts []string
	start := 0
	for i, r := range s {
		if !isSep(r) {
			continue
		}
		next := i + utf8.RuneLen(r)
		if closesSpan(s[next:]) {
			continue
		}
		parts = append(parts, strings.TrimSpace(s[start:i]))
		start = next
	}
	return append(parts, strings.TrimSpace(s[start:]))
}

func closesSpan(rest string) bool {
	for _, r := range rest {
		switch r {
		case spanOpen:
			return false
		case spanClose:
			return true
		}
	}
	return false
}

// Item is one element of a reading list.
type Item struct {
	Reading     string
	Translation string
}

// SplitItem matches item against the micro-pattern `reading [translation]?`
// where the reading is a run of class runes. The translation is only
// accepted when allowTranslation is set; its brackets are stripped.
func SplitItem(item string, class CharacterClass, allowTranslation bool) (Item, bool) {
	n := class.Run(item)
	if n == 0 {
		return Item{}, false
	}
	out := Item{Reading: item[:n]}

	rest := strings.TrimLeftFunc(item[n:], unicode.IsSpace)
	if rest == "" {
		return out, true
	}
	if !allowTranslation {
		return Item{}, false
	}

	translation, after, ok := cutSpan(rest)
	if !ok || strings.TrimSpace(after) != "" {
		return Item{}, false
	}
	out.Translation = translation
	return out, true
}

// cutSpan consumes a bracketed translation at the start of s and returns
// its trimmed content and the remainder. The content must be non-empty.
func cutSpan(s string) (content, rest string, ok bool) {
	if !strings.HasPrefix(s, string(spanOpen)) {
		return "", s, false
	}
	end := strings.IndexRune(s, spanClose)
	if end < 0 {
		return "", s, false
	}
	content = strings.TrimSpace(s[1:end])
	if content == "" {
		return "", s, false
	}
	return content, s[end+1:], true
}
