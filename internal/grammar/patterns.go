package grammar

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ListPattern is a separator-delimited list of one or more readings of a
// single character class, each optionally followed by a translation.
type ListPattern struct {
	Class            CharacterClass
	AllowTranslation bool
}

// List composes a reading list sub-pattern.
func List(class CharacterClass, allowTranslation bool) ListPattern {
	return ListPattern{Class: class, AllowTranslation: allowTranslation}
}

// Match reports whether the whole field is a list of this shape.
func (p ListPattern) Match(field string) bool {
	for _, item := range SplitList(field) {
		if _, ok := SplitItem(item, p.Class, p.AllowTranslation); !ok {
			return false
		}
	}
	return true
}

func (p ListPattern) String() string {
	item := strings.ToUpper(p.Class.Name)
	if p.AllowTranslation {
		item += " [translation]?"
	}
	return fmt.Sprintf("%s {, %s}", item, item)
}

// Fields are the captured parts of a matched kanji line.
type Fields struct {
	Character   string
	Translation string
	Onyomi      string
	Kunyomi     string
	HasKunyomi  bool
}

// EntryPattern is a whole-line kanji entry shape.
type EntryPattern struct {
	Name             string
	WholeTranslation bool
	Onyomi           ListPattern
	Kunyomi          ListPattern
}

var (
	// Atomic carries one translation for the whole kanji and plain readings.
	Atomic = EntryPattern{
		Name:             "atomic",
		WholeTranslation: true,
		Onyomi:           List(Katakana, false),
		Kunyomi:          List(Hiragana, false),
	}

	// Complex has no whole-entry translation; each reading may carry one.
	Complex = EntryPattern{
		Name:    "complex",
		Onyomi:  List(Katakana, true),
		Kunyomi: List(Hiragana, true),
	}
)

// Match matches a whole line. The kunyomi section is optional; its absence
// is reported through HasKunyomi.
func (p EntryPattern) Match(line string) (Fields, bool) {
	rest := strings.TrimSpace(line)
	r, size := utf8.DecodeRuneInString(rest)
	if size == 0 || !Ideograph.Contains(r) {
		return Fields{}, false
	}
	f := Fields{Character: rest[:size]}
	rest = strings.TrimLeftFunc(rest[size:], unicode.IsSpace)

	if p.WholeTranslation {
		translation, after, ok := cutSpan(rest)
		if !ok {
			return Fields{}, false
		}
		f.Translation = translation
		rest = strings.TrimLeftFunc(after, unicode.IsSpace)
	}

	if !strings.HasPrefix(rest, ":") {
		return Fields{}, false
	}
	sections := splitOutside(rest[1:], func(r rune) bool { return r == ':' })
	if len(sections) > 2 {
		return Fields{}, false
	}

	if !p.Onyomi.Match(sections[0]) {
		return Fields{}, false
	}
	f.Onyomi = sections[0]

	if len(sections) == 2 {
		if !p.Kunyomi.Match(sections[1]) {
			return Fields{}, false
		}
		f.Kunyomi = sections[1]
		f.HasKunyomi = true
	}
	return f, true
}

func (p EntryPattern) String() string {
	head := strings.ToUpper(Ideograph.Name)
	if p.WholeTranslation {
		head += " [translation]"
	}
	return fmt.Sprintf("%s : %s [: %s]", head, p.Onyomi, p.Kunyomi)
}

// Describe renders every line pattern in a readable form.
func Describe() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Atomic:  %s\n", Atomic)
	fmt.Fprintf(&sb, "Complex: %s\n", Complex)
	fmt.Fprintf(&sb, "Words:   JAPANESE %s TRANSLATION\n", EntrySeparator)
	fmt.Fprintf(&sb, "  JAPANESE = WORD {WORD}\n")
	fmt.Fprintf(&sb, "  WORD     = SIMPLE | (CHARS)[SIMPLE {SIMPLE}]\n")
	fmt.Fprintf(&sb, "  SIMPLE   = CHARS | CONTROL\n")
	for _, marker := range markerOrder {
		fmt.Fprintf(&sb, "  CONTROL  %s -> %s\n", marker, ControlMarkers[marker])
	}
	return sb.String()
}
