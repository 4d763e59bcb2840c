package render

import (
	"strings"

	"kanji-cards/internal/parser"
)

// Fields are the flat values a card writer needs besides the fragment.
type Fields struct {
	DisplayName        string
	DisplayTranslation string
}

// KanjiFields extracts the display name and translation of a kanji entry.
// For complex entries the translation joins every reading translation,
// onyomi first; readings without one are left out.
func KanjiFields(entry parser.KanjiEntry) Fields {
	f := Fields{DisplayName: entry.Char()}
	switch e := entry.(type) {
	case *parser.AtomicEntry:
		f.DisplayTranslation = e.Translation
	case *parser.ComplexEntry:
		var parts []string
		for _, readings := range [][]parser.Reading{e.Onyomi, e.Kunyomi} {
			for _, r := range readings {
				if r.Translation != "" {
					parts = append(parts, r.Translation)
				}
			}
		}
		f.DisplayTranslation = strings.Join(parts, ", ")
	}
	return f
}

// WordFields extracts the plain writing and the rendered translation of a
// word entry.
func WordFields(entry *parser.WordEntry) Fields {
	return Fields{
		DisplayName:        Writing(entry.Japanese),
		DisplayTranslation: Translation(entry.Translation),
	}
}
