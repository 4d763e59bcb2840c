package parser

import (
	"fmt"

	"kanji-cards/internal/grammar"
	"kanji-cards/internal/textutil"
)

// kanjiShapes are tried in order; the first matching pattern wins.
var kanjiShapes = []struct {
	pattern grammar.EntryPattern
	build   func(grammar.Fields) (KanjiEntry, error)
}{
	{grammar.Atomic, buildAtomic},
	{grammar.Complex, buildComplex},
}

// ParseKanji parses one kanji note line.
func ParseKanji(line string) (KanjiEntry, error) {
	line = textutil.Normalize(line)
	for _, shape := range kanjiShapes {
		fields, ok := shape.pattern.Match(line)
		if !ok {
			continue
		}
		return shape.build(fields)
	}
	return nil, ErrGrammarMismatch
}

func buildAtomic(f grammar.Fields) (KanjiEntry, error) {
	entry := &AtomicEntry{
		Character:   f.Character,
		Translation: f.Translation,
		Onyomi:      plainReadings(f.Onyomi),
		Kunyomi:     []string{},
	}
	if f.HasKunyomi {
		entry.Kunyomi = plainReadings(f.Kunyomi)
	}
	return entry, nil
}

// plainReadings splits a plain reading list. A reading repeated in the
// same list is kept once.
func plainReadings(field string) []string {
	items := grammar.SplitList(field)
	readings := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		readings = append(readings, item)
	}
	return readings
}

func buildComplex(f grammar.Fields) (KanjiEntry, error) {
	onyomi, err := annotatedReadings(f.Onyomi, grammar.Katakana)
	if err != nil {
		return nil, fmt.Errorf("onyomi: %w", err)
	}
	kunyomi := []Reading{}
	if f.HasKunyomi {
		kunyomi, err = annotatedReadings(f.Kunyomi, grammar.Hiragana)
		if err != nil {
			return nil, fmt.Errorf("kunyomi: %w", err)
		}
	}
	return &ComplexEntry{
		Character: f.Character,
		Onyomi:    onyomi,
		Kunyomi:   kunyomi,
	}, nil
}

func annotatedReadings(field string, class grammar.CharacterClass) ([]Reading, error) {
	items := grammar.SplitList(field)
	readings := make([]Reading, 0, len(items))
	for _, item := range items {
		it, ok := grammar.SplitItem(item, class, true)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnresolvedSubtoken, item)
		}
		readings = append(readings, Reading{Reading: it.Reading, Translation: it.Translation})
	}
	return readings, nil
}
