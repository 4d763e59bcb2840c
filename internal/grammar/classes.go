// Package grammar declares the character classes and line patterns of the
// vocabulary note formats, and the scanning rules used to split them.
package grammar

import (
	"strings"
	"unicode"
)

// CharacterClass is a named set of code point ranges plus a few literal
// extra characters.
type CharacterClass struct {
	Name  string
	Table *unicode.RangeTable
	Extra string
}

// Contains reports whether r belongs to the class.
func (c CharacterClass) Contains(r rune) bool {
	return unicode.Is(c.Table, r) || strings.ContainsRune(c.Extra, r)
}

// Run returns the byte length of the longest prefix of s made of class runes.
func (c CharacterClass) Run(s string) int {
	for i, r := range s {
		if !c.Contains(r) {
			return i
		}
	}
	return len(s)
}

func (c CharacterClass) String() string { return c.Name }

var (
	// Ideograph is the CJK unified ideograph block a kanji entry starts with.
	Ideograph = CharacterClass{
		Name:  "ideograph",
		Table: &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x4e00, Hi: 0x9faf, Stride: 1}}},
	}

	// Katakana holds onyomi readings. The middle dot separates parts of a
	// reading.
	Katakana = CharacterClass{
		Name:  "katakana",
		Table: &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x30a0, Hi: 0x30ff, Stride: 1}}},
		Extra: "・",
	}

	// Hiragana holds kunyomi readings. Parentheses mark the okurigana
	// ending, as in たか(い).
	Hiragana = CharacterClass{
		Name:  "hiragana",
		Table: &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x3040, Hi: 0x309f, Stride: 1}}},
		Extra: "()",
	}

	// Separator divides the items of a reading list.
	Separator = CharacterClass{
		Name:  "separator",
		Table: &unicode.RangeTable{},
		Extra: ",、",
	}
)
