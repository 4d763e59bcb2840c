package parser

import (
	"encoding/json"

	"kanji-cards/internal/grammar"
)

// KanjiEntry is the parsed form of one kanji line: either *AtomicEntry or
// *ComplexEntry.
type KanjiEntry interface {
	// Char returns the kanji the entry describes.
	Char() string
	kanjiEntry()
}

// AtomicEntry has one translation for the whole kanji and plain readings.
type AtomicEntry struct {
	Character   string   `json:"character"`
	Translation string   `json:"translation"`
	Onyomi      []string `json:"onyomi"`
	Kunyomi     []string `json:"kunyomi"`
}

// Reading is a single reading of a complex entry. Translation is empty
// when the note gives none.
type Reading struct {
	Reading     string `json:"reading"`
	Translation string `json:"translation,omitempty"`
}

// ComplexEntry has no whole translation; each reading may carry its own.
type ComplexEntry struct {
	Character string    `json:"character"`
	Onyomi    []Reading `json:"onyomi"`
	Kunyomi   []Reading `json:"kunyomi"`
}

func (e *AtomicEntry) Char() string  { return e.Character }
func (e *ComplexEntry) Char() string { return e.Character }

func (*AtomicEntry) kanjiEntry()  {}
func (*ComplexEntry) kanjiEntry() {}

func (e *AtomicEntry) MarshalJSON() ([]byte, error) {
	type plain AtomicEntry
	return json.Marshal(struct {
		Type string `json:"type"`
		*plain
	}{"atomic", (*plain)(e)})
}

func (e *ComplexEntry) MarshalJSON() ([]byte, error) {
	type plain ComplexEntry
	return json.Marshal(struct {
		Type string `json:"type"`
		*plain
	}{"complex", (*plain)(e)})
}

// Token is one element of the Japanese side of a word line: SimpleWord,
// ControlMarker or ComplexWord.
type Token interface {
	token()
}

// HintToken is the subset of tokens allowed inside a ruby hint and on the
// translation side. ComplexWord is not a HintToken, so complex words
// cannot nest.
type HintToken interface {
	Token
	hintToken()
}

// SimpleWord is literal text.
type SimpleWord struct {
	Value string
}

// ControlMarker toggles an inline style.
type ControlMarker struct {
	Style grammar.Style
}

// ComplexWord is a base text annotated with a reading hint, written
// (base)[hint] in notes.
type ComplexWord struct {
	Value string
	Hint  []HintToken
}

func (SimpleWord) token()    {}
func (ControlMarker) token() {}
func (ComplexWord) token()   {}

func (SimpleWord) hintToken()    {}
func (ControlMarker) hintToken() {}

func (w SimpleWord) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"type": "simple_word", "value": w.Value})
}

func (m ControlMarker) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"type": "control", "value": m.Style})
}

func (w ComplexWord) MarshalJSON() ([]byte, error) {
	hint := w.Hint
	if hint == nil {
		hint = []HintToken{}
	}
	return json.Marshal(map[string]any{"type": "complex_word", "value": w.Value, "hint": hint})
}

// WordEntry is the parsed form of one `japanese --- translation` line.
type WordEntry struct {
	Japanese    []Token     `json:"japanese"`
	Translation []HintToken `json:"translation"`
}
