// Package render turns parsed note entries into flashcard HTML fragments.
package render

import (
	"fmt"
	"strings"

	"kanji-cards/internal/grammar"
	"kanji-cards/internal/parser"
)

// Markup is the opening and closing tag pair of a style.
type Markup struct {
	Open  string
	Close string
}

// Styles lists every style the renderer knows. Control markers naming any
// other style are ignored.
var Styles = map[grammar.Style]Markup{
	grammar.Semibold: {
		Open:  `<span style="text-shadow: 0 0 0;">`,
		Close: `</span>`,
	},
	grammar.Bold: {
		Open:  `<span style="font-weight: bold;">`,
		Close: `</span>`,
	},
}

const rubyTemplate = `<ruby>
<rb>%s</rb>
<rp>(</rp><rt>%s</rt><rp>)</rp>
</ruby>`

// Ruby annotates base with annotation. The <rp> fallback makes renderers
// without ruby support show base(annotation).
func Ruby(base, annotation string) string {
	return fmt.Sprintf(rubyTemplate, base, annotation)
}

// Renderer walks token sequences and emits inline markup, tracking which
// styles are open. A Renderer belongs to one entry and is not safe for
// concurrent use.
//
// Unbalanced markers are not closed automatically: the output mirrors the
// input.
type Renderer struct {
	state map[grammar.Style]bool
}

// NewRenderer returns a renderer with every style closed.
func NewRenderer() *Renderer {
	state := make(map[grammar.Style]bool, len(Styles))
	for style := range Styles {
		state[style] = false
	}
	return &Renderer{state: state}
}

// State returns a copy of the open/closed flag of every style.
func (r *Renderer) State() map[grammar.Style]bool {
	out := make(map[grammar.Style]bool, len(r.state))
	for style, open := range r.state {
		out[style] = open
	}
	return out
}

// Balanced reports whether every style is closed.
func (r *Renderer) Balanced() bool {
	for _, open := range r.state {
		if open {
			return false
		}
	}
	return true
}

// Reading renders the Japanese side with ruby annotations.
func (r *Renderer) Reading(tokens []parser.Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		r.write(&sb, tok)
	}
	return sb.String()
}

// Translation renders the translation side.
func (r *Renderer) Translation(tokens []parser.HintToken) string {
	var sb strings.Builder
	for _, tok := range tokens {
		r.write(&sb, tok)
	}
	return sb.String()
}

func (r *Renderer) write(sb *strings.Builder, tok parser.Token) {
	switch tok := tok.(type) {
	case parser.SimpleWord:
		sb.WriteString(tok.Value)
	case parser.ControlMarker:
		r.toggle(sb, tok.Style)
	case parser.ComplexWord:
		r.writeComplex(sb, tok)
	}
}

func (r *Renderer) toggle(sb *strings.Builder, style grammar.Style) {
	m, ok := Styles[style]
	if !ok {
		return
	}
	r.state[style] = !r.state[style]
	if r.state[style] {
		sb.WriteString(m.Open)
	} else {
		sb.WriteString(m.Close)
	}
}

// writeComplex renders a ruby annotation. A ruby element is one inline
// unit, so a bold span open around it is closed before the element,
// reopened separately inside the annotation, and reopened after it.
func (r *Renderer) writeComplex(sb *strings.Builder, w parser.ComplexWord) {
	if !styledHint(w.Hint) {
		sb.WriteString(Ruby(w.Value, plainText(w.Hint)))
		return
	}

	bold := Styles[grammar.Bold]
	semibold := Styles[grammar.Semibold]
	wasBold := r.state[grammar.Bold]

	if wasBold {
		sb.WriteString(bold.Close)
	}

	var hint strings.Builder
	if wasBold {
		hint.WriteString(bold.Open)
	}
	for _, tok := range w.Hint {
		r.write(&hint, tok)
	}
	if wasBold {
		hint.WriteString(bold.Close)
	}

	sb.WriteString(Ruby(semibold.Open+w.Value+semibold.Close, hint.String()))

	if wasBold {
		sb.WriteString(bold.Open)
	}
}

func styledHint(hint []parser.HintToken) bool {
	for _, tok := range hint {
		if _, ok := tok.(parser.ControlMarker); ok {
			return true
		}
	}
	return false
}

func plainText(hint []parser.HintToken) string {
	var sb strings.Builder
	for _, tok := range hint {
		if w, ok := tok.(parser.SimpleWord); ok {
			sb.WriteString(w.Value)
		}
	}
	return sb.String()
}

// Reading renders tokens with a fresh renderer.
func Reading(tokens []parser.Token) string {
	return NewRenderer().Reading(tokens)
}

// Translation renders tokens with a fresh renderer.
func Translation(tokens []parser.HintToken) string {
	return NewRenderer().Translation(tokens)
}

// Writing returns the plain surface text: simple word values and complex
// word bases, without styles or hints.
func Writing(tokens []parser.Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		switch tok := tok.(type) {
		case parser.SimpleWord:
			sb.WriteString(tok.Value)
		case parser.ComplexWord:
			sb.WriteString(tok.Value)
		}
	}
	return sb.String()
}
