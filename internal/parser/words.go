package parser

import (
	"strings"
	"unicode/utf8"

	"kanji-cards/internal/grammar"
	"kanji-cards/internal/textutil"
)

// ParseWords parses one `japanese --- translation` note line. The line is
// split at the last separator; both sides must be non-empty and the
// Japanese side must hold at least one token.
func ParseWords(line string) (*WordEntry, error) {
	line = textutil.Normalize(line)
	idx := strings.LastIndex(line, grammar.EntrySeparator)
	if idx < 0 {
		return nil, ErrGrammarMismatch
	}
	japanese := strings.TrimSpace(line[:idx])
	translation := strings.TrimSpace(line[idx+len(grammar.EntrySeparator):])
	if japanese == "" || translation == "" {
		return nil, ErrGrammarMismatch
	}

	tokens := TokenizeJapanese(japanese)
	if len(tokens) == 0 {
		return nil, ErrGrammarMismatch
	}
	return &WordEntry{
		Japanese:    tokens,
		Translation: tokenizeTranslation(translation),
	}, nil
}

// TokenizeJapanese scans s left to right. At each position it tries a word
// run, a control marker and a complex word, in that order. A rune that
// starts none of them is skipped.
func TokenizeJapanese(s string) []Token {
	var tokens []Token
	for pos := 0; pos < len(s); {
		rest := s[pos:]
		if n := grammar.WordRun(rest); n > 0 {
			tokens = append(tokens, SimpleWord{Value: rest[:n]})
			pos += n
			continue
		}
		if marker, style, ok := grammar.MatchControl(rest); ok {
			tokens = append(tokens, ControlMarker{Style: style})
			pos += len(marker)
			continue
		}
		if word, n, ok := parseComplexWord(rest); ok {
			tokens = append(tokens, word)
			pos += n
			continue
		}
		_, size := utf8.DecodeRuneInString(rest)
		pos += size
	}
	return tokens
}

// parseComplexWord parses `(base)[hint]` at the start of s and returns the
// number of bytes consumed.
func parseComplexWord(s string) (ComplexWord, int, bool) {
	if !strings.HasPrefix(s, "(") {
		return ComplexWord{}, 0, false
	}
	pos := 1
	n := grammar.WordRun(s[pos:])
	if n == 0 {
		return ComplexWord{}, 0, false
	}
	base := s[pos : pos+n]
	pos += n
	if !strings.HasPrefix(s[pos:], ")[") {
		return ComplexWord{}, 0, false
	}
	pos += len(")[")

	hint, n, ok := parseHint(s[pos:])
	if !ok {
		return ComplexWord{}, 0, false
	}
	return ComplexWord{Value: base, Hint: hint}, pos + n, true
}

// parseHint parses one or more simple tokens up to the closing bracket.
// Anything else inside the hint, including the start of another complex
// word, rejects it.
func parseHint(s string) ([]HintToken, int, bool) {
	var hint []HintToken
	for pos := 0; pos < len(s); {
		rest := s[pos:]
		if rest[0] == ']' {
			if len(hint) == 0 {
				return nil, 0, false
			}
			return hint, pos + 1, true
		}
		if n := grammar.WordRun(rest); n > 0 {
			hint = append(hint, SimpleWord{Value: rest[:n]})
			pos += n
			continue
		}
		if marker, style, ok := grammar.MatchControl(rest); ok {
			hint = append(hint, ControlMarker{Style: style})
			pos += len(marker)
			continue
		}
		return nil, 0, false
	}
	return nil, 0, false
}

// tokenizeTranslation splits s into literal text runs and control markers.
func tokenizeTranslation(s string) []HintToken {
	var tokens []HintToken
	start := 0
	for pos := 0; pos < len(s); {
		marker, style, ok := grammar.MatchControl(s[pos:])
		if !ok {
			_, size := utf8.DecodeRuneInString(s[pos:])
			pos += size
			continue
		}
		if pos > start {
			tokens = append(tokens, SimpleWord{Value: s[start:pos]})
		}
		tokens = append(tokens, ControlMarker{Style: style})
		pos += len(marker)
		start = pos
	}
	if start < len(s) {
		tokens = append(tokens, SimpleWord{Value: s[start:]})
	}
	return tokens
}
