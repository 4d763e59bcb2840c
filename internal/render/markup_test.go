package render

import (
	"io"
	"math/rand/v2"
	"strings"
	"testing"

	"kanji-cards/internal/grammar"
	"kanji-cards/internal/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const (
	boldOpen     = `<span style="font-weight: bold;">`
	semiboldOpen = `<span style="text-shadow: 0 0 0;">`
	spanClose    = `</span>`
)

var boldMarker = parser.ControlMarker{Style: grammar.Bold}

func mustParseWords(t *testing.T, line string) *parser.WordEntry {
	t.Helper()
	entry, err := parser.ParseWords(line)
	require.NoError(t, err)
	return entry
}

// spanDepth walks fragment with an HTML tokenizer and returns the final
// span nesting depth, failing if a close tag appears with nothing open.
func spanDepth(t *testing.T, fragment string) int {
	t.Helper()
	z := html.NewTokenizer(strings.NewReader(fragment))
	depth := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			require.ErrorIs(t, z.Err(), io.EOF)
			return depth
		case html.StartTagToken:
			if name, _ := z.TagName(); string(name) == "span" {
				depth++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == "span" {
				depth--
				require.GreaterOrEqual(t, depth, 0, "unbalanced close in %q", fragment)
			}
		}
	}
}

func TestRuby(t *testing.T) {
	assert.Equal(t, "<ruby>\n<rb>見</rb>\n<rp>(</rp><rt>み</rt><rp>)</rp>\n</ruby>", Ruby("見", "み"))
}

func TestPlainWord(t *testing.T) {
	entry := mustParseWords(t, "見る --- to see")
	assert.Equal(t, "見る", Writing(entry.Japanese))
	assert.Equal(t, "to see", Translation(entry.Translation))
	reading := Reading(entry.Japanese)
	assert.Equal(t, "見る", reading)
	assert.NotContains(t, reading, "<ruby>")
}

func TestComplexWordFlatHint(t *testing.T) {
	entry := mustParseWords(t, "(見)[み]る --- to see")
	assert.Equal(t, "見る", Writing(entry.Japanese))
	reading := Reading(entry.Japanese)
	assert.Equal(t, Ruby("見", "み")+"る", reading)
	assert.Equal(t, 1, strings.Count(reading, "<ruby>"))
}

func TestComplexWordFlatHintInsideBold(t *testing.T) {
	entry := mustParseWords(t, "**(見)[み]る** --- to see")
	assert.Equal(t, boldOpen+Ruby("見", "み")+"る"+spanClose, Reading(entry.Japanese))
}

func TestComplexWordStyledHint(t *testing.T) {
	entry := mustParseWords(t, "(大)[**おお**]きい --- big")
	want := Ruby(semiboldOpen+"大"+spanClose, boldOpen+"おお"+spanClose) + "きい"
	assert.Equal(t, want, Reading(entry.Japanese))
}

func TestComplexWordStyledHintInsideBold(t *testing.T) {
	entry := mustParseWords(t, "**(大)[**おお**]きい** --- big")

	r := NewRenderer()
	got := r.Reading(entry.Japanese)

	hint := boldOpen + spanClose + "おお" + boldOpen + spanClose
	want := boldOpen +
		spanClose +
		Ruby(semiboldOpen+"大"+spanClose, hint) +
		boldOpen +
		"きい" +
		spanClose
	assert.Equal(t, want, got)
	assert.True(t, r.Balanced())
	assert.Equal(t, 0, spanDepth(t, got))
}

func TestUnbalancedMarkerIsNotClosed(t *testing.T) {
	entry := mustParseWords(t, "**bold text --- normal")

	r := NewRenderer()
	reading := r.Reading(entry.Japanese)
	assert.True(t, strings.HasPrefix(reading, boldOpen+"bold"))
	assert.NotContains(t, reading, spanClose)
	assert.False(t, r.Balanced())
	assert.True(t, r.State()[grammar.Bold])

	assert.Equal(t, "normal", Translation(entry.Translation))
}

func TestTranslationMarkup(t *testing.T) {
	entry := mustParseWords(t, "大きい --- **big**, large")
	assert.Equal(t, boldOpen+"big"+spanClose+", large", Translation(entry.Translation))
}

func TestUnknownStyleIsIgnored(t *testing.T) {
	r := NewRenderer()
	got := r.Reading([]parser.Token{
		parser.ControlMarker{Style: "italic"},
		parser.SimpleWord{Value: "x"},
	})
	assert.Equal(t, "x", got)
	assert.True(t, r.Balanced())
	assert.NotContains(t, r.State(), grammar.Style("italic"))
}

func TestStateIsPerRenderer(t *testing.T) {
	first := NewRenderer()
	first.Reading([]parser.Token{boldMarker})
	assert.False(t, first.Balanced())

	second := NewRenderer()
	assert.True(t, second.Balanced())
	assert.Equal(t, map[grammar.Style]bool{grammar.Bold: false, grammar.Semibold: false}, second.State())
}

func TestNestedComplexWordIsNotNested(t *testing.T) {
	entry := mustParseWords(t, "(見)[(み)[x]]る --- see")
	reading := Reading(entry.Japanese)
	assert.Equal(t, "見"+Ruby("み", "x")+"る", reading)
	assert.Equal(t, 1, strings.Count(reading, "<ruby>"))
}

func TestWritingRoundTrip(t *testing.T) {
	for _, line := range []string{
		"見る --- to see",
		"(見)[み]る --- to see",
		"**(大)[**おお**]きい** --- big",
		"(今日)[きょう]は(雨)[あめ]です --- it rains today",
	} {
		entry := mustParseWords(t, line)
		writing := Writing(entry.Japanese)

		var surface strings.Builder
		for _, tok := range parser.TokenizeJapanese(writing) {
			w, ok := tok.(parser.SimpleWord)
			require.True(t, ok, "writing %q re-tokenized into %T", writing, tok)
			surface.WriteString(w.Value)
		}
		assert.Equal(t, writing, surface.String(), "line %q", line)
	}
}

// randomTokens builds a sequence with an even number of bold markers at
// the top level and an even number inside every styled hint.
func randomTokens(rng *rand.Rand) []parser.Token {
	words := []string{"見", "る", "大", "きい", "今日"}
	var tokens []parser.Token
	markers := 0
	n := 1 + rng.IntN(12)
	for i := 0; i < n; i++ {
		switch rng.IntN(4) {
		case 0:
			tokens = append(tokens, parser.SimpleWord{Value: words[rng.IntN(len(words))]})
		case 1:
			tokens = append(tokens, boldMarker)
			markers++
		case 2:
			tokens = append(tokens, parser.ComplexWord{
				Value: words[rng.IntN(len(words))],
				Hint:  []parser.HintToken{parser.SimpleWord{Value: "よみ"}},
			})
		case 3:
			tokens = append(tokens, parser.ComplexWord{
				Value: words[rng.IntN(len(words))],
				Hint: []parser.HintToken{
					parser.SimpleWord{Value: "よ"},
					boldMarker,
					parser.SimpleWord{Value: "み"},
					boldMarker,
				},
			})
		}
	}
	if markers%2 == 1 {
		tokens = append(tokens, boldMarker)
	}
	return tokens
}

func TestBalancedMarkersLeaveStateClosed(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 500; i++ {
		tokens := randomTokens(rng)
		r := NewRenderer()
		out := r.Reading(tokens)
		require.True(t, r.Balanced(), "tokens %v", tokens)
		require.Equal(t, 0, spanDepth(t, out), "output %q", out)
	}
}
