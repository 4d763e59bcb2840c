package deck

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"kanji-cards/internal/parser"
	"kanji-cards/internal/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeNotes(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestKanjiBuilderBuild(t *testing.T) {
	dir := t.TempDir()
	input := writeNotes(t, dir, "n5.kanji", "山 [mountain]: サン, ザン: やま\nnot a valid entry\n力 : リョク[power], リキ : ちから[strength]\n")

	b := NewKanjiBuilder(Options{SeqWidth: 3})
	assert.True(t, b.CanBuild(".kanji"))
	assert.False(t, b.CanBuild(".words"))

	output := b.OutputPath(input, filepath.Join(dir, "out"))
	assert.Equal(t, filepath.Join(dir, "out", "n5"), output)

	report, err := b.Build(context.Background(), input, output)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Written)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, 2, report.Failures[0].Line)
	assert.ErrorIs(t, report.Failures[0], parser.ErrGrammarMismatch)

	entries, err := os.ReadDir(output)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"000 山.txt", "001 力.txt"}, names)

	data, err := os.ReadFile(filepath.Join(output, "000 山.txt"))
	require.NoError(t, err)
	card := string(data)
	assert.True(t, strings.HasPrefix(card, "山\r\nmountain\r\n<table>\n"))
	assert.True(t, strings.HasSuffix(card, "</table>\n\r\n"))

	data, err = os.ReadFile(filepath.Join(output, "001 力.txt"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "力\r\npower, strength\r\n"))
}

func TestKanjiBuilderSeqWidth(t *testing.T) {
	b := NewKanjiBuilder(Options{SeqWidth: 5})
	assert.Equal(t, "00012 山.txt", b.CardName(12, "山"))
	assert.Equal(t, "007 山.txt", NewKanjiBuilder(Options{}).CardName(7, "山"))
}

func TestKanjiBuilderCancelled(t *testing.T) {
	dir := t.TempDir()
	input := writeNotes(t, dir, "n5.kanji", "山 [mountain]: サン\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := NewKanjiBuilder(Options{})
	report, err := b.Build(ctx, input, filepath.Join(dir, "out"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, report.Written)
}

func TestKanjiBuilderMissingInput(t *testing.T) {
	_, err := NewKanjiBuilder(Options{}).Build(context.Background(), filepath.Join(t.TempDir(), "none.kanji"), t.TempDir())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWordBuilderBuild(t *testing.T) {
	dir := t.TempDir()
	input := writeNotes(t, dir, "verbs.words", "見る --- to see\nnot a valid entry\n(見)[み]る --- **to** see\n")

	b := NewWordBuilder(Options{})
	output := b.OutputPath(input, filepath.Join(dir, "out"))
	assert.Equal(t, filepath.Join(dir, "out", "verbs.tsv"), output)

	report, err := b.Build(context.Background(), input, output)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Written)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, 2, report.Failures[0].Line)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.SplitAfter(string(data), "\r\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "<div>見る</div>\tto see\t\"<center><div>見る</div><div>to see</div></center>\"\t\r\n", lines[0])
	assert.Equal(t,
		"<div>見る</div>\t<span style=\"font-weight: bold;\">to</span> see\t"+
			"\"<center><div><ruby><rb>見</rb><rp>(</rp><rt>み</rt><rp>)</rp></ruby>る</div>"+
			"<div><span style=\"\"font-weight: bold;\"\">to</span> see</div></center>\"\t\r\n",
		lines[1])
	assert.Equal(t, "", lines[2])
}

func TestWriteDeckRowUnbalancedMarker(t *testing.T) {
	entry, err := parser.ParseWords("**bold text --- normal")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteDeckRow(&buf, entry))
	row := buf.String()
	assert.Contains(t, row, `<span style=""font-weight: bold;"">boldtext</div>`)
	assert.NotContains(t, row, "</span>")
}

func TestBuildersReportDuplicates(t *testing.T) {
	dir := t.TempDir()
	reg := registry.New()
	first := writeNotes(t, dir, "a.kanji", "山 [mountain]: サン\n")
	second := writeNotes(t, dir, "b.kanji", "川 [river]: セン\n山: サン[mountain]\n")

	b := NewKanjiBuilder(Options{Registry: reg})
	report, err := b.Build(context.Background(), first, filepath.Join(dir, "a"))
	require.NoError(t, err)
	assert.Empty(t, report.Duplicates)

	report, err = b.Build(context.Background(), second, filepath.Join(dir, "b"))
	require.NoError(t, err)
	assert.Equal(t, []string{"山"}, report.Duplicates)
	assert.Equal(t, 2, report.Written)

	source, ok := reg.Lookup("山")
	require.True(t, ok)
	assert.Equal(t, first+":1", source)
}

func TestExportJSON(t *testing.T) {
	dir := t.TempDir()
	input := writeNotes(t, dir, "n5.kanji", "山 [mountain]: サン\nnot a valid entry\n")

	doc, err := NewKanjiBuilder(Options{}).Load(input)
	require.NoError(t, err)

	path := filepath.Join(dir, "json", "n5.json")
	require.NoError(t, ExportJSON(doc, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.JSONEq(t, `{
		"records": [{
			"seq": 0,
			"line": 1,
			"source": "山 [mountain]: サン",
			"entry": {"type": "atomic", "character": "山", "translation": "mountain", "onyomi": ["サン"], "kunyomi": []}
		}],
		"failures": [{"line": 2, "source": "not a valid entry", "error": "line matches no entry pattern"}]
	}`, string(data))
}
