package deck

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"kanji-cards/internal/parser"
	"kanji-cards/internal/render"

	"github.com/rs/zerolog/log"
)

// WordBuilder writes all word entries of a notes file into one
// tab-separated deck file.
type WordBuilder struct {
	opts Options
}

func NewWordBuilder(opts Options) *WordBuilder {
	return &WordBuilder{opts: opts}
}

func (b *WordBuilder) Name() string { return "words" }

func (b *WordBuilder) CanBuild(ext string) bool {
	return ext == ".words"
}

func (b *WordBuilder) OutputPath(input, outDir string) string {
	return filepath.Join(outDir, stem(input)+".tsv")
}

// Load parses a words notes file.
func (b *WordBuilder) Load(input string) (*parser.Document[*parser.WordEntry], error) {
	return loadDocument(input, parser.ParseWords)
}

func (b *WordBuilder) Build(ctx context.Context, input, output string) (*Report, error) {
	doc, err := b.Load(input)
	if err != nil {
		return nil, err
	}
	report := &Report{Pipeline: b.Name(), Input: input, Output: output, Failures: doc.Failures}
	return report, b.Write(ctx, doc, report)
}

// Write creates the deck file at report.Output.
func (b *WordBuilder) Write(ctx context.Context, doc *parser.Document[*parser.WordEntry], report *Report) error {
	if err := os.MkdirAll(filepath.Dir(report.Output), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.Create(report.Output)
	if err != nil {
		return fmt.Errorf("create deck file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, rec := range doc.Records {
		if err := ctx.Err(); err != nil {
			return err
		}

		fields := render.WordFields(rec.Entry)
		claim(b.opts.Registry, report, fields.DisplayName, rec.Line)

		if err := WriteDeckRow(w, rec.Entry); err != nil {
			return fmt.Errorf("write deck row: %w", err)
		}
		report.Written++
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush deck file: %w", err)
	}

	log.Debug().Str("path", report.Output).Int("rows", report.Written).Msg("Deck written")
	return nil
}

// WriteDeckRow writes one deck line: the writing, the translation and the
// quoted card face, tab-separated and CRLF-terminated. Newlines in the card
// face are removed and quotes doubled.
func WriteDeckRow(w io.Writer, entry *parser.WordEntry) error {
	fields := render.WordFields(entry)
	card := render.WordCard(entry)
	card = strings.ReplaceAll(card, "\n", "")
	card = strings.ReplaceAll(card, `"`, `""`)

	_, err := fmt.Fprintf(w, "<div>%s</div>\t%s\t\"%s\"\t\r\n", fields.DisplayName, fields.DisplayTranslation, card)
	return err
}
