package deck

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"kanji-cards/internal/parser"
	"kanji-cards/internal/render"

	"github.com/rs/zerolog/log"
)

// KanjiBuilder writes one card file per kanji entry into a directory.
type KanjiBuilder struct {
	opts Options
}

func NewKanjiBuilder(opts Options) *KanjiBuilder {
	if opts.SeqWidth < 1 {
		opts.SeqWidth = 3
	}
	return &KanjiBuilder{opts: opts}
}

func (b *KanjiBuilder) Name() string { return "kanji" }

func (b *KanjiBuilder) CanBuild(ext string) bool {
	return ext == ".kanji"
}

func (b *KanjiBuilder) OutputPath(input, outDir string) string {
	return filepath.Join(outDir, stem(input))
}

// Load parses a kanji notes file.
func (b *KanjiBuilder) Load(input string) (*parser.Document[parser.KanjiEntry], error) {
	return loadDocument(input, parser.ParseKanji)
}

func (b *KanjiBuilder) Build(ctx context.Context, input, output string) (*Report, error) {
	doc, err := b.Load(input)
	if err != nil {
		return nil, err
	}
	report := &Report{Pipeline: b.Name(), Input: input, Output: output, Failures: doc.Failures}
	return report, b.Write(ctx, doc, report)
}

// CardName is the file name of the card at sequence position seq.
func (b *KanjiBuilder) CardName(seq int, name string) string {
	return fmt.Sprintf("%0*d %s.txt", b.opts.SeqWidth, seq, name)
}

// Write renders every record of doc into report.Output, which is created
// if missing. Each card file holds the name, the translation and the
// table, each followed by CRLF.
func (b *KanjiBuilder) Write(ctx context.Context, doc *parser.Document[parser.KanjiEntry], report *Report) error {
	if err := os.MkdirAll(report.Output, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	for _, rec := range doc.Records {
		if err := ctx.Err(); err != nil {
			return err
		}

		fields := render.KanjiFields(rec.Entry)
		claim(b.opts.Registry, report, fields.DisplayName, rec.Line)

		var card strings.Builder
		card.WriteString(fields.DisplayName + "\r\n")
		card.WriteString(fields.DisplayTranslation + "\r\n")
		card.WriteString(render.KanjiTable(rec.Entry) + "\r\n")

		path := filepath.Join(report.Output, b.CardName(rec.Seq, fields.DisplayName))
		if err := os.WriteFile(path, []byte(card.String()), 0644); err != nil {
			return fmt.Errorf("write card %s: %w", path, err)
		}
		report.Written++

		log.Debug().Str("path", path).Int("line", rec.Line).Msg("Card written")
	}
	return nil
}
