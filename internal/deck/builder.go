// Package deck writes flashcard artifacts for parsed notes files.
package deck

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"kanji-cards/internal/parser"
	"kanji-cards/internal/registry"
	"kanji-cards/internal/textutil"

	"github.com/rs/zerolog/log"
)

// Report summarises one built notes file.
type Report struct {
	Pipeline   string
	Input      string
	Output     string
	Written    int
	Failures   []*parser.LineError
	Duplicates []string
}

// Builder is implemented by each pipeline.
type Builder interface {
	// Name identifies the pipeline in logs and reports.
	Name() string
	// CanBuild returns true if this builder handles the given file extension.
	CanBuild(ext string) bool
	// OutputPath returns where the artifact for input goes under outDir.
	OutputPath(input, outDir string) string
	// Build parses input and writes its artifact to output.
	Build(ctx context.Context, input, output string) (*Report, error)
}

// Options are shared by all builders.
type Options struct {
	// SeqWidth is the zero-padded width of kanji card numbers.
	SeqWidth int
	// Registry, if set, collects card names across builds to report
	// duplicates.
	Registry *registry.Registry
}

func loadDocument[E any](path string, parse func(string) (E, error)) (*parser.Document[E], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open notes file: %w", err)
	}
	defer f.Close()

	doc, err := parser.ParseDocument(f, parse)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	for _, failure := range doc.Failures {
		log.Warn().
			Err(failure.Err).
			Str("file", path).
			Int("line", failure.Line).
			Str("text", textutil.Truncate(strings.TrimSpace(failure.Source), 40)).
			Msg("Malformed line, skipping")
	}
	return doc, nil
}

// claim records a card name and logs when another line already used it.
func claim(reg *registry.Registry, report *Report, name string, line int) {
	if reg == nil {
		return
	}
	source := fmt.Sprintf("%s:%d", report.Input, line)
	if first, dup := reg.Claim(name, source); dup {
		report.Duplicates = append(report.Duplicates, name)
		log.Warn().Str("name", name).Str("at", source).Str("first", first).Msg("Duplicate card")
	}
}

// ExportJSON writes a parsed document as indented JSON.
func ExportJSON(doc any, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create JSON directory: %w", err)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create JSON file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	log.Info().Str("path", outputPath).Msg("Exported parsed notes to JSON")
	return nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
