package filewalker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"kanji-cards/internal/deck"

	"github.com/rs/zerolog/log"
)

// SupportedExtensions lists note file types handled by the tool.
var SupportedExtensions = map[string]bool{
	".kanji": true,
	".words": true,
}

// Walker traverses directories and dispatches notes files to the correct
// builder.
type Walker struct {
	builders []deck.Builder
}

// NewWalker creates a Walker with the kanji and words builders.
func NewWalker(opts deck.Options) *Walker {
	return &Walker{
		builders: []deck.Builder{
			deck.NewKanjiBuilder(opts),
			deck.NewWordBuilder(opts),
		},
	}
}

// FileEntry represents a discovered notes file ready for building.
type FileEntry struct {
	Path    string
	Ext     string
	Builder deck.Builder
}

// Walk discovers all supported files under the given root directory, in
// lexical order.
func (w *Walker) Walk(root string) ([]FileEntry, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	var entries []FileEntry

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !SupportedExtensions[ext] {
			return nil
		}

		if b := w.BuilderFor(ext); b != nil {
			entries = append(entries, FileEntry{
				Path:    path,
				Ext:     ext,
				Builder: b,
			})
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	log.Info().Int("count", len(entries)).Str("root", root).Msg("Discovered notes files")
	return entries, nil
}

// BuilderFor returns the builder handling ext, or nil.
func (w *Walker) BuilderFor(ext string) deck.Builder {
	for _, b := range w.builders {
		if b.CanBuild(ext) {
			return b
		}
	}
	return nil
}

// BuildFile builds a single notes file with its builder, writing the
// artifact under outDir.
func (w *Walker) BuildFile(ctx context.Context, entry FileEntry, outDir string) (*deck.Report, error) {
	return entry.Builder.Build(ctx, entry.Path, entry.Builder.OutputPath(entry.Path, outDir))
}
