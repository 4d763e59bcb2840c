package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"kanji-cards/internal/config"
	"kanji-cards/internal/deck"
	"kanji-cards/internal/filewalker"
	"kanji-cards/internal/grammar"
	"kanji-cards/internal/parser"
	"kanji-cards/internal/registry"
	"kanji-cards/internal/textutil"
	"kanji-cards/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// errMalformed is returned by check when the notes file has bad lines.
var errMalformed = errors.New("notes file has malformed lines")

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kanji-cards",
		Short: "Turn kanji and vocabulary notes into flashcards",
		Long: `Parses line-oriented kanji and vocabulary notes and writes flashcard
artifacts: one HTML card file per kanji and a tab-separated deck for words.

` + config.Usage(),
		SilenceUsage: true,
	}

	rootCmd.AddCommand(kanjiCmd())
	rootCmd.AddCommand(wordsCmd())
	rootCmd.AddCommand(buildCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(grammarCmd())

	return rootCmd
}

func kanjiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kanji <input-file> <output-dir>",
		Short: "Write one card file per kanji entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonPath, _ := cmd.Flags().GetString("json")
			return runKanji(args[0], args[1], jsonPath)
		},
	}
	cmd.Flags().String("json", "", "Also export the parsed notes as JSON to this path")
	return cmd
}

func wordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words <input-file> <card-file>",
		Short: "Write a tab-separated deck of word cards",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonPath, _ := cmd.Flags().GetString("json")
			return runWords(args[0], args[1], jsonPath)
		},
	}
	cmd.Flags().String("json", "", "Also export the parsed notes as JSON to this path")
	return cmd
}

func buildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build <input-dir> <output-dir>",
		Short: "Build every .kanji and .words file under a directory",
		Long: `Walks input-dir for notes files and builds them concurrently.
Kanji files are written to <output-dir>/<name>/, word files to
<output-dir>/<name>.tsv. Card names repeated across files are reported.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(args[0], args[1])
		},
	}
}

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <input-file>",
		Short: "Parse a notes file and report malformed lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _ := cmd.Flags().GetString("kind")
			return runCheck(args[0], kind)
		},
	}
	cmd.Flags().String("kind", "", "Notes kind: kanji or words (default: from the file extension)")
	return cmd
}

func grammarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grammar",
		Short: "Print the accepted line grammar",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), grammar.Describe())
		},
	}
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			log.Warn().Msg("Received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// loadConfig reads the configuration and applies its logging settings.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	zerolog.SetGlobalLevel(cfg.Level())
	if cfg.LogFormat == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	return cfg, nil
}

// runKanji handles the `kanji` command.
func runKanji(input, outputDir, jsonPath string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	b := deck.NewKanjiBuilder(deck.Options{SeqWidth: cfg.SeqWidth, Registry: registry.New()})
	doc, err := b.Load(input)
	if err != nil {
		return err
	}

	if jsonPath != "" {
		if err := deck.ExportJSON(doc, jsonPath); err != nil {
			return fmt.Errorf("export JSON: %w", err)
		}
	}

	report := &deck.Report{Pipeline: b.Name(), Input: input, Output: outputDir, Failures: doc.Failures}
	if err := b.Write(ctx, doc, report); err != nil {
		return err
	}

	logReport(report)
	return nil
}

// runWords handles the `words` command.
func runWords(input, cardFile, jsonPath string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	b := deck.NewWordBuilder(deck.Options{SeqWidth: cfg.SeqWidth, Registry: registry.New()})
	doc, err := b.Load(input)
	if err != nil {
		return err
	}

	if jsonPath != "" {
		if err := deck.ExportJSON(doc, jsonPath); err != nil {
			return fmt.Errorf("export JSON: %w", err)
		}
	}

	report := &deck.Report{Pipeline: b.Name(), Input: input, Output: cardFile, Failures: doc.Failures}
	if err := b.Write(ctx, doc, report); err != nil {
		return err
	}

	logReport(report)
	return nil
}

// runBuild handles the `build` command.
func runBuild(inputDir, outputDir string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	reg := registry.New()
	w := filewalker.NewWalker(deck.Options{SeqWidth: cfg.SeqWidth, Registry: reg})
	entries, err := w.Walk(inputDir)
	if err != nil {
		return fmt.Errorf("walk input directory: %w", err)
	}

	log.Info().Int("files", len(entries)).Int("workers", cfg.Workers).Msg("Starting build")

	pool := worker.NewPool[filewalker.FileEntry, *deck.Report](cfg.Workers,
		func(ctx context.Context, entry filewalker.FileEntry) (*deck.Report, error) {
			return w.BuildFile(ctx, entry, outputDir)
		},
	)
	tasks := pool.Execute(ctx, entries)

	var written, failures, duplicates, failedFiles int
	for _, task := range tasks {
		if !task.Done {
			continue
		}
		if task.Err != nil {
			failedFiles++
			log.Error().Err(task.Err).Str("file", task.Input.Path).Msg("Build failed")
			continue
		}
		logReport(task.Result)
		written += task.Result.Written
		failures += len(task.Result.Failures)
		duplicates += len(task.Result.Duplicates)
	}

	log.Info().
		Int("files", len(entries)).
		Int("cards", written).
		Int("malformed", failures).
		Int("duplicates", duplicates).
		Int("distinct", reg.Len()).
		Str("output", outputDir).
		Msg("Build complete")

	if err := ctx.Err(); err != nil {
		return err
	}
	if failedFiles > 0 {
		return fmt.Errorf("%d of %d files failed to build", failedFiles, len(entries))
	}
	return nil
}

// runCheck handles the `check` command.
func runCheck(input, kind string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	if kind == "" {
		kind = kindFor(input)
	}

	var failures []*parser.LineError
	var records int
	switch kind {
	case "kanji":
		doc, err := deck.NewKanjiBuilder(deck.Options{}).Load(input)
		if err != nil {
			return err
		}
		failures, records = doc.Failures, len(doc.Records)
	case "words":
		doc, err := deck.NewWordBuilder(deck.Options{}).Load(input)
		if err != nil {
			return err
		}
		failures, records = doc.Failures, len(doc.Records)
	default:
		return fmt.Errorf("cannot tell notes kind of %s, use --kind kanji or --kind words", input)
	}

	log.Info().
		Str("file", input).
		Str("kind", kind).
		Int("entries", records).
		Int("malformed", len(failures)).
		Msg("Check complete")

	if len(failures) > 0 {
		return fmt.Errorf("%s: %w: %d", input, errMalformed, len(failures))
	}
	return nil
}

// kindFor guesses the notes kind from the file extension.
func kindFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".kanji":
		return "kanji"
	case ".words":
		return "words"
	}
	return ""
}

func logReport(r *deck.Report) {
	event := log.Info()
	if len(r.Failures) > 0 {
		event = log.Warn()
	}
	event.
		Str("pipeline", r.Pipeline).
		Str("input", textutil.Truncate(r.Input, 80)).
		Str("output", r.Output).
		Int("written", r.Written).
		Int("malformed", len(r.Failures)).
		Int("duplicates", len(r.Duplicates)).
		Msg("Notes file built")
}
