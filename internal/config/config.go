package config

import (
	"fmt"
	"slices"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Workers   int    `env:"KANJI_CARDS_WORKERS"    env-default:"4"       env-description:"note files processed concurrently by build"`
	SeqWidth  int    `env:"KANJI_CARDS_SEQ_WIDTH"  env-default:"3"       env-description:"zero-padded width of kanji card numbers"`
	LogLevel  string `env:"KANJI_CARDS_LOG_LEVEL"  env-default:"info"    env-description:"trace, debug, info, warn or error"`
	LogFormat string `env:"KANJI_CARDS_LOG_FORMAT" env-default:"console" env-description:"console or json"`
}

var logFormats = []string{"console", "json"}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("KANJI_CARDS_WORKERS must be at least 1, got %d", c.Workers)
	}
	if c.SeqWidth < 1 || c.SeqWidth > 9 {
		return fmt.Errorf("KANJI_CARDS_SEQ_WIDTH must be between 1 and 9, got %d", c.SeqWidth)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("KANJI_CARDS_LOG_LEVEL: %w", err)
	}
	if !slices.Contains(logFormats, c.LogFormat) {
		return fmt.Errorf("KANJI_CARDS_LOG_FORMAT must be one of %v, got %q", logFormats, c.LogFormat)
	}
	return nil
}

// Level returns the parsed log level. Validate has already checked it.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Usage describes every supported environment variable.
func Usage() string {
	var cfg Config
	header := "Environment variables:"
	usage, err := cleanenv.GetDescription(&cfg, &header)
	if err != nil {
		return header
	}
	return usage
}
