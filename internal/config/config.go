// Package config loads the .finder.kdl configuration file. Every setting has
// a CLI flag override; the file only provides defaults for repeated runs.
package config

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/CallMeChewy/Finder/internal/extract"
	"github.com/CallMeChewy/Finder/internal/phrase"
)

// MaxWorkers caps the per-file worker pool.
const MaxWorkers = 256

type Config struct {
	Phrases     []phrase.Binding
	Search      Search
	Files       Files
	Performance Performance
}

type Search struct {
	Formula string
	Mode    string
	Unique  bool
}

type Files struct {
	Include     []string
	Exclude     []string
	MaxFileSize int64
}

type Performance struct {
	Workers int // 0 = auto-detect (GOMAXPROCS)
}

// Default returns the configuration used when no .finder.kdl exists.
func Default() *Config {
	return &Config{
		Search: Search{Mode: "line"},
		Files: Files{
			Include:     []string{"**/*"},
			Exclude:     []string{"**/.git/**"},
			MaxFileSize: 10 * 1024 * 1024,
		},
	}
}

// Validate checks value ranges and pattern syntax. Phrase letters are
// validated at parse time and cannot be invalid here.
func (c *Config) Validate() error {
	if _, err := extract.ParseMode(c.Search.Mode); err != nil {
		return fmt.Errorf("search mode: %w", err)
	}
	if c.Performance.Workers < 0 || c.Performance.Workers > MaxWorkers {
		return fmt.Errorf("performance workers must be between 0 and %d, got %d", MaxWorkers, c.Performance.Workers)
	}
	if c.Files.MaxFileSize < 0 {
		return fmt.Errorf("files max_file_size must not be negative, got %d", c.Files.MaxFileSize)
	}
	for _, pattern := range append(append([]string{}, c.Files.Include...), c.Files.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid glob pattern %q", pattern)
		}
	}
	return nil
}

// PhraseSet builds the immutable binding set from the configured phrases.
func (c *Config) PhraseSet() phrase.Set {
	return phrase.NewSet(c.Phrases)
}
