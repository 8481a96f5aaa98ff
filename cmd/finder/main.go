package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/CallMeChewy/Finder/internal/config"
	"github.com/CallMeChewy/Finder/internal/phrase"
	"github.com/CallMeChewy/Finder/internal/version"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCodeFor(err))
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:                   "finder",
		Usage:                  "Boolean phrase search across file sets",
		Version:                version.FullInfo(),
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path",
				Value:   ".finder.kdl",
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Directory to search (overrides config location lookup)",
				Value:   ".",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Run the formula against matching files",
				ArgsUsage: " ",
				Flags:     searchFlags(),
				Action:    searchCommand,
			},
			{
				Name:      "validate",
				Usage:     "Check a formula without searching",
				ArgsUsage: "<formula>",
				Flags: []cli.Flag{
					phraseFlag(),
					matchCaseFlag(),
					jsonFlag(),
				},
				Action: validateCommand,
			},
			{
				Name:   "examples",
				Usage:  "Show demonstration formulas, simplest first",
				Action: examplesCommand,
			},
			{
				Name:   "serve",
				Usage:  "Serve search and validation over MCP (stdio)",
				Action: serveCommand,
			},
			{
				Name:   "watch",
				Usage:  "Re-run the search whenever files under the root change",
				Flags: append(searchFlags(),
					&cli.IntFlag{
						Name:  "debounce-ms",
						Usage: "Quiet period after a change before re-running",
						Value: 500,
					},
				),
				Action: watchCommand,
			},
		},
	}
}

func searchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "formula",
			Aliases: []string{"f"},
			Usage:   "Boolean formula over A-F, e.g. \"A AND NOT B\"",
		},
		phraseFlag(),
		matchCaseFlag(),
		&cli.StringFlag{
			Name:    "mode",
			Aliases: []string{"m"},
			Usage:   "Matching granularity: line or document",
		},
		&cli.BoolFlag{
			Name:    "unique",
			Aliases: []string{"u"},
			Usage:   "Suppress repeats of identical matched text",
		},
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Glob patterns to search (e.g. --include '**/*.go')",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns to skip",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "Per-file worker pool size (0 = number of CPUs)",
		},
		jsonFlag(),
	}
}

func phraseFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:    "phrase",
		Aliases: []string{"p"},
		Usage:   "Bind a variable, e.g. --phrase A=import (repeatable)",
	}
}

func matchCaseFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:  "match-case",
		Usage: "Make a variable's phrase case-sensitive, e.g. --match-case B (repeatable)",
	}
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "json",
		Usage: "Emit JSON instead of text",
	}
}

// loadConfigWithOverrides loads .finder.kdl and applies CLI flag overrides on
// top, returning the effective config and search root.
func loadConfigWithOverrides(c *cli.Context) (*config.Config, string, error) {
	root := c.String("root")
	configPath := c.String("config")
	if root != "" && configPath == ".finder.kdl" {
		configPath = filepath.Join(root, ".finder.kdl")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, "", err
	}

	if c.IsSet("formula") {
		cfg.Search.Formula = c.String("formula")
	}
	if c.IsSet("mode") {
		cfg.Search.Mode = c.String("mode")
	}
	if c.IsSet("unique") {
		cfg.Search.Unique = c.Bool("unique")
	}
	if include := c.StringSlice("include"); len(include) > 0 {
		cfg.Files.Include = include
	}
	if exclude := c.StringSlice("exclude"); len(exclude) > 0 {
		cfg.Files.Exclude = append(cfg.Files.Exclude, exclude...)
	}
	if c.IsSet("workers") {
		cfg.Performance.Workers = c.Int("workers")
	}

	bindings, err := parsePhraseFlags(c.StringSlice("phrase"))
	if err != nil {
		return nil, "", err
	}
	cfg.Phrases = append(cfg.Phrases, bindings...)
	markCaseSensitive(cfg, c.StringSlice("match-case"))

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, root, nil
}

// parsePhraseFlags turns repeated "A=text" values into bindings.
func parsePhraseFlags(values []string) ([]phrase.Binding, error) {
	bindings := make([]phrase.Binding, 0, len(values))
	for _, value := range values {
		letter, text, found := strings.Cut(value, "=")
		if !found {
			return nil, fmt.Errorf("invalid --phrase %q: expected LETTER=text", value)
		}
		v, ok := phrase.ParseVariable(strings.TrimSpace(letter))
		if !ok {
			return nil, fmt.Errorf("invalid --phrase variable %q: use A-F", letter)
		}
		bindings = append(bindings, phrase.Binding{Variable: v, Text: text})
	}
	return bindings, nil
}

// markCaseSensitive applies --match-case letters to the merged binding list,
// so the flag works for config-sourced phrases too.
func markCaseSensitive(cfg *config.Config, letters []string) {
	for _, letter := range letters {
		v, ok := phrase.ParseVariable(strings.TrimSpace(letter))
		if !ok {
			continue
		}
		for i := range cfg.Phrases {
			if cfg.Phrases[i].Variable == v {
				cfg.Phrases[i].CaseSensitive = true
			}
		}
	}
}
