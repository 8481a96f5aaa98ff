package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/CallMeChewy/Finder/internal/config"
	"github.com/CallMeChewy/Finder/internal/display"
	"github.com/CallMeChewy/Finder/internal/engine"
	"github.com/CallMeChewy/Finder/internal/errors"
	"github.com/CallMeChewy/Finder/internal/extract"
	"github.com/CallMeChewy/Finder/internal/files"
	"github.com/CallMeChewy/Finder/internal/formula"
	"github.com/CallMeChewy/Finder/internal/phrase"
)

// Exit codes: 0 for a completed run (with or without matches), 1 for
// usage/config problems, 2 for formula problems.
const (
	exitUsage   = 1
	exitFormula = 2
)

func exitCodeFor(err error) int {
	var parseErr *errors.ParseError
	var invalid *errors.FormulaInvalidError
	if stderrors.As(err, &parseErr) || stderrors.As(err, &invalid) {
		return exitFormula
	}
	if exitErr, ok := err.(cli.ExitCoder); ok {
		return exitErr.ExitCode()
	}
	return exitUsage
}

func searchCommand(c *cli.Context) error {
	cfg, root, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := runSearch(ctx, cfg, root)
	if err != nil {
		var noFiles *errors.NoFilesError
		if stderrors.As(err, &noFiles) {
			// Reported, not fatal: an empty selection is an answer.
			fmt.Fprintln(os.Stderr, noFiles.Error())
			return nil
		}
		return err
	}

	if c.Bool("json") {
		return display.WriteMatchesJSON(os.Stdout, result)
	}
	for _, warning := range result.Report.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}
	display.WriteMatches(os.Stdout, result)
	return nil
}

// runSearch executes one full search with the effective configuration:
// choose the formula, parse it, resolve and read the files, run the engine.
func runSearch(ctx context.Context, cfg *config.Config, root string) (engine.Result, error) {
	set := cfg.PhraseSet()

	formulaText := cfg.Search.Formula
	if formulaText == "" {
		// No formula given: AND together every bound phrase.
		formulaText = phrase.AutoFormula(set)
	}
	if formulaText == "" {
		return engine.Result{}, &errors.NoPhrasesError{}
	}
	node, err := formula.Parse(formulaText)
	if err != nil {
		return engine.Result{}, err
	}

	mode, err := extract.ParseMode(cfg.Search.Mode)
	if err != nil {
		return engine.Result{}, err
	}

	paths, err := files.Resolve(root, cfg.Files.Include, cfg.Files.Exclude, cfg.Files.MaxFileSize)
	if err != nil {
		return engine.Result{}, err
	}

	return engine.Run(ctx, files.ReadAll(root, paths), node, set, engine.Options{
		Mode:       mode,
		UniqueOnly: cfg.Search.Unique,
		Workers:    cfg.Performance.Workers,
	})
}
