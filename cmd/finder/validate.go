package main

import (
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/CallMeChewy/Finder/internal/display"
	"github.com/CallMeChewy/Finder/internal/formula"
	"github.com/CallMeChewy/Finder/internal/phrase"
)

func validateCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("usage: finder validate <formula>", exitUsage)
	}
	formulaText := strings.Join(c.Args().Slice(), " ")

	bindings, err := parsePhraseFlags(c.StringSlice("phrase"))
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}
	for _, letter := range c.StringSlice("match-case") {
		if v, ok := phrase.ParseVariable(strings.TrimSpace(letter)); ok {
			for i := range bindings {
				if bindings[i].Variable == v {
					bindings[i].CaseSensitive = true
				}
			}
		}
	}

	report := formula.ValidateText(formulaText, phrase.NewSet(bindings))
	if c.Bool("json") {
		if err := display.WriteReportJSON(os.Stdout, report); err != nil {
			return err
		}
	} else {
		display.WriteReport(os.Stdout, report)
	}
	if !report.Valid() {
		return cli.Exit("", exitFormula)
	}
	return nil
}

func examplesCommand(c *cli.Context) error {
	display.WriteExamples(os.Stdout, formula.Examples())
	return nil
}
