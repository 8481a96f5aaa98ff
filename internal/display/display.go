// Package display renders search results and validation reports for the CLI,
// in plain text or JSON.
package display

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/CallMeChewy/Finder/internal/engine"
	"github.com/CallMeChewy/Finder/internal/errors"
	"github.com/CallMeChewy/Finder/internal/formula"
)

// WriteMatches prints one line per match followed by a run summary. Repeat
// occurrences are marked so unique-mode output stays self-explanatory when
// uniqueness filtering is off.
func WriteMatches(w io.Writer, result engine.Result) {
	for _, m := range result.Matches {
		marker := ""
		if !m.FirstOccurrence {
			marker = " [repeat]"
		}
		fmt.Fprintf(w, "%s:%d: %s%s\n", m.File, m.SequenceIndex, m.Text, marker)
	}
	for _, s := range result.Skipped {
		fmt.Fprintf(w, "skipped %s\n", s)
	}
	fmt.Fprintf(w, "\n%d match(es) in %d file(s)", len(result.Matches), result.FilesSearched)
	if len(result.Skipped) > 0 {
		fmt.Fprintf(w, ", %d skipped", len(result.Skipped))
	}
	fmt.Fprintln(w)
}

type jsonResult struct {
	Matches       []engine.Match `json:"matches"`
	Skipped       []jsonSkip     `json:"skipped,omitempty"`
	Warnings      []string       `json:"warnings,omitempty"`
	FilesSearched int            `json:"files_searched"`
}

type jsonSkip struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// WriteMatchesJSON emits the whole result as a single JSON document.
func WriteMatchesJSON(w io.Writer, result engine.Result) error {
	out := jsonResult{
		Matches:       result.Matches,
		FilesSearched: result.FilesSearched,
	}
	if out.Matches == nil {
		out.Matches = []engine.Match{}
	}
	for _, s := range result.Skipped {
		out.Skipped = append(out.Skipped, jsonSkip{Path: s.Path, Reason: s.Reason})
	}
	for _, warning := range result.Report.Warnings {
		out.Warnings = append(out.Warnings, warning.String())
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// WriteReport prints a validation report, errors before warnings.
func WriteReport(w io.Writer, report errors.Report) {
	if report.Valid() && len(report.Warnings) == 0 {
		fmt.Fprintln(w, "formula is valid")
		return
	}
	for _, issue := range report.Errors {
		fmt.Fprintf(w, "error: %s\n", issue)
	}
	for _, issue := range report.Warnings {
		fmt.Fprintf(w, "warning: %s\n", issue)
	}
}

type jsonReport struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// WriteReportJSON emits a validation report as JSON.
func WriteReportJSON(w io.Writer, report errors.Report) error {
	out := jsonReport{Valid: report.Valid(), Errors: []string{}, Warnings: []string{}}
	for _, issue := range report.Errors {
		out.Errors = append(out.Errors, issue.String())
	}
	for _, issue := range report.Warnings {
		out.Warnings = append(out.Warnings, issue.String())
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// WriteExamples prints the demonstration formulas with their phrase setup.
func WriteExamples(w io.Writer, examples []formula.Example) {
	for i, ex := range examples {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "Level %d: %s\n", ex.Level, ex.Name)
		for _, b := range ex.Bindings {
			caseNote := "case-insensitive"
			if b.CaseSensitive {
				caseNote = "case-sensitive"
			}
			fmt.Fprintf(w, "  %s = %q (%s)\n", b.Variable, b.Text, caseNote)
		}
		fmt.Fprintf(w, "  formula: %s\n", ex.Formula)
		fmt.Fprintf(w, "  %s\n", ex.Note)
	}
}
