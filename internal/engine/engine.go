// Package engine orchestrates a search run: it gates on formula validation,
// fans per-file work out over a bounded worker pool, and merges results back
// in input order with run-wide unique-text tracking.
package engine

import (
	"context"
	"runtime"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/CallMeChewy/Finder/internal/errors"
	"github.com/CallMeChewy/Finder/internal/extract"
	"github.com/CallMeChewy/Finder/internal/formula"
	"github.com/CallMeChewy/Finder/internal/phrase"
)

// Input is one candidate file, already resolved and read by the caller. A
// non-nil Err marks a file whose read failed; the engine skips it and reports
// the path instead of aborting the run.
type Input struct {
	Path string
	Text string
	Err  error
}

// Match is one unit where the formula evaluated true. FirstOccurrence is true
// the first time this normalized unit text appears anywhere in the run.
type Match struct {
	File            string `json:"file"`
	SequenceIndex   int    `json:"sequence_index"`
	Text            string `json:"text"`
	FirstOccurrence bool   `json:"first_occurrence"`
}

// Options configures a run.
type Options struct {
	Mode       extract.Mode
	UniqueOnly bool
	// Workers bounds the per-file worker pool; 0 means GOMAXPROCS.
	Workers int
}

// Result is the outcome of a completed (or cancelled) run. Matches are in
// strict file order, then unit order within each file.
type Result struct {
	Matches       []Match
	Skipped       []errors.SkippedFile
	Report        errors.Report
	FilesSearched int
}

// candidate is a match before unique tracking assigns its occurrence flag.
type candidate struct {
	sequenceIndex int
	text          string
}

type fileResult struct {
	path       string
	candidates []candidate
	skipped    *errors.SkippedFile
	done       bool
}

// Run executes the formula against the given files.
//
// Validation runs once, before any file is touched: an invalid formula yields
// *errors.FormulaInvalidError and no partial results. An empty binding set
// yields *errors.NoPhrasesError. An empty file list is a valid run with an
// empty result.
//
// Per-file work is independent and runs on up to Options.Workers goroutines;
// results are buffered per file and emitted in input order regardless of
// completion order. Cancellation is honored at file granularity: on a
// cancelled context Run returns ctx's error together with the ordered matches
// of the files that completed before the cut.
func Run(ctx context.Context, files []Input, node formula.Node, set phrase.Set, opts Options) (Result, error) {
	if set.Empty() {
		return Result{}, &errors.NoPhrasesError{}
	}
	report := formula.Validate(node, set)
	if !report.Valid() {
		return Result{}, &errors.FormulaInvalidError{Report: report}
	}
	result := Result{Report: report}
	if len(files) == 0 {
		return result, nil
	}

	vars := formula.Variables(node)
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	perFile := make([]fileResult, len(files))
	g := new(errgroup.Group)
	g.SetLimit(workers)
	cancelled := false
	for i := range files {
		if ctx.Err() != nil {
			cancelled = true
			break
		}
		g.Go(func() error {
			perFile[i] = searchFile(files[i], node, set, vars, opts.Mode)
			return nil
		})
	}
	_ = g.Wait() // workers only report through perFile

	merge(&result, perFile, set.AnyCaseSensitive(vars), opts.UniqueOnly)
	if cancelled {
		return result, ctx.Err()
	}
	return result, nil
}

func searchFile(in Input, node formula.Node, set phrase.Set, vars []phrase.Variable, mode extract.Mode) fileResult {
	if in.Err != nil {
		return fileResult{
			path:    in.Path,
			skipped: &errors.SkippedFile{Path: in.Path, Reason: in.Err.Error()},
			done:    true,
		}
	}
	var candidates []candidate
	for unit := range extract.Units(in.Text, mode) {
		presence := extract.Presence(unit.Text, set, vars)
		if formula.Evaluate(node, presence) {
			candidates = append(candidates, candidate{sequenceIndex: unit.SequenceIndex, text: unit.Text})
		}
	}
	return fileResult{path: in.Path, candidates: candidates, done: true}
}

// merge emits per-file results in input order. Unique tracking spans the
// whole run and is applied here, in emission order, so the flag is
// deterministic no matter how the parallel work completed. The dedup key is
// the unit text, lowercased unless any variable the formula references is
// bound case-sensitively.
func merge(result *Result, perFile []fileResult, caseSensitive, uniqueOnly bool) {
	seen := make(map[uint64]struct{})
	for _, fr := range perFile {
		if !fr.done {
			// A cancelled run stops at the first file that never ran,
			// keeping the emitted prefix ordered and complete.
			break
		}
		if fr.skipped != nil {
			result.Skipped = append(result.Skipped, *fr.skipped)
			continue
		}
		result.FilesSearched++
		for _, c := range fr.candidates {
			key := c.text
			if !caseSensitive {
				key = strings.ToLower(key)
			}
			sum := xxhash.Sum64String(key)
			_, dup := seen[sum]
			if !dup {
				seen[sum] = struct{}{}
			}
			if uniqueOnly && dup {
				continue
			}
			result.Matches = append(result.Matches, Match{
				File:            fr.path,
				SequenceIndex:   c.sequenceIndex,
				Text:            c.text,
				FirstOccurrence: !dup,
			})
		}
	}
}
