package display

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CallMeChewy/Finder/internal/engine"
	"github.com/CallMeChewy/Finder/internal/errors"
	"github.com/CallMeChewy/Finder/internal/formula"
)

func sampleResult() engine.Result {
	return engine.Result{
		Matches: []engine.Match{
			{File: "f1.txt", SequenceIndex: 1, Text: "import os", FirstOccurrence: true},
			{File: "f2.txt", SequenceIndex: 3, Text: "import os", FirstOccurrence: false},
		},
		Skipped:       []errors.SkippedFile{{Path: "bad.bin", Reason: "binary content"}},
		FilesSearched: 2,
	}
}

func TestWriteMatches(t *testing.T) {
	var buf bytes.Buffer
	WriteMatches(&buf, sampleResult())
	out := buf.String()

	assert.Contains(t, out, "f1.txt:1: import os\n")
	assert.Contains(t, out, "f2.txt:3: import os [repeat]\n")
	assert.Contains(t, out, "skipped bad.bin: binary content")
	assert.Contains(t, out, "2 match(es) in 2 file(s), 1 skipped")
}

func TestWriteMatchesJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMatchesJSON(&buf, sampleResult()))

	var decoded struct {
		Matches []engine.Match `json:"matches"`
		Skipped []struct {
			Path string `json:"path"`
		} `json:"skipped"`
		FilesSearched int `json:"files_searched"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Matches, 2)
	assert.Equal(t, "f1.txt", decoded.Matches[0].File)
	assert.False(t, decoded.Matches[1].FirstOccurrence)
	require.Len(t, decoded.Skipped, 1)
	assert.Equal(t, 2, decoded.FilesSearched)
}

func TestWriteMatchesJSONEmptyResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMatchesJSON(&buf, engine.Result{}))
	assert.Contains(t, buf.String(), `"matches": []`, "empty result still emits an array")
}

func TestWriteReport(t *testing.T) {
	t.Run("clean", func(t *testing.T) {
		var buf bytes.Buffer
		WriteReport(&buf, errors.Report{})
		assert.Equal(t, "formula is valid\n", buf.String())
	})

	t.Run("errors_before_warnings", func(t *testing.T) {
		var report errors.Report
		report.AddWarning(errors.IssueTautology, 0, "always true")
		report.AddError(errors.IssueSyntax, 2, "unbalanced grouping")

		var buf bytes.Buffer
		WriteReport(&buf, report)
		out := buf.String()
		assert.Less(t, strings.Index(out, "error:"), strings.Index(out, "warning:"))
		assert.Contains(t, out, "error: unbalanced grouping (position 2)")
		assert.Contains(t, out, "warning: always true")
	})
}

func TestWriteReportJSON(t *testing.T) {
	var report errors.Report
	report.AddError(errors.IssueNoVariables, 0, "no variables")

	var buf bytes.Buffer
	require.NoError(t, WriteReportJSON(&buf, report))

	var decoded struct {
		Valid    bool     `json:"valid"`
		Errors   []string `json:"errors"`
		Warnings []string `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.False(t, decoded.Valid)
	assert.Equal(t, []string{"no variables"}, decoded.Errors)
	assert.NotNil(t, decoded.Warnings)
}

func TestWriteExamples(t *testing.T) {
	var buf bytes.Buffer
	WriteExamples(&buf, formula.Examples())
	out := buf.String()
	assert.Contains(t, out, "Level 1:")
	assert.Contains(t, out, "Level 5:")
	assert.Contains(t, out, "formula: A AND B")
}
