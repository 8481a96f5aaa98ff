package errors

import (
	"fmt"
	"strings"
)

// ParseErrorKind classifies lexical and grammatical formula defects.
type ParseErrorKind string

const (
	ParseUnbalancedGrouping   ParseErrorKind = "unbalanced_grouping"
	ParseUnexpectedToken      ParseErrorKind = "unexpected_token"
	ParseEmptyFormula         ParseErrorKind = "empty_formula"
	ParseConsecutiveOperators ParseErrorKind = "consecutive_operators"
	ParseDanglingOperator     ParseErrorKind = "dangling_operator"
)

// ParseError represents a formula that could not be parsed. Position is the
// 1-based rune position of the offending token, or 0 when no single position
// applies (e.g. an empty formula).
type ParseError struct {
	Kind     ParseErrorKind
	Position int
	Token    string
	Message  string
	Hint     string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Position > 0 {
		fmt.Fprintf(&b, " at position %d", e.Position)
	}
	if e.Token != "" {
		fmt.Fprintf(&b, " (near %q)", e.Token)
	}
	if e.Hint != "" {
		b.WriteString(" - ")
		b.WriteString(e.Hint)
	}
	return b.String()
}

// NewParseError creates a parse error with context.
func NewParseError(kind ParseErrorKind, position int, message string) *ParseError {
	return &ParseError{Kind: kind, Position: position, Message: message}
}

// WithToken attaches the offending token text.
func (e *ParseError) WithToken(token string) *ParseError {
	e.Token = token
	return e
}

// WithHint attaches an actionable suggestion.
func (e *ParseError) WithHint(hint string) *ParseError {
	e.Hint = hint
	return e
}

// IssueKind classifies validation findings.
type IssueKind string

const (
	IssueSyntax            IssueKind = "syntax"
	IssueNoVariables       IssueKind = "no_variables"
	IssueUndefinedVariable IssueKind = "undefined_variable"
	IssueTautology         IssueKind = "tautology"
	IssueParadox           IssueKind = "paradox"
)

// Issue is a single validation finding. Position follows the same 1-based
// convention as ParseError.
type Issue struct {
	Kind     IssueKind
	Message  string
	Position int
}

func (i Issue) String() string {
	if i.Position > 0 {
		return fmt.Sprintf("%s (position %d)", i.Message, i.Position)
	}
	return i.Message
}

// Report is the outcome of validating a formula. A report with any error
// means the formula is unusable; warnings never block evaluation.
type Report struct {
	Errors   []Issue
	Warnings []Issue
}

// Valid reports whether the formula may be evaluated.
func (r Report) Valid() bool {
	return len(r.Errors) == 0
}

// AddError appends an error issue.
func (r *Report) AddError(kind IssueKind, position int, format string, args ...any) {
	r.Errors = append(r.Errors, Issue{Kind: kind, Message: fmt.Sprintf(format, args...), Position: position})
}

// AddWarning appends a warning issue.
func (r *Report) AddWarning(kind IssueKind, position int, format string, args ...any) {
	r.Warnings = append(r.Warnings, Issue{Kind: kind, Message: fmt.Sprintf(format, args...), Position: position})
}

// FormulaInvalidError is returned by the search engine when validation finds
// errors; no files are touched and no partial results exist.
type FormulaInvalidError struct {
	Report Report
}

func (e *FormulaInvalidError) Error() string {
	msgs := make([]string, 0, len(e.Report.Errors))
	for _, issue := range e.Report.Errors {
		msgs = append(msgs, issue.String())
	}
	return "formula is invalid: " + strings.Join(msgs, "; ")
}

// NoPhrasesError indicates the engine was invoked with no phrase bindings at
// all; there is nothing a formula could match.
type NoPhrasesError struct{}

func (e *NoPhrasesError) Error() string {
	return "no phrases configured: bind at least one variable (A-F) to a non-empty phrase before searching"
}

// NoFilesError indicates file resolution produced zero candidates. Reported,
// not fatal to the process.
type NoFilesError struct {
	Patterns []string
}

func (e *NoFilesError) Error() string {
	if len(e.Patterns) == 0 {
		return "no files matched the search criteria"
	}
	return fmt.Sprintf("no files matched the search criteria (patterns: %s)", strings.Join(e.Patterns, ", "))
}

// SkippedFile records a file the engine could not search. One bad file never
// aborts a run; the skip is carried in the result instead.
type SkippedFile struct {
	Path   string
	Reason string
}

func (s SkippedFile) String() string {
	return fmt.Sprintf("%s: %s", s.Path, s.Reason)
}
