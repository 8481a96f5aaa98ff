package formula

import (
	stderrors "errors"
	"strings"

	"github.com/CallMeChewy/Finder/internal/errors"
	"github.com/CallMeChewy/Finder/internal/phrase"
)

// Validate statically analyzes a parsed formula against the bound phrases.
// Errors block evaluation; warnings flag formulas that are legal but almost
// certainly not what the user meant. Validation touches no file data, so the
// front end can call it on demand, and the engine re-runs it before every
// search.
func Validate(n Node, set phrase.Set) errors.Report {
	var report errors.Report
	if n == nil {
		report.AddError(errors.IssueSyntax, 0, "no formula to validate")
		return report
	}
	if !wellFormed(n) {
		// Unreachable for parser output; guards hand-built trees.
		report.AddError(errors.IssueSyntax, 0, "formula tree is malformed")
		return report
	}

	vars := Variables(n)
	if len(vars) == 0 {
		report.AddError(errors.IssueNoVariables, 0, "formula references no variables")
		return report
	}

	var undefined []string
	bound := make(map[phrase.Variable]bool)
	for _, v := range set.Bound() {
		bound[v] = true
	}
	for _, v := range vars {
		if !bound[v] {
			undefined = append(undefined, v.String())
		}
	}
	if len(undefined) > 0 {
		report.AddWarning(errors.IssueUndefinedVariable, 0,
			"variable(s) %s are used in the formula but have no phrase text; they always test false",
			strings.Join(undefined, ", "))
	}

	checkContradictions(n, &report)
	return report
}

// ValidateText is the on-demand validation entry point: it parses the raw
// formula and folds any parse failure into the report as a syntax error, so
// the report is always the result and never a thrown failure.
func ValidateText(text string, set phrase.Set) errors.Report {
	node, err := Parse(text)
	if err != nil {
		var report errors.Report
		var parseErr *errors.ParseError
		if stderrors.As(err, &parseErr) {
			report.AddError(errors.IssueSyntax, parseErr.Position, "%s", parseErr.Error())
		} else {
			report.AddError(errors.IssueSyntax, 0, "%s", err.Error())
		}
		return report
	}
	return Validate(node, set)
}

func wellFormed(n Node) bool {
	switch x := n.(type) {
	case *VarRef:
		return x.Variable.Valid()
	case *Not:
		return x.Child != nil && wellFormed(x.Child)
	case *And:
		return x.Left != nil && x.Right != nil && wellFormed(x.Left) && wellFormed(x.Right)
	case *Or:
		return x.Left != nil && x.Right != nil && wellFormed(x.Left) && wellFormed(x.Right)
	case *Xor:
		return x.Left != nil && x.Right != nil && wellFormed(x.Left) && wellFormed(x.Right)
	default:
		return false
	}
}

// checkContradictions walks the tree flagging the "X OR NOT X" tautology and
// "X AND NOT X" paradox shapes in either operand order. Detection is
// structural on the sub-formulas, not a truth-table sweep: "A OR NOT A" is
// flagged, the equivalent "A OR (NOT A AND NOT B) OR (NOT A AND B)" is not.
func checkContradictions(n Node, report *errors.Report) {
	switch x := n.(type) {
	case *Or:
		if sub, ok := complementPair(x.Left, x.Right); ok {
			report.AddWarning(errors.IssueTautology, 0,
				"tautology: %q is always true regardless of the files searched",
				(&Or{Left: sub, Right: &Not{Child: sub}}).String())
		}
		checkContradictions(x.Left, report)
		checkContradictions(x.Right, report)
	case *And:
		if sub, ok := complementPair(x.Left, x.Right); ok {
			report.AddWarning(errors.IssueParadox, 0,
				"paradox: %q is always false and can never match",
				(&And{Left: sub, Right: &Not{Child: sub}}).String())
		}
		checkContradictions(x.Left, report)
		checkContradictions(x.Right, report)
	case *Xor:
		checkContradictions(x.Left, report)
		checkContradictions(x.Right, report)
	case *Not:
		checkContradictions(x.Child, report)
	}
}

// complementPair reports whether one operand is the negation of the other,
// returning the un-negated sub-formula.
func complementPair(a, b Node) (Node, bool) {
	if neg, ok := b.(*Not); ok && Equal(a, neg.Child) {
		return a, true
	}
	if neg, ok := a.(*Not); ok && Equal(neg.Child, b) {
		return b, true
	}
	return nil, false
}
