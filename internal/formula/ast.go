// Package formula implements the boolean search formula language: lexer,
// parser, static validator, and evaluator. Formulas combine the phrase
// variables A-F with AND, OR, NOT, and XOR, each operator accepting several
// spellings, and with three interchangeable bracket families for grouping.
//
// All entry points are pure functions over immutable values; they are safe to
// call concurrently without synchronization.
package formula

import (
	"sort"
	"strings"

	"github.com/CallMeChewy/Finder/internal/phrase"
)

// Node is a node of the formula syntax tree. The variant set is closed:
// adding an operator means touching the parser, validator, and evaluator in
// lock-step, which keeps the grammar total.
type Node interface {
	// String renders the canonical form: word operators, round parentheses
	// only where precedence requires them. Re-parsing the canonical form
	// yields a structurally identical tree.
	String() string
	node()
}

// VarRef references a phrase variable.
type VarRef struct {
	Variable phrase.Variable
}

// Not negates its child.
type Not struct {
	Child Node
}

// And is true when both operands are true.
type And struct {
	Left, Right Node
}

// Or is true when either operand is true.
type Or struct {
	Left, Right Node
}

// Xor is true when exactly one operand is true.
type Xor struct {
	Left, Right Node
}

func (*VarRef) node() {}
func (*Not) node()    {}
func (*And) node()    {}
func (*Or) node()     {}
func (*Xor) node()    {}

// Precedence levels, highest binds tightest. Mirrors the parser.
const (
	precOr = iota + 1
	precXor
	precAnd
	precNot
	precLeaf
)

func precedence(n Node) int {
	switch n.(type) {
	case *Or:
		return precOr
	case *Xor:
		return precXor
	case *And:
		return precAnd
	case *Not:
		return precNot
	default:
		return precLeaf
	}
}

func (n *VarRef) String() string {
	return n.Variable.String()
}

func (n *Not) String() string {
	child := n.Child.String()
	if precedence(n.Child) < precNot {
		child = "(" + child + ")"
	}
	return "NOT " + child
}

func (n *And) String() string { return renderBinary(n.Left, n.Right, "AND", precAnd) }
func (n *Or) String() string  { return renderBinary(n.Left, n.Right, "OR", precOr) }
func (n *Xor) String() string { return renderBinary(n.Left, n.Right, "XOR", precXor) }

// renderBinary parenthesizes a left operand of lower precedence and a right
// operand of lower-or-equal precedence; binary operators are left-associative,
// so an equal-precedence right child needs parens to survive a re-parse.
func renderBinary(left, right Node, op string, prec int) string {
	l := left.String()
	if precedence(left) < prec {
		l = "(" + l + ")"
	}
	r := right.String()
	if precedence(right) <= prec {
		r = "(" + r + ")"
	}
	return l + " " + op + " " + r
}

// Equal reports structural equality of two trees.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case *VarRef:
		y, ok := b.(*VarRef)
		return ok && x.Variable == y.Variable
	case *Not:
		y, ok := b.(*Not)
		return ok && Equal(x.Child, y.Child)
	case *And:
		y, ok := b.(*And)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Or:
		y, ok := b.(*Or)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Xor:
		y, ok := b.(*Xor)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	default:
		return false
	}
}

// Variables returns the distinct variables referenced by the tree, sorted.
func Variables(n Node) []phrase.Variable {
	seen := make(map[phrase.Variable]struct{})
	collectVariables(n, seen)
	out := make([]phrase.Variable, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func collectVariables(n Node, seen map[phrase.Variable]struct{}) {
	switch x := n.(type) {
	case *VarRef:
		seen[x.Variable] = struct{}{}
	case *Not:
		collectVariables(x.Child, seen)
	case *And:
		collectVariables(x.Left, seen)
		collectVariables(x.Right, seen)
	case *Or:
		collectVariables(x.Left, seen)
		collectVariables(x.Right, seen)
	case *Xor:
		collectVariables(x.Left, seen)
		collectVariables(x.Right, seen)
	}
}

// VariableNames renders the referenced variables as "A, B, C".
func VariableNames(n Node) string {
	vars := Variables(n)
	parts := make([]string, len(vars))
	for i, v := range vars {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}
