// Package phrase holds the variable-to-text bindings a search runs against.
// Bindings are immutable value objects constructed once per invocation; no
// process-wide phrase state exists.
package phrase

import (
	"sort"
	"strings"
)

// Variable names one of the six phrase slots A-F.
type Variable byte

// MaxVariables is the number of phrase slots.
const MaxVariables = 6

// Variables lists all valid variables in order.
func Variables() []Variable {
	return []Variable{'A', 'B', 'C', 'D', 'E', 'F'}
}

// ParseVariable accepts a single letter A-F in either case.
func ParseVariable(s string) (Variable, bool) {
	if len(s) != 1 {
		return 0, false
	}
	c := s[0]
	if c >= 'a' && c <= 'f' {
		c -= 'a' - 'A'
	}
	if c < 'A' || c > 'F' {
		return 0, false
	}
	return Variable(c), true
}

// Valid reports whether v is one of A-F.
func (v Variable) Valid() bool {
	return v >= 'A' && v <= 'F'
}

func (v Variable) String() string {
	return string(rune(v))
}

// Binding associates a variable with its literal phrase text. An empty Text
// means the variable is unbound; it always tests false during search and
// draws an undefined-variable warning when referenced.
type Binding struct {
	Variable      Variable
	Text          string
	CaseSensitive bool
}

// Set is an immutable collection of bindings keyed by variable.
type Set struct {
	bindings map[Variable]Binding
}

// NewSet builds a set from the given bindings. Invalid variables are dropped;
// a later binding for the same variable wins.
func NewSet(bindings []Binding) Set {
	m := make(map[Variable]Binding, len(bindings))
	for _, b := range bindings {
		if !b.Variable.Valid() {
			continue
		}
		m[b.Variable] = b
	}
	return Set{bindings: m}
}

// Lookup returns the binding for v, if present.
func (s Set) Lookup(v Variable) (Binding, bool) {
	b, ok := s.bindings[v]
	return b, ok
}

// Bound returns the variables carrying non-empty phrase text, sorted.
func (s Set) Bound() []Variable {
	out := make([]Variable, 0, len(s.bindings))
	for v, b := range s.bindings {
		if strings.TrimSpace(b.Text) != "" {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Empty reports whether no variable carries phrase text.
func (s Set) Empty() bool {
	return len(s.Bound()) == 0
}

// AnyCaseSensitive reports whether any of the given variables is bound
// case-sensitively. The engine uses this to pick the dedup normalization.
func (s Set) AnyCaseSensitive(vars []Variable) bool {
	for _, v := range vars {
		if b, ok := s.bindings[v]; ok && b.CaseSensitive {
			return true
		}
	}
	return false
}

// AutoFormula joins the bound variables with AND, giving a reasonable default
// when the user supplies phrases but no formula. Empty when nothing is bound.
func AutoFormula(s Set) string {
	bound := s.Bound()
	parts := make([]string, len(bound))
	for i, v := range bound {
		parts[i] = v.String()
	}
	return strings.Join(parts, " AND ")
}
