package formula

import "github.com/CallMeChewy/Finder/internal/phrase"

// Evaluate computes the formula over one presence assignment. Variables
// absent from the map evaluate false, so an undefined variable can never
// crash a search. The function is referentially transparent and holds no
// state between calls.
func Evaluate(n Node, presence map[phrase.Variable]bool) bool {
	switch x := n.(type) {
	case *VarRef:
		return presence[x.Variable]
	case *Not:
		return !Evaluate(x.Child, presence)
	case *And:
		return Evaluate(x.Left, presence) && Evaluate(x.Right, presence)
	case *Or:
		return Evaluate(x.Left, presence) || Evaluate(x.Right, presence)
	case *Xor:
		return Evaluate(x.Left, presence) != Evaluate(x.Right, presence)
	default:
		// The variant set is closed; a nil or foreign node matches nothing.
		return false
	}
}
