package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CallMeChewy/Finder/internal/phrase"
)

// assignment builds a presence map from a 6-bit mask over A-F.
func assignment(mask int) map[phrase.Variable]bool {
	presence := make(map[phrase.Variable]bool, phrase.MaxVariables)
	for i, v := range phrase.Variables() {
		presence[v] = mask&(1<<i) != 0
	}
	return presence
}

func TestEvaluateBasics(t *testing.T) {
	a := &VarRef{Variable: 'A'}
	b := &VarRef{Variable: 'B'}

	cases := []struct {
		name string
		node Node
		a, b bool
		want bool
	}{
		{"var_true", a, true, false, true},
		{"var_false", a, false, true, false},
		{"not", &Not{Child: a}, false, false, true},
		{"and_both", &And{Left: a, Right: b}, true, true, true},
		{"and_one", &And{Left: a, Right: b}, true, false, false},
		{"or_one", &Or{Left: a, Right: b}, false, true, true},
		{"or_none", &Or{Left: a, Right: b}, false, false, false},
		{"xor_differ", &Xor{Left: a, Right: b}, true, false, true},
		{"xor_both", &Xor{Left: a, Right: b}, true, true, false},
		{"xor_none", &Xor{Left: a, Right: b}, false, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			presence := map[phrase.Variable]bool{'A': tc.a, 'B': tc.b}
			assert.Equal(t, tc.want, Evaluate(tc.node, presence))
		})
	}
}

func TestEvaluateUnboundVariableIsFalse(t *testing.T) {
	node := mustParse(t, "A | C")
	assert.False(t, Evaluate(node, map[phrase.Variable]bool{}))
	assert.True(t, Evaluate(node, map[phrase.Variable]bool{'C': true}))
}

func TestEvaluateTotality(t *testing.T) {
	// Every formula must terminate with a boolean for all 2^6 assignments.
	formulas := []string{
		"A",
		"A & B & C & D & E & F",
		"A | B | C | D | E | F",
		"(A ^ B) ^ (C ^ D) ^ (E ^ F)",
		"!(A & B) | !(C | D) ^ !E & F",
		"{A | [B & !C]} ^ ~(D | E | F)",
	}
	for _, f := range formulas {
		node := mustParse(t, f)
		for mask := 0; mask < 1<<phrase.MaxVariables; mask++ {
			// Doesn't panic, terminates, and is deterministic.
			first := Evaluate(node, assignment(mask))
			assert.Equal(t, first, Evaluate(node, assignment(mask)), "formula %q mask %06b", f, mask)
		}
	}
}

func TestPrecedenceSemantics(t *testing.T) {
	// "A | B & C" must evaluate identically to "A | (B & C)" everywhere.
	implicit := mustParse(t, "A | B & C")
	explicit := mustParse(t, "A | (B & C)")
	for mask := 0; mask < 1<<phrase.MaxVariables; mask++ {
		presence := assignment(mask)
		assert.Equal(t, Evaluate(explicit, presence), Evaluate(implicit, presence), "mask %06b", mask)
	}
}

func TestTautologyAndParadoxSemantics(t *testing.T) {
	tautology := mustParse(t, "A | !A")
	paradox := mustParse(t, "A & !A")
	for mask := 0; mask < 1<<phrase.MaxVariables; mask++ {
		presence := assignment(mask)
		require.True(t, Evaluate(tautology, presence))
		require.False(t, Evaluate(paradox, presence))
	}
}

func TestExamplesAreAllValid(t *testing.T) {
	for _, ex := range Examples() {
		t.Run(ex.Name, func(t *testing.T) {
			node := mustParse(t, ex.Formula)
			report := Validate(node, phrase.NewSet(ex.Bindings))
			assert.True(t, report.Valid())
			assert.Empty(t, report.Warnings, "demonstration formulas must be warning-free")
		})
	}
}
