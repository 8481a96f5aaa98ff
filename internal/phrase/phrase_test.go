package phrase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVariable(t *testing.T) {
	t.Run("accepts_both_cases", func(t *testing.T) {
		for _, in := range []string{"a", "A", "f", "F"} {
			v, ok := ParseVariable(in)
			assert.True(t, ok, "input %q", in)
			assert.True(t, v.Valid())
		}
		v, _ := ParseVariable("c")
		assert.Equal(t, "C", v.String())
	})

	t.Run("rejects_invalid", func(t *testing.T) {
		for _, in := range []string{"", "G", "g", "AB", "1", "!"} {
			_, ok := ParseVariable(in)
			assert.False(t, ok, "input %q", in)
		}
	})
}

func TestSetBound(t *testing.T) {
	s := NewSet([]Binding{
		{Variable: 'B', Text: "error"},
		{Variable: 'A', Text: "import"},
		{Variable: 'C', Text: "   "},
		{Variable: 'D', Text: ""},
	})

	assert.Equal(t, []Variable{'A', 'B'}, s.Bound(), "blank-text bindings are unbound")
	assert.False(t, s.Empty())

	b, ok := s.Lookup('A')
	assert.True(t, ok)
	assert.Equal(t, "import", b.Text)

	_, ok = s.Lookup('F')
	assert.False(t, ok)
}

func TestSetLastBindingWins(t *testing.T) {
	s := NewSet([]Binding{
		{Variable: 'A', Text: "first"},
		{Variable: 'A', Text: "second"},
	})
	b, _ := s.Lookup('A')
	assert.Equal(t, "second", b.Text)
}

func TestSetEmpty(t *testing.T) {
	assert.True(t, NewSet(nil).Empty())
	assert.True(t, NewSet([]Binding{{Variable: 'A', Text: ""}}).Empty())
}

func TestAnyCaseSensitive(t *testing.T) {
	s := NewSet([]Binding{
		{Variable: 'A', Text: "import"},
		{Variable: 'B', Text: "Error", CaseSensitive: true},
	})

	assert.False(t, s.AnyCaseSensitive([]Variable{'A'}))
	assert.True(t, s.AnyCaseSensitive([]Variable{'A', 'B'}))
	assert.False(t, s.AnyCaseSensitive(nil))
}

func TestAutoFormula(t *testing.T) {
	assert.Equal(t, "", AutoFormula(NewSet(nil)))

	one := NewSet([]Binding{{Variable: 'C', Text: "x"}})
	assert.Equal(t, "C", AutoFormula(one))

	three := NewSet([]Binding{
		{Variable: 'B', Text: "y"},
		{Variable: 'A', Text: "x"},
		{Variable: 'F', Text: "z"},
	})
	assert.Equal(t, "A AND B AND F", AutoFormula(three))
}
