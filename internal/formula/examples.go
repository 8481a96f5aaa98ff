package formula

import "github.com/CallMeChewy/Finder/internal/phrase"

// Example is a canned demonstration formula with its phrase setup, used by
// the CLI examples command and the MCP examples tool to teach the formula
// language by increasing complexity.
type Example struct {
	Level    int
	Name     string
	Formula  string
	Bindings []phrase.Binding
	Note     string
}

// Examples returns the demonstration set. Static data; callers must not
// mutate the returned slice.
func Examples() []Example {
	return examples
}

var examples = []Example{
	{
		Level:   1,
		Name:    "Single variable",
		Formula: "A",
		Bindings: []phrase.Binding{
			{Variable: 'A', Text: "import"},
		},
		Note: "A bare variable is a complete formula: every unit containing the phrase matches.",
	},
	{
		Level:   2,
		Name:    "Basic AND",
		Formula: "A AND B",
		Bindings: []phrase.Binding{
			{Variable: 'A', Text: "def"},
			{Variable: 'B', Text: "self"},
		},
		Note: "Both phrases must appear in the same unit. \"A & B\" and \"A && B\" mean the same thing.",
	},
	{
		Level:   3,
		Name:    "Grouping with exclusion",
		Formula: "(A OR B) AND NOT C",
		Bindings: []phrase.Binding{
			{Variable: 'A', Text: "TODO"},
			{Variable: 'B', Text: "FIXME"},
			{Variable: 'C', Text: "resolved"},
		},
		Note: "Parentheses override precedence; NOT excludes units mentioning the third phrase. Square and curly brackets work too.",
	},
	{
		Level:   4,
		Name:    "Exactly one of two",
		Formula: "A XOR B",
		Bindings: []phrase.Binding{
			{Variable: 'A', Text: "error"},
			{Variable: 'B', Text: "warning"},
		},
		Note: "XOR matches units containing exactly one of the two phrases, never both.",
	},
	{
		Level:   5,
		Name:    "Nested multi-variable",
		Formula: "{A AND [B OR C]} AND NOT (D OR E)",
		Bindings: []phrase.Binding{
			{Variable: 'A', Text: "func"},
			{Variable: 'B', Text: "ctx"},
			{Variable: 'C', Text: "context"},
			{Variable: 'D', Text: "test"},
			{Variable: 'E', Text: "mock"},
		},
		Note: "Bracket families nest freely and are matched by position, not shape.",
	},
}
