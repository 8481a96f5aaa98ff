// Package extract splits file text into search units and tests phrase
// presence per unit. Units are produced lazily, one at a time, so document
// text is never duplicated per line.
package extract

import (
	"fmt"
	"iter"
	"strings"

	"github.com/CallMeChewy/Finder/internal/phrase"
)

// Mode selects the matching granularity.
type Mode int

const (
	// LineMode yields one unit per physical line.
	LineMode Mode = iota
	// DocumentMode yields a single unit holding the whole file text.
	DocumentMode
)

func (m Mode) String() string {
	if m == DocumentMode {
		return "document"
	}
	return "line"
}

// ParseMode accepts the mode names used by config and CLI flags.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "line", "":
		return LineMode, nil
	case "document", "doc":
		return DocumentMode, nil
	default:
		return LineMode, fmt.Errorf("unknown search mode %q (expected \"line\" or \"document\")", s)
	}
}

// Unit is one candidate for formula evaluation: a line or a whole document.
// SequenceIndex is 1-based.
type Unit struct {
	SequenceIndex int
	Text          string
}

// Units yields the search units of a text. Line mode splits on newlines with
// 1-based ordinals; a trailing newline does not produce a phantom empty unit.
// A trailing carriage return is stripped so CRLF files behave like LF files.
// Document mode yields exactly one unit with the full text.
func Units(text string, mode Mode) iter.Seq[Unit] {
	if mode == DocumentMode {
		return func(yield func(Unit) bool) {
			yield(Unit{SequenceIndex: 1, Text: text})
		}
	}
	return func(yield func(Unit) bool) {
		ordinal := 0
		for len(text) > 0 {
			line := text
			if i := strings.IndexByte(text, '\n'); i >= 0 {
				line = text[:i]
				text = text[i+1:]
			} else {
				text = ""
			}
			line = strings.TrimSuffix(line, "\r")
			ordinal++
			if !yield(Unit{SequenceIndex: ordinal, Text: line}) {
				return
			}
		}
	}
}

// Presence computes the per-variable presence vector for one unit. The test
// is literal substring containment; case sensitivity follows each variable's
// own binding. Unbound and empty-text variables test false.
func Presence(unitText string, set phrase.Set, vars []phrase.Variable) map[phrase.Variable]bool {
	presence := make(map[phrase.Variable]bool, len(vars))
	var lowered string
	loweredReady := false
	for _, v := range vars {
		binding, ok := set.Lookup(v)
		if !ok || strings.TrimSpace(binding.Text) == "" {
			presence[v] = false
			continue
		}
		if binding.CaseSensitive {
			presence[v] = strings.Contains(unitText, binding.Text)
			continue
		}
		if !loweredReady {
			lowered = strings.ToLower(unitText)
			loweredReady = true
		}
		presence[v] = strings.Contains(lowered, strings.ToLower(binding.Text))
	}
	return presence
}
