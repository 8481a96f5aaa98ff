package formula

import (
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"

	"github.com/CallMeChewy/Finder/internal/errors"
	"github.com/CallMeChewy/Finder/internal/phrase"
)

type tokenKind int

const (
	tokVar tokenKind = iota
	tokAnd
	tokOr
	tokXor
	tokNot
	tokOpen
	tokClose
)

// token carries its 1-based rune position and original spelling so parse
// errors can point at the exact offender.
type token struct {
	kind     tokenKind
	variable phrase.Variable
	pos      int
	text     string
}

func (t token) isBinary() bool {
	return t.kind == tokAnd || t.kind == tokOr || t.kind == tokXor
}

// operatorName is the canonical spelling used in error messages.
func (t token) operatorName() string {
	switch t.kind {
	case tokAnd:
		return "AND"
	case tokOr:
		return "OR"
	case tokXor:
		return "XOR"
	case tokNot:
		return "NOT"
	default:
		return t.text
	}
}

var wordOperators = map[string]tokenKind{
	"AND": tokAnd,
	"OR":  tokOr,
	"NOT": tokNot,
	"XOR": tokXor,
}

// lex tokenizes a formula. Each operator has one meaning and several
// spellings: AND is "&", "&&", or the word; OR is "|", "||", or the word;
// NOT is "!", "~", or the word; XOR is "^" or the word. All six bracket
// characters collapse into a unified open/close token class.
func lex(input string) ([]token, *errors.ParseError) {
	runes := []rune(input)
	var tokens []token
	i := 0
	for i < len(runes) {
		r := runes[i]
		pos := i + 1
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '(' || r == '[' || r == '{':
			tokens = append(tokens, token{kind: tokOpen, pos: pos, text: string(r)})
			i++
		case r == ')' || r == ']' || r == '}':
			tokens = append(tokens, token{kind: tokClose, pos: pos, text: string(r)})
			i++
		case r == '&':
			width := 1
			if i+1 < len(runes) && runes[i+1] == '&' {
				width = 2
			}
			tokens = append(tokens, token{kind: tokAnd, pos: pos, text: string(runes[i : i+width])})
			i += width
		case r == '|':
			width := 1
			if i+1 < len(runes) && runes[i+1] == '|' {
				width = 2
			}
			tokens = append(tokens, token{kind: tokOr, pos: pos, text: string(runes[i : i+width])})
			i += width
		case r == '!' || r == '~':
			tokens = append(tokens, token{kind: tokNot, pos: pos, text: string(r)})
			i++
		case r == '^':
			tokens = append(tokens, token{kind: tokXor, pos: pos, text: string(r)})
			i++
		case unicode.IsLetter(r):
			start := i
			for i < len(runes) && unicode.IsLetter(runes[i]) {
				i++
			}
			word := string(runes[start:i])
			tok, err := classifyWord(word, start+1)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		default:
			return nil, errors.NewParseError(errors.ParseUnexpectedToken, pos,
				"invalid character").
				WithToken(string(r)).
				WithHint("allowed: variables A-F, AND/OR/NOT/XOR (or &, |, !, ~, ^), and brackets")
		}
	}
	return tokens, nil
}

func classifyWord(word string, pos int) (token, *errors.ParseError) {
	upper := strings.ToUpper(word)
	if v, ok := phrase.ParseVariable(upper); ok {
		return token{kind: tokVar, variable: v, pos: pos, text: word}, nil
	}
	if kind, ok := wordOperators[upper]; ok {
		return token{kind: kind, pos: pos, text: word}, nil
	}
	err := errors.NewParseError(errors.ParseUnexpectedToken, pos, "unknown word").WithToken(word)
	if hint := operatorSuggestion(upper); hint != "" {
		err = err.WithHint(hint)
	} else {
		err = err.WithHint("only variables A-F and the operators AND, OR, NOT, XOR are recognized")
	}
	return token{}, err
}

// operatorSuggestion proposes the closest operator spelling for a misspelled
// word, e.g. "ANND" suggests AND. Similarity is fuzzy over the word only; the
// phrase presence test itself is always a literal containment check.
func operatorSuggestion(word string) string {
	best, bestScore := "", float32(0)
	for candidate := range wordOperators {
		score, err := edlib.StringsSimilarity(word, candidate, edlib.JaroWinkler)
		if err != nil {
			continue
		}
		if score > bestScore {
			best, bestScore = candidate, score
		}
	}
	if bestScore >= 0.75 {
		return "did you mean " + best + "?"
	}
	return ""
}
