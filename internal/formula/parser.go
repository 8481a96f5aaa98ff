package formula

import (
	"strings"

	"github.com/CallMeChewy/Finder/internal/errors"
)

// Parse turns a formula string into a syntax tree. Grammar, loosest first:
//
//	or    := xor (OR xor)*
//	xor   := and (XOR and)*
//	and   := unary (AND unary)*
//	unary := NOT unary | variable | open or close
//
// Binary operators are left-associative; NOT is a right-associative prefix.
// A bare variable is a complete formula.
//
// Bracket matching is by nesting depth only, never by shape: the three
// bracket families are one token class, so "(A]" and "[A)" both parse. This
// matches the historical behavior and is kept deliberately; callers relying
// on strict shape pairing should not.
//
// Parsing never partially succeeds: any defect yields a *errors.ParseError
// and no tree.
func Parse(text string) (Node, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.NewParseError(errors.ParseEmptyFormula, 0, "formula is empty").
			WithHint("enter a formula such as \"A AND B\" or a single variable")
	}
	tokens, lerr := lex(text)
	if lerr != nil {
		return nil, lerr
	}
	p := &parser{tokens: tokens}
	node, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok {
		switch tok.kind {
		case tokClose:
			return nil, errors.NewParseError(errors.ParseUnbalancedGrouping, tok.pos,
				"unmatched closing bracket").WithToken(tok.text)
		case tokVar:
			return nil, errors.NewParseError(errors.ParseUnexpectedToken, tok.pos,
				"missing operator before variable").WithToken(tok.text).
				WithHint("join variables with AND, OR, or XOR")
		default:
			return nil, errors.NewParseError(errors.ParseUnexpectedToken, tok.pos,
				"unexpected "+tok.operatorName()).WithToken(tok.text)
		}
	}
	return node, nil
}

type parser struct {
	tokens []token
	idx    int
}

func (p *parser) peek() (token, bool) {
	if p.idx >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.idx], true
}

func (p *parser) next() token {
	t := p.tokens[p.idx]
	p.idx++
	return t
}

// prev returns the token before the cursor; ok is false at the start.
func (p *parser) prev() (token, bool) {
	if p.idx == 0 {
		return token{}, false
	}
	return p.tokens[p.idx-1], true
}

func (p *parser) parseOr() (Node, error) {
	left, err := p.parseXor()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek()
		if !ok || tok.kind != tokOr {
			return left, nil
		}
		p.next()
		right, err := p.parseXor()
		if err != nil {
			return nil, err
		}
		left = &Or{Left: left, Right: right}
	}
}

func (p *parser) parseXor() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek()
		if !ok || tok.kind != tokXor {
			return left, nil
		}
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Xor{Left: left, Right: right}
	}
}

func (p *parser) parseAnd() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek()
		if !ok || tok.kind != tokAnd {
			return left, nil
		}
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &And{Left: left, Right: right}
	}
}

func (p *parser) parseUnary() (Node, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, p.missingOperandAtEnd()
	}
	switch tok.kind {
	case tokNot:
		p.next()
		child, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Not{Child: child}, nil
	case tokVar:
		p.next()
		return &VarRef{Variable: tok.variable}, nil
	case tokOpen:
		open := p.next()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		closeTok, ok := p.peek()
		if !ok {
			return nil, errors.NewParseError(errors.ParseUnbalancedGrouping, open.pos,
				"unclosed bracket").WithToken(open.text).
				WithHint("add a closing bracket; any of ), ], } closes any opening bracket")
		}
		if closeTok.kind != tokClose {
			return nil, errors.NewParseError(errors.ParseUnexpectedToken, closeTok.pos,
				"missing operator before "+closeTok.operatorName()).WithToken(closeTok.text)
		}
		p.next()
		return inner, nil
	case tokClose:
		if prev, ok := p.prev(); ok {
			if prev.kind == tokOpen {
				return nil, errors.NewParseError(errors.ParseUnexpectedToken, tok.pos,
					"empty brackets").WithToken(tok.text).
					WithHint("brackets must contain an expression")
			}
			if prev.isBinary() || prev.kind == tokNot {
				return nil, errors.NewParseError(errors.ParseDanglingOperator, prev.pos,
					prev.operatorName()+" operator needs a right operand").WithToken(prev.text)
			}
		}
		return nil, errors.NewParseError(errors.ParseUnbalancedGrouping, tok.pos,
			"unmatched closing bracket").WithToken(tok.text)
	default: // a binary operator where an operand belongs
		if prev, ok := p.prev(); ok && (prev.isBinary() || prev.kind == tokNot) {
			return nil, errors.NewParseError(errors.ParseConsecutiveOperators, tok.pos,
				"consecutive operators "+prev.operatorName()+" and "+tok.operatorName()).
				WithToken(tok.text).
				WithHint("put a variable or bracketed expression between operators")
		}
		return nil, errors.NewParseError(errors.ParseDanglingOperator, tok.pos,
			tok.operatorName()+" operator needs a left operand").WithToken(tok.text)
	}
}

// missingOperandAtEnd maps input that stops where an operand belongs onto the
// operator (or bracket) left hanging.
func (p *parser) missingOperandAtEnd() *errors.ParseError {
	prev, ok := p.prev()
	if !ok {
		return errors.NewParseError(errors.ParseEmptyFormula, 0, "formula is empty")
	}
	if prev.kind == tokOpen {
		return errors.NewParseError(errors.ParseUnbalancedGrouping, prev.pos,
			"unclosed bracket").WithToken(prev.text)
	}
	return errors.NewParseError(errors.ParseDanglingOperator, prev.pos,
		prev.operatorName()+" operator needs an operand").WithToken(prev.text)
}
