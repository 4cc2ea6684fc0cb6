package calc

import (
	"math"
	"strings"
)

// maxDepth bounds parenthesis and unary-minus nesting.
const maxDepth = 256

// Evaluate parses and computes an arithmetic expression.
//
// The grammar is restricted to numbers, parentheses and + - * / with the
// usual precedence, left associativity and unary minus:
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary }
//	unary   = "-" unary | primary
//	primary = number | "(" expr ")"
func Evaluate(expr string) (float64, error) {
	if strings.TrimSpace(expr) == "" {
		return 0, &Error{Kind: KindEmptyExpression, Offset: -1}
	}

	tokens, err := lex(expr)
	if err != nil {
		return 0, err
	}

	p := &parser{tokens: tokens}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		if tok.kind == tokRParen {
			return 0, invalidf(tok.pos, "unmatched ')'")
		}
		return 0, invalidf(tok.pos, "unexpected %s", tok.describe())
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, &Error{Kind: KindOverflow, Offset: -1}
	}
	return v, nil
}

// Evaluator is the default Evaluate-backed implementation.
type Evaluator struct{}

// Evaluate implements session.Evaluator.
func (Evaluator) Evaluate(expr string) (float64, error) {
	return Evaluate(expr)
}

type parser struct {
	tokens []token
	pos    int
	depth  int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) enter(at int) error {
	p.depth++
	if p.depth > maxDepth {
		return invalidf(at, "expression nested too deeply")
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

func (p *parser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek().kind {
		case tokPlus:
			p.next()
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left += right
		case tokMinus:
			p.next()
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left -= right
		default:
			return left, nil
		}
	}
}

func (p *parser) parseTerm() (float64, error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek().kind {
		case tokStar:
			p.next()
			right, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			left *= right
		case tokSlash:
			op := p.next()
			right, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, &Error{Kind: KindDivisionByZero, Offset: op.pos}
			}
			left /= right
		default:
			return left, nil
		}
	}
}

func (p *parser) parseUnary() (float64, error) {
	if tok := p.peek(); tok.kind == tokMinus {
		p.next()
		if err := p.enter(tok.pos); err != nil {
			return 0, err
		}
		defer p.leave()
		v, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return -v, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (float64, error) {
	tok := p.next()
	switch tok.kind {
	case tokNumber:
		return tok.value, nil
	case tokLParen:
		if err := p.enter(tok.pos); err != nil {
			return 0, err
		}
		defer p.leave()
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		closing := p.next()
		if closing.kind != tokRParen {
			return 0, invalidf(closing.pos, "missing ')' for '(' at offset %d", tok.pos)
		}
		return v, nil
	case tokEOF:
		return 0, invalidf(tok.pos, "unexpected end of input")
	default:
		return 0, invalidf(tok.pos, "unexpected %s", tok.describe())
	}
}
