package calc

import "strconv"

// tokenKind identifies a lexical token.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokLParen
	tokRParen
)

type token struct {
	kind  tokenKind
	text  string
	value float64
	pos   int
}

func (t token) describe() string {
	if t.kind == tokEOF {
		return "end of input"
	}
	return strconv.Quote(t.text)
}

// lex splits expr into tokens. Only the calculator alphabet is accepted:
// digits, '.', parentheses, the four operators and blanks.
func lex(expr string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(expr) {
		c := expr[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case isDigit(c) || c == '.':
			start := i
			tok, n, err := lexNumber(expr[i:], start)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i += n
		default:
			kind, ok := operatorKinds[c]
			if !ok {
				r := []rune(expr[i:])[0]
				return nil, invalidf(i, "unsupported character %q", r)
			}
			tokens = append(tokens, token{kind: kind, text: string(c), pos: i})
			i++
		}
	}
	tokens = append(tokens, token{kind: tokEOF, pos: len(expr)})
	return tokens, nil
}

var operatorKinds = map[byte]tokenKind{
	'+': tokPlus,
	'-': tokMinus,
	'*': tokStar,
	'/': tokSlash,
	'(': tokLParen,
	')': tokRParen,
}

// lexNumber reads digits with at most one decimal point. "5." and ".5" are
// both numbers; a lone "." is not.
func lexNumber(s string, pos int) (token, int, error) {
	n := 0
	digits := 0
	dot := false
	for n < len(s) {
		c := s[n]
		if isDigit(c) {
			digits++
		} else if c == '.' {
			if dot {
				return token{}, 0, invalidf(pos+n, "unexpected '.'")
			}
			dot = true
		} else {
			break
		}
		n++
	}
	text := s[:n]
	if digits == 0 {
		return token{}, 0, invalidf(pos, "malformed number %q", text)
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		// ParseFloat only fails here on range errors.
		return token{}, 0, &Error{Kind: KindOverflow, Offset: pos, Detail: "number too large"}
	}
	return token{kind: tokNumber, text: text, value: v, pos: pos}, n, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
