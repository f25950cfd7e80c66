package algebra

import (
	"fmt"
	"math/big"
	"unicode"
	"unicode/utf8"
)

// ParseError reports why text could not be read as an expression. Pos is
// the byte offset of the offending token.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at position %d", e.Msg, e.Pos)
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNum
	tokIdent
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func (t token) describe() string {
	if t.kind == tokEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.text)
}

func tokenize(input string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(input) {
		r, size := utf8.DecodeRuneInString(input[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case r >= '0' && r <= '9' || r == '.':
			start := i
			dots := 0
			for i < len(input) && (input[i] >= '0' && input[i] <= '9' || input[i] == '.') {
				if input[i] == '.' {
					dots++
				}
				i++
			}
			text := input[start:i]
			if dots > 1 || text == "." {
				return nil, &ParseError{Pos: start, Msg: fmt.Sprintf("invalid number %q", text)}
			}
			toks = append(toks, token{kind: tokNum, text: text, pos: start})
		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(input) {
				r2, size2 := utf8.DecodeRuneInString(input[i:])
				if !unicode.IsLetter(r2) && !unicode.IsDigit(r2) && r2 != '_' {
					break
				}
				i += size2
			}
			toks = append(toks, token{kind: tokIdent, text: input[start:i], pos: start})
		case r == '*' && i+1 < len(input) && input[i+1] == '*':
			toks = append(toks, token{kind: tokOp, text: "**", pos: i})
			i += 2
		case r == '+' || r == '-' || r == '*' || r == '/' || r == '^':
			toks = append(toks, token{kind: tokOp, text: string(r), pos: i})
			i++
		case r == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i})
			i++
		case r == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i})
			i++
		default:
			return nil, &ParseError{Pos: i, Msg: fmt.Sprintf("unexpected character %q", r)}
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(input)})
	return toks, nil
}

// Parse reads an infix expression. It accepts + - * / and ** or ^ for
// powers, parentheses, integer and decimal literals (decimals are exact
// rationals), identifiers as symbols and the unary functions sin, cos,
// tan, asin, acos, atan, sinh, cosh, tanh, exp, ln, log, sqrt, abs, floor,
// ceil and sign. Implicit multiplication is not accepted.
func Parse(input string) (Expr, error) {
	toks, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	if p.peek().kind == tokEOF {
		return nil, &ParseError{Pos: 0, Msg: "empty expression"}
	}
	e, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, &ParseError{Pos: t.pos, Msg: "unexpected " + t.describe()}
	}
	return e, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// fixed inputs.
func MustParse(input string) Expr {
	e, err := Parse(input)
	if err != nil {
		panic("algebra: MustParse(" + input + "): " + err.Error())
	}
	return e
}

type parser struct {
	toks []token
	i    int
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) isOp(ops ...string) bool {
	t := p.peek()
	if t.kind != tokOp {
		return false
	}
	for _, op := range ops {
		if t.text == op {
			return true
		}
	}
	return false
}

// sum := product (('+' | '-') product)*
func (p *parser) parseSum() (Expr, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for p.isOp("+", "-") {
		op := p.next()
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		if op.text == "-" {
			right = Neg(right)
		}
		left = AddOf(left, right)
	}
	return left, nil
}

// product := unary (('*' | '/') unary)*
func (p *parser) parseProduct() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.isOp("*", "/") {
		op := p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if op.text == "/" {
			if isNumEqual(right, 0) {
				return nil, &ParseError{Pos: op.pos, Msg: "division by zero"}
			}
			right = PowOf(right, N(-1))
		}
		left = MulOf(left, right)
	}
	return left, nil
}

// unary := ('-' | '+') unary | power
func (p *parser) parseUnary() (Expr, error) {
	if p.isOp("-", "+") {
		op := p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if op.text == "-" {
			return Neg(operand), nil
		}
		return operand, nil
	}
	return p.parsePower()
}

// power := atom (('**' | '^') unary)?
func (p *parser) parsePower() (Expr, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if !p.isOp("**", "^") {
		return base, nil
	}
	op := p.next()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if bn, ok := base.(*Num); ok && bn.IsZero() {
		if en, ok2 := exp.(*Num); ok2 && en.IsNegative() {
			return nil, &ParseError{Pos: op.pos, Msg: "division by zero"}
		}
	}
	return PowOf(base, exp), nil
}

// atom := number | ident | ident '(' sum ')' | '(' sum ')'
func (p *parser) parseAtom() (Expr, error) {
	t := p.next()
	switch t.kind {
	case tokNum:
		r, ok := new(big.Rat).SetString(t.text)
		if !ok {
			return nil, &ParseError{Pos: t.pos, Msg: fmt.Sprintf("invalid number %q", t.text)}
		}
		return &Num{val: r}, nil
	case tokIdent:
		if p.peek().kind != tokLParen {
			return S(t.text), nil
		}
		fn, ok := unaryFuncs[t.text]
		if !ok {
			return nil, &ParseError{Pos: t.pos, Msg: fmt.Sprintf("unknown function %q", t.text)}
		}
		p.next()
		arg, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return fn(arg), nil
	case tokLParen:
		inner, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return nil, &ParseError{Pos: t.pos, Msg: "unexpected " + t.describe()}
}

func (p *parser) expect(kind tokenKind) error {
	t := p.next()
	if t.kind != kind {
		return &ParseError{Pos: t.pos, Msg: "expected \")\", found " + t.describe()}
	}
	return nil
}
